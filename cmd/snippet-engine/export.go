// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snippet-engine/internal/knowledge"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved store to YAML, JSON, or a JavaScript module",
	Long: `Export rewrites knowledge/index/snippets.yaml, snippets.json, or
snippets.js from the saved store without rebuilding it.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	formatName, _ := cmd.Flags().GetString("format")
	format, err := knowledge.ParseFormat(formatName)
	if err != nil {
		return err
	}

	store, err := knowledge.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	ks, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}

	paths, err := store.Export(ks, format, cfg.Search.MaxResults, cfg.Search.MinTokenLength)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Exported to %s\n", p)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", "all", "export format: yaml, json, js, or all")

	rootCmd.AddCommand(exportCmd)
}
