// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snippet-engine/internal/knowledge"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show counts and build info for the saved store",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := knowledge.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatStats(os.Stdout, st, jsonOutput)
}

func formatStats(w io.Writer, st knowledge.Stats, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	fmt.Fprintf(w, "documents:  %d\n", st.Documents)
	fmt.Fprintf(w, "paragraphs: %d\n", st.Paragraphs)
	fmt.Fprintf(w, "chars:      %d\n", st.Chars)
	if len(st.Info) > 0 {
		fmt.Fprintln(w, "\nbuild info:")
		for _, k := range st.Info.Keys() {
			fmt.Fprintf(w, "  %-18s %s\n", k, st.Info[k])
		}
	}
	return nil
}

func init() {
	statsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(statsCmd)
}
