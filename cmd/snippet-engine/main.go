// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the snippet-engine CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/snippet-engine/internal/config"
	"github.com/pdiddy/snippet-engine/internal/logging"
	"github.com/pdiddy/snippet-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the snippet-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "snippet-engine",
	Short: "Build an offline store of relevant snippets from reference documents",
	Long: `snippet-engine turns a folder of reference documents into a small,
offline knowledge store. Each document is split into paragraphs, every
paragraph is scored against a domain vocabulary, and the best paragraphs
that fit a per-document character budget are kept.

The store is saved to SQLite and exported as YAML, JSON, and a JavaScript
module with a matching keyword search function. The search subcommand
queries the saved store from the terminal.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./snippet-engine.yaml or ~/.config/snippet-engine/snippet-engine.yaml)")
	rootCmd.PersistentFlags().String("store-dir", "knowledge", "base directory for the store (contains index/)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("store.dir", rootCmd.PersistentFlags().Lookup("store-dir"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("snippet-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "snippet-engine"))
		}
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the merged configuration and a logger built from it.
func loadConfig() (types.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return types.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return types.Config{}, nil, err
	}
	return cfg, logger, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
