// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snippet-engine/internal/knowledge"
	"github.com/pdiddy/snippet-engine/internal/match"
	"github.com/pdiddy/snippet-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the snippet store by keyword",
	Long: `Search ranks the stored paragraphs by how often the query words occur in
them. Words shorter than search.min_token_length are ignored, matching is
case-insensitive and literal, and paragraphs with no occurrence are left
out. This is the same ranking the exported searchKnowledge function uses.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	ks, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	results := match.NewMatcher(cfg.Search).Search(strings.Join(args, " "), ks, limit)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(os.Stdout, results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []types.MatchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-5s  %-24s  %s\n", "Rank", "Score", "Source", "Text")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-5d  %-24s  %s\n",
			i+1, r.Score, truncate(r.Source, 24), truncate(r.Text, 70))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = search.max_results)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
