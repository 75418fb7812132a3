// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snippet-engine/internal/config"
	"github.com/pdiddy/snippet-engine/internal/relevance"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the active vocabulary or score a piece of text",
	Long: `Vocabulary prints the terms the relevance scorer counts, after
lowercasing and de-duplication. With --score it prints how a given text
would be scored instead: every matching term with its count, the number of
percentage figures, and the total.`,
	Args: cobra.NoArgs,
	RunE: runVocabulary,
}

func runVocabulary(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		cfg.VocabularyFile = file
	}
	vocab, err := config.Vocabulary(cfg)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("score") {
		text, _ := cmd.Flags().GetString("score")
		printBreakdown(os.Stdout, text, vocab)
		return nil
	}

	for _, term := range vocab.Terms() {
		fmt.Println(term)
	}
	fmt.Fprintf(os.Stderr, "%d terms\n", vocab.Len())
	return nil
}

func printBreakdown(w io.Writer, text string, vocab relevance.Vocabulary) {
	hits := relevance.KeywordHits(text, vocab)
	terms := make([]string, 0, len(hits))
	for t := range hits {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	for _, t := range terms {
		fmt.Fprintf(w, "%-24s %d\n", t, hits[t])
	}
	numeric := relevance.NumericHits(text)
	fmt.Fprintf(w, "%-24s %d x %d\n", "percentages", numeric, relevance.NumericWeight)
	fmt.Fprintf(w, "%-24s %d\n", "score", relevance.Score(text, vocab))
}

func init() {
	vocabularyCmd.Flags().String("file", "", "YAML file of vocabulary terms (overrides vocabulary_file)")
	vocabularyCmd.Flags().String("score", "", "text to score against the vocabulary")

	rootCmd.AddCommand(vocabularyCmd)
}
