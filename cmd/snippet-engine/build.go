// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/snippet-engine/internal/build"
	"github.com/pdiddy/snippet-engine/internal/config"
	"github.com/pdiddy/snippet-engine/internal/convert"
	"github.com/pdiddy/snippet-engine/internal/corpus"
	"github.com/pdiddy/snippet-engine/internal/knowledge"
)

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Build the snippet store from a folder of documents",
	Long: `Build walks the corpus directory (default: corpus.dir), extracts the
text of every matching document page by page, keeps the paragraphs most
relevant to the vocabulary within the per-document character budget, and
saves the result to knowledge/index/snippets.db with the requested exports.

Documents that cannot be extracted are reported and skipped. The store is
still written, and the command exits with an error afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(args) == 1 {
		cfg.Corpus.Dir = args[0]
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := knowledge.ParseFormat(formatName)
	if err != nil {
		return err
	}

	vocab, err := config.Vocabulary(cfg)
	if err != nil {
		return err
	}

	sources, err := corpus.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes).Walk(cfg.Corpus.Dir)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		logger.Warn("no documents found", zap.String("dir", cfg.Corpus.Dir))
	}

	extractor, err := convert.New(cfg.Conversion)
	if err != nil {
		return err
	}

	b := &build.Builder{
		Extractor:  extractor,
		Vocabulary: vocab,
		Config:     cfg,
		Logger:     logger,
		Status:     os.Stdout,
		Workers:    cfg.Build.Workers,
	}
	if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress && len(sources) > 0 {
		b.Progress = newProgress(len(sources))
	}

	ctx := cmd.Context()
	ks, summary, err := b.Build(ctx, sources)
	if err != nil {
		return err
	}

	store, err := knowledge.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	info := knowledge.BuildInfo{
		"built_at":         time.Now().UTC().Format(time.RFC3339),
		"version":          version,
		"corpus_dir":       cfg.Corpus.Dir,
		"vocabulary_terms": strconv.Itoa(vocab.Len()),
		"min_length":       strconv.Itoa(cfg.Segment.MinLength),
		"score_floor":      strconv.Itoa(cfg.Select.ScoreFloor),
		"char_budget":      strconv.Itoa(cfg.Select.CharBudget),
		"indexed":          strconv.Itoa(summary.Indexed),
		"empty":            strconv.Itoa(summary.Empty),
		"failed":           strconv.Itoa(summary.Failed),
	}
	if err := store.Save(ctx, ks, info); err != nil {
		return err
	}

	paths, err := store.Export(ks, format, cfg.Search.MaxResults, cfg.Search.MinTokenLength)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("wrote %s\n", p)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}

func newProgress(total int) build.ProgressFunc {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Building[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
	return func(done, _ int, _ string) {
		_ = bar.Set(done)
	}
}

func init() {
	buildCmd.Flags().String("format", "all", "export format: yaml, json, js, or all")
	buildCmd.Flags().Int("workers", 1, "documents processed concurrently")
	buildCmd.Flags().String("backend", "auto", "extraction backend: auto, text, pdftotext, or markitdown")
	buildCmd.Flags().String("vocabulary-file", "", "YAML file of vocabulary terms")
	buildCmd.Flags().Bool("progress", false, "show a progress bar on stderr")

	_ = viper.BindPFlag("build.workers", buildCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("conversion.backend", buildCmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("vocabulary_file", buildCmd.Flags().Lookup("vocabulary-file"))

	rootCmd.AddCommand(buildCmd)
}
