// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config maps viper settings onto types.Config and resolves the
// active vocabulary.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/snippet-engine/internal/relevance"
	"github.com/pdiddy/snippet-engine/pkg/types"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// SNIPPET_ENGINE_SELECT_CHAR_BUDGET.
const EnvPrefix = "SNIPPET_ENGINE"

// Default returns the configuration used when nothing is set.
func Default() types.Config {
	return types.Config{
		Segment: types.SegmentConfig{MinLength: 50},
		Select:  types.SelectConfig{ScoreFloor: 2, CharBudget: 12000},
		Search:  types.SearchConfig{MaxResults: 5, MinTokenLength: 3},
		Corpus: types.CorpusConfig{
			Dir:      "pdfs",
			Includes: []string{"**/*.pdf", "**/*.txt"},
			Excludes: []string{"**/.git/**"},
		},
		Conversion: types.ConversionConfig{
			Backend:    types.BackendAuto,
			PDFBackend: types.BackendPdftotext,
		},
		Store:   types.StoreConfig{Dir: "knowledge"},
		Build:   types.BuildConfig{Workers: 1},
		Logging: types.LoggingConfig{Level: "info", Format: "console"},
	}
}

// SetDefaults registers every key of Default on v so that environment
// overrides and Unmarshal see them. vocabulary has no default so that an
// unset list can be told apart from an empty one.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("vocabulary_file", "")
	v.SetDefault("segment.min_length", d.Segment.MinLength)
	v.SetDefault("select.score_floor", d.Select.ScoreFloor)
	v.SetDefault("select.char_budget", d.Select.CharBudget)
	v.SetDefault("search.max_results", d.Search.MaxResults)
	v.SetDefault("search.min_token_length", d.Search.MinTokenLength)
	v.SetDefault("corpus.dir", d.Corpus.Dir)
	v.SetDefault("corpus.includes", d.Corpus.Includes)
	v.SetDefault("corpus.excludes", d.Corpus.Excludes)
	v.SetDefault("conversion.backend", string(d.Conversion.Backend))
	v.SetDefault("conversion.pdf_backend", string(d.Conversion.PDFBackend))
	v.SetDefault("store.dir", d.Store.Dir)
	v.SetDefault("build.workers", d.Build.Workers)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// BindEnv makes v read SNIPPET_ENGINE_* variables, with dots in keys
// replaced by underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("vocabulary")
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if v.IsSet("vocabulary") && cfg.Vocabulary == nil {
		cfg.Vocabulary = []string{}
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no stage can run with.
func Validate(cfg types.Config) error {
	switch {
	case cfg.Segment.MinLength < 0:
		return fmt.Errorf("segment.min_length must not be negative, got %d", cfg.Segment.MinLength)
	case cfg.Select.CharBudget < 0:
		return fmt.Errorf("select.char_budget must not be negative, got %d", cfg.Select.CharBudget)
	case cfg.Search.MaxResults < 1:
		return fmt.Errorf("search.max_results must be at least 1, got %d", cfg.Search.MaxResults)
	case cfg.Search.MinTokenLength < 1:
		return fmt.Errorf("search.min_token_length must be at least 1, got %d", cfg.Search.MinTokenLength)
	case cfg.Build.Workers < 1:
		return fmt.Errorf("build.workers must be at least 1, got %d", cfg.Build.Workers)
	}
	switch cfg.Conversion.Backend {
	case types.BackendAuto, types.BackendText, types.BackendPdftotext, types.BackendMarkitdown:
	default:
		return fmt.Errorf("unknown conversion.backend %q", cfg.Conversion.Backend)
	}
	return nil
}

// Vocabulary returns the terms the scorer uses: the terms in
// cfg.VocabularyFile when set, otherwise cfg.Vocabulary when it is non-nil,
// otherwise relevance.DefaultTerms. An empty non-nil list gives an empty
// vocabulary, which scores percentages only.
func Vocabulary(cfg types.Config) (relevance.Vocabulary, error) {
	switch {
	case cfg.VocabularyFile != "":
		v, err := relevance.LoadVocabulary(cfg.VocabularyFile)
		if err != nil {
			return relevance.Vocabulary{}, err
		}
		return v, nil
	case cfg.Vocabulary != nil:
		return relevance.NewVocabulary(cfg.Vocabulary), nil
	default:
		return relevance.NewVocabulary(relevance.DefaultTerms), nil
	}
}
