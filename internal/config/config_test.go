// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/snippet-engine/internal/relevance"
	"github.com/pdiddy/snippet-engine/pkg/types"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	if yaml != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Segment.MinLength)
	assert.Equal(t, 2, cfg.Select.ScoreFloor)
	assert.Equal(t, 12000, cfg.Select.CharBudget)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 3, cfg.Search.MinTokenLength)
	assert.Equal(t, "pdfs", cfg.Corpus.Dir)
	assert.Equal(t, []string{"**/*.pdf", "**/*.txt"}, cfg.Corpus.Includes)
	assert.Equal(t, types.BackendAuto, cfg.Conversion.Backend)
	assert.Equal(t, types.BackendPdftotext, cfg.Conversion.PDFBackend)
	assert.Equal(t, "knowledge", cfg.Store.Dir)
	assert.Equal(t, 1, cfg.Build.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Vocabulary)
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(newViper(t, `
vocabulary: [malaria, dengue]
select:
  char_budget: 4000
search:
  max_results: 10
conversion:
  backend: text
build:
  workers: 4
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"malaria", "dengue"}, cfg.Vocabulary)
	assert.Equal(t, 4000, cfg.Select.CharBudget)
	assert.Equal(t, 2, cfg.Select.ScoreFloor)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, types.BackendText, cfg.Conversion.Backend)
	assert.Equal(t, 4, cfg.Build.Workers)
}

func TestLoad_ExplicitEmptyVocabulary(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantLen int
		isEmpty bool
	}{
		{"unset uses built-in terms", "select:\n  char_budget: 4000\n", len(relevance.NewVocabulary(relevance.DefaultTerms).Terms()), false},
		{"inline empty list", "vocabulary: []\n", 0, true},
		{"block empty list", "vocabulary:\n  []\n", 0, true},
		{"inline terms", "vocabulary: [zinc]\n", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newViper(t, tt.yaml))
			require.NoError(t, err)

			v, err := Vocabulary(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, v.Len())
			if tt.isEmpty {
				assert.NotNil(t, cfg.Vocabulary)
				assert.Equal(t, 3, relevance.Score("Zinc coverage rose to 40%.", v))
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SNIPPET_ENGINE_SELECT_CHAR_BUDGET", "800")
	t.Setenv("SNIPPET_ENGINE_STORE_DIR", "/tmp/snippets")

	cfg, err := Load(newViper(t, "select:\n  char_budget: 4000\n"))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Select.CharBudget)
	assert.Equal(t, "/tmp/snippets", cfg.Store.Dir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative budget", "select:\n  char_budget: -1\n"},
		{"zero workers", "build:\n  workers: 0\n"},
		{"zero token length", "search:\n  min_token_length: 0\n"},
		{"zero max results", "search:\n  max_results: 0\n"},
		{"unknown backend", "conversion:\n  backend: ocr\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestVocabulary(t *testing.T) {
	v, err := Vocabulary(Default())
	require.NoError(t, err)
	assert.Equal(t, relevance.NewVocabulary(relevance.DefaultTerms), v)

	cfg := Default()
	cfg.Vocabulary = []string{}
	v, err = Vocabulary(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())

	cfg.Vocabulary = []string{"Dengue", "malaria"}
	v, err = Vocabulary(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"dengue", "malaria"}, v.Terms())

	path := filepath.Join(t.TempDir(), "terms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- zinc\n- iodine\n"), 0o644))
	cfg.VocabularyFile = path
	v, err = Vocabulary(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"iodine", "zinc"}, v.Terms())

	cfg.VocabularyFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Vocabulary(cfg)
	assert.Error(t, err)
}
