// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

func sampleStore() types.KnowledgeStore {
	return types.KnowledgeStore{Documents: []types.Document{
		{
			Source: "a-who-guidelines.pdf",
			Paragraphs: []types.Paragraph{
				{Text: "Exclusive breastfeeding for six months reduces infant mortality.", Score: 9},
				{Text: "Vitamin A supplementation is recommended in areas with deficiency.", Score: 5},
			},
		},
		{
			Source: "b-nfhs-report.pdf",
			Paragraphs: []types.Paragraph{
				{Text: "Stunting among children under five is 35.5% nationally; stunting is higher in rural areas.", Score: 12},
				{Text: "Anaemia affects 67.1% of children aged 6-59 months.", Score: 8},
			},
		},
	}}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		maxResults int
		want       []types.MatchResult
	}{
		{
			name:       "ranks by occurrence count",
			query:      "stunting rural",
			maxResults: 5,
			want: []types.MatchResult{
				{Score: 3, Source: "b-nfhs-report.pdf", Text: "Stunting among children under five is 35.5% nationally; stunting is higher in rural areas."},
			},
		},
		{
			name:       "case-insensitive substring matching",
			query:      "CHILDREN",
			maxResults: 5,
			want: []types.MatchResult{
				{Score: 1, Source: "b-nfhs-report.pdf", Text: "Stunting among children under five is 35.5% nationally; stunting is higher in rural areas."},
				{Score: 1, Source: "b-nfhs-report.pdf", Text: "Anaemia affects 67.1% of children aged 6-59 months."},
			},
		},
		{
			name:       "ties keep store order across documents",
			query:      "areas",
			maxResults: 5,
			want: []types.MatchResult{
				{Score: 1, Source: "a-who-guidelines.pdf", Text: "Vitamin A supplementation is recommended in areas with deficiency."},
				{Score: 1, Source: "b-nfhs-report.pdf", Text: "Stunting among children under five is 35.5% nationally; stunting is higher in rural areas."},
			},
		},
		{
			name:       "truncates to maxResults",
			query:      "areas",
			maxResults: 1,
			want: []types.MatchResult{
				{Score: 1, Source: "a-who-guidelines.pdf", Text: "Vitamin A supplementation is recommended in areas with deficiency."},
			},
		},
		{
			name:       "no match",
			query:      "pneumonia",
			maxResults: 5,
			want:       []types.MatchResult{},
		},
		{
			name:       "empty query",
			query:      "",
			maxResults: 5,
			want:       []types.MatchResult{},
		},
		{
			name:       "only short tokens",
			query:      "is a of to",
			maxResults: 5,
			want:       []types.MatchResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.query, sampleStore(), tt.maxResults)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_DotIsLiteral(t *testing.T) {
	store := types.KnowledgeStore{Documents: []types.Document{{
		Source: "doc.pdf",
		Paragraphs: []types.Paragraph{
			{Text: "Prevalence was 3.5 per cent in the survey.", Score: 4},
			{Text: "Prevalence was 305 cases in the survey.", Score: 4},
		},
	}}}

	got := Search("3.5", store, 5)
	require.Len(t, got, 1)
	assert.Equal(t, "Prevalence was 3.5 per cent in the survey.", got[0].Text)
}

func TestSearch_RepeatedTokensWeighMore(t *testing.T) {
	got := Search("stunting stunting", sampleStore(), 5)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Score)
}

func TestSearch_DefaultMaxResults(t *testing.T) {
	var paras []types.Paragraph
	for i := 0; i < 12; i++ {
		paras = append(paras, types.Paragraph{Text: fmt.Sprintf("zinc paragraph number %d", i), Score: 3})
	}
	store := types.KnowledgeStore{Documents: []types.Document{{Source: "z.pdf", Paragraphs: paras}}}

	assert.Len(t, Search("zinc", store, 0), DefaultMaxResults)
}

func TestSearch_Properties(t *testing.T) {
	store := sampleStore()
	for _, q := range []string{"stunting children", "areas months", "vitamin breastfeeding infant"} {
		for n := 1; n <= 4; n++ {
			got := Search(q, store, n)
			assert.LessOrEqual(t, len(got), n)
			for i, r := range got {
				assert.Greater(t, r.Score, 0)
				if i > 0 {
					assert.GreaterOrEqual(t, got[i-1].Score, r.Score)
				}
			}
		}
	}
}

func TestSearch_DoesNotModifyStore(t *testing.T) {
	store := sampleStore()
	Search("stunting children areas", store, 5)

	assert.Equal(t, sampleStore(), store)
}

func TestSearch_Concurrent(t *testing.T) {
	store := sampleStore()
	m := NewMatcher(types.SearchConfig{})
	want := m.Search("children stunting", store, 5)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, m.Search("children stunting", store, 5))
		}()
	}
	wg.Wait()
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"how", "prevent", "stunting?"}, Tokenize("  How to PREVENT\tstunting? ", 3))
	assert.Nil(t, Tokenize("", 3))
	assert.Nil(t, Tokenize("a an of", 3))
	assert.Equal(t, []string{"été"}, Tokenize("été", 3))
}

func TestNewMatcher_Defaults(t *testing.T) {
	m := NewMatcher(types.SearchConfig{})
	assert.Equal(t, DefaultMinTokenLength, m.MinTokenLength)
	assert.Equal(t, DefaultMaxResults, m.MaxResults)

	m = NewMatcher(types.SearchConfig{MinTokenLength: 5, MaxResults: 2})
	assert.Equal(t, 5, m.MinTokenLength)
	assert.Equal(t, 2, m.MaxResults)
}
