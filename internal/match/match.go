// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match ranks stored paragraphs against a free-text query.
//
// Matching is read-only over an immutable store, so a Matcher may be used
// from any number of goroutines at once.
package match

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

const (
	// DefaultMaxResults is the number of results returned when none is given.
	DefaultMaxResults = 5

	// DefaultMinTokenLength is the shortest query token that is matched.
	DefaultMinTokenLength = 3
)

// Matcher holds the query settings.
type Matcher struct {
	// MinTokenLength is the shortest token, in characters, kept from a query.
	MinTokenLength int

	// MaxResults is used when Search is called with maxResults <= 0.
	MaxResults int
}

// NewMatcher returns a Matcher configured from cfg, falling back to the
// defaults for unset values.
func NewMatcher(cfg types.SearchConfig) *Matcher {
	m := &Matcher{
		MinTokenLength: cfg.MinTokenLength,
		MaxResults:     cfg.MaxResults,
	}
	if m.MinTokenLength <= 0 {
		m.MinTokenLength = DefaultMinTokenLength
	}
	if m.MaxResults <= 0 {
		m.MaxResults = DefaultMaxResults
	}
	return m
}

// Search returns at most maxResults paragraphs of store that contain at
// least one query token, best first. A paragraph's score is the total
// number of literal, non-overlapping occurrences of every token in its
// lowercased text. Equal scores keep store order.
func (m *Matcher) Search(query string, store types.KnowledgeStore, maxResults int) []types.MatchResult {
	if maxResults <= 0 {
		maxResults = m.MaxResults
	}

	tokens := Tokenize(query, m.MinTokenLength)
	if len(tokens) == 0 {
		return []types.MatchResult{}
	}

	results := []types.MatchResult{}
	for _, doc := range store.Documents {
		for _, p := range doc.Paragraphs {
			if score := countTokens(strings.ToLower(p.Text), tokens); score > 0 {
				results = append(results, types.MatchResult{
					Score:  score,
					Source: doc.Source,
					Text:   p.Text,
				})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// Search ranks store against query with the default settings.
func Search(query string, store types.KnowledgeStore, maxResults int) []types.MatchResult {
	return NewMatcher(types.SearchConfig{}).Search(query, store, maxResults)
}

// Tokenize lowercases query, splits it on whitespace and keeps the tokens
// of at least minLength characters, in query order. Repeated tokens are
// kept and therefore weigh more.
func Tokenize(query string, minLength int) []string {
	var tokens []string
	for _, f := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(f) >= minLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func countTokens(text string, tokens []string) int {
	n := 0
	for _, tok := range tokens {
		n += strings.Count(text, tok)
	}
	return n
}
