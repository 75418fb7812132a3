// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores text against a fixed vocabulary.
//
// Terms are matched as literal substrings of the lowercased text, never as
// patterns: a term such as "z-score" or "3.5" matches only itself.
package relevance

import (
	"regexp"
	"strings"
)

// NumericWeight is the score added for every percentage figure in a text.
const NumericWeight = 3

// percentPattern matches figures like "35%", "12.5 %", "7.%" and "३५%":
// decimal digits of any script, then any Unicode whitespace before the sign.
var percentPattern = regexp.MustCompile(`\p{Nd}+\.?\p{Nd}*[\s\v\x{1c}-\x{1f}\x{85}\x{2028}\x{2029}\p{Zs}]*%`)

// Score returns the relevance of text: the number of literal, non-overlapping
// occurrences of every vocabulary term in the lowercased text, plus
// NumericWeight for each percentage figure. Terms are counted independently,
// so a term contained in another term is counted for both.
func Score(text string, v Vocabulary) int {
	lower := strings.ToLower(text)
	score := 0
	for _, term := range v.terms {
		score += strings.Count(lower, term)
	}
	return score + NumericHits(text)*NumericWeight
}

// NumericHits returns the number of percentage figures in text.
func NumericHits(text string) int {
	return len(percentPattern.FindAllStringIndex(text, -1))
}

// KeywordHits returns the occurrence count of every term that appears in
// text at least once.
func KeywordHits(text string, v Vocabulary) map[string]int {
	lower := strings.ToLower(text)
	hits := make(map[string]int)
	for _, term := range v.terms {
		if n := strings.Count(lower, term); n > 0 {
			hits[term] = n
		}
	}
	return hits
}
