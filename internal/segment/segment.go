// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits page text into paragraph candidates.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

// space matches Unicode whitespace: ASCII whitespace, vertical tab, the
// information separators, NEL, line and paragraph separators and every
// space separator such as NBSP.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\x{2028}\x{2029}\p{Zs}]`

// blankLines matches a paragraph boundary: one or more lines holding only
// whitespace.
var blankLines = regexp.MustCompile(`\n` + space + `*\n`)

// Split returns the paragraphs of one page, in page order. Each paragraph has
// every whitespace run collapsed to a single space. Paragraphs shorter than
// minLength characters are dropped. A missing page yields no paragraphs.
func Split(page types.Page, minLength int) []string {
	if page.Missing || strings.TrimSpace(page.Text) == "" {
		return nil
	}

	var paras []string
	for _, block := range blankLines.Split(page.Text, -1) {
		para := Normalize(block)
		if para == "" || utf8.RuneCountInString(para) < minLength {
			continue
		}
		paras = append(paras, para)
	}
	return paras
}

// SplitPages concatenates the paragraphs of pages in page order.
func SplitPages(pages []types.Page, minLength int) []string {
	var paras []string
	for _, p := range pages {
		paras = append(paras, Split(p, minLength)...)
	}
	return paras
}

// Normalize collapses all whitespace, newlines included, to single spaces and
// trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
