// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/snippet-engine/internal/literal"
	"github.com/pdiddy/snippet-engine/internal/match"
	"github.com/pdiddy/snippet-engine/pkg/types"
)

const moduleHeader = "// Code generated by snippet-engine. DO NOT EDIT.\n\n"

const dataDecl = "export const knowledgeBase = ["

// searchFunc counts literal, non-overlapping token occurrences the same way
// the Go matcher does. Array.prototype.sort is stable.
const searchFunc = `
export function searchKnowledge(query, maxResults = %d) {
  const tokens = query.toLowerCase().split(/\s+/).filter((t) => [...t].length >= %d);
  if (tokens.length === 0) return [];
  const results = [];
  for (const doc of knowledgeBase) {
    for (const text of doc.paragraphs) {
      const lower = text.toLowerCase();
      let score = 0;
      for (const token of tokens) score += lower.split(token).length - 1;
      if (score > 0) results.push({ score, source: doc.source, text });
    }
  }
  results.sort((a, b) => b.score - a.score);
  return results.slice(0, maxResults);
}
`

// RenderModule returns the JavaScript module for ks: the knowledgeBase data
// array followed by a searchKnowledge function. Values below 1 take the
// same defaults match.NewMatcher applies, so both searches agree.
func RenderModule(ks types.KnowledgeStore, maxResults, minTokenLength int) string {
	m := match.NewMatcher(types.SearchConfig{MaxResults: maxResults, MinTokenLength: minTokenLength})

	var b strings.Builder
	b.WriteString(moduleHeader)
	b.WriteString(dataDecl)
	b.WriteString("\n")
	for _, doc := range ks.Documents {
		b.WriteString("  {\n")
		fmt.Fprintf(&b, "    source: %s,\n", literal.Quote(doc.Source))
		b.WriteString("    paragraphs: [\n")
		for _, p := range doc.Paragraphs {
			fmt.Fprintf(&b, "      %s,\n", literal.Quote(p.Text))
		}
		b.WriteString("    ],\n")
		b.WriteString("  },\n")
	}
	b.WriteString("];\n")
	fmt.Fprintf(&b, searchFunc, m.MaxResults, m.MinTokenLength)
	return b.String()
}

// ReadModule parses the knowledgeBase array of a module written by
// RenderModule. Scores are not part of the module and read back as zero.
func ReadModule(src string) (types.KnowledgeStore, error) {
	start := strings.Index(src, dataDecl)
	if start < 0 {
		return types.KnowledgeStore{}, fmt.Errorf("knowledgeBase declaration not found")
	}
	sc := &scanner{src: src, pos: start + len(dataDecl)}

	var ks types.KnowledgeStore
	for {
		sc.skip()
		if sc.accept("]") {
			return ks, nil
		}
		doc, err := sc.document()
		if err != nil {
			return types.KnowledgeStore{}, err
		}
		ks.Documents = append(ks.Documents, doc)
	}
}

type scanner struct {
	src string
	pos int
}

// skip advances past whitespace and commas.
func (s *scanner) skip() {
	for s.pos < len(s.src) {
		c := rune(s.src[s.pos])
		if c != ',' && !unicode.IsSpace(c) {
			return
		}
		s.pos++
	}
}

func (s *scanner) accept(tok string) bool {
	if strings.HasPrefix(s.src[s.pos:], tok) {
		s.pos += len(tok)
		return true
	}
	return false
}

func (s *scanner) expect(tok string) error {
	s.skip()
	if !s.accept(tok) {
		return fmt.Errorf("expected %q at offset %d", tok, s.pos)
	}
	return nil
}

func (s *scanner) quoted() (string, error) {
	s.skip()
	v, n, err := literal.Unquote(s.src[s.pos:])
	if err != nil {
		return "", fmt.Errorf("reading string at offset %d: %w", s.pos, err)
	}
	s.pos += n
	return v, nil
}

func (s *scanner) document() (types.Document, error) {
	var doc types.Document
	if err := s.expect("{"); err != nil {
		return doc, err
	}
	if err := s.expect("source:"); err != nil {
		return doc, err
	}
	source, err := s.quoted()
	if err != nil {
		return doc, err
	}
	doc.Source = source

	if err := s.expect("paragraphs:"); err != nil {
		return doc, err
	}
	if err := s.expect("["); err != nil {
		return doc, err
	}
	for {
		s.skip()
		if s.accept("]") {
			break
		}
		text, err := s.quoted()
		if err != nil {
			return doc, err
		}
		doc.Paragraphs = append(doc.Paragraphs, types.Paragraph{Text: text})
	}
	if err := s.expect("}"); err != nil {
		return doc, err
	}
	return doc, nil
}
