// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the build and query stages
// and the configuration structs for every stage.
package types

import "unicode/utf8"

// Page is the text of one page as returned by a page extraction backend.
type Page struct {
	// Number is the 1-based page number within the source document.
	Number int `json:"number" yaml:"number"`

	// Text is the raw extracted text. It is meaningless when Missing is set.
	Text string `json:"text" yaml:"text"`

	// Missing reports that the backend could not extract text for this page.
	// A missing page contributes no paragraphs and is not an error.
	Missing bool `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Paragraph is a whitespace-normalized block of text with its relevance score.
type Paragraph struct {
	Text  string `json:"text" yaml:"text"`
	Score int    `json:"score" yaml:"score"`
}

// Len returns the paragraph length in characters (runes).
func (p Paragraph) Len() int {
	return utf8.RuneCountInString(p.Text)
}

// Document is the set of paragraphs kept for one source, in rank order:
// score descending, ties in the order they were encountered.
type Document struct {
	Source     string      `json:"source" yaml:"source"`
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`
}

// CharCount returns the sum of the paragraph lengths.
func (d Document) CharCount() int {
	n := 0
	for _, p := range d.Paragraphs {
		n += p.Len()
	}
	return n
}

// KnowledgeStore is the ordered collection of documents produced by a build.
// Documents are ordered by source ascending and none of them is empty.
// A KnowledgeStore is treated as immutable once built.
type KnowledgeStore struct {
	Documents []Document `json:"documents" yaml:"documents"`
}

// With returns a new store with doc appended. Documents without paragraphs
// are omitted and the receiver is returned unchanged.
func (s KnowledgeStore) With(doc Document) KnowledgeStore {
	if len(doc.Paragraphs) == 0 {
		return s
	}
	docs := make([]Document, len(s.Documents), len(s.Documents)+1)
	copy(docs, s.Documents)
	return KnowledgeStore{Documents: append(docs, doc)}
}

// ParagraphCount returns the number of paragraphs across all documents.
func (s KnowledgeStore) ParagraphCount() int {
	n := 0
	for _, d := range s.Documents {
		n += len(d.Paragraphs)
	}
	return n
}

// CharCount returns the number of characters across all documents.
func (s KnowledgeStore) CharCount() int {
	n := 0
	for _, d := range s.Documents {
		n += d.CharCount()
	}
	return n
}

// MatchResult is one ranked paragraph returned by a search.
type MatchResult struct {
	Score  int    `json:"score" yaml:"score"`
	Source string `json:"source" yaml:"source"`
	Text   string `json:"text" yaml:"text"`
}

// Source identifies one input document of a build.
type Source struct {
	// ID is the source identifier recorded in the store: the path relative
	// to the corpus root, using forward slashes.
	ID string `json:"id" yaml:"id"`

	// Path is the filesystem path handed to the page extractor.
	Path string `json:"path" yaml:"path"`
}
