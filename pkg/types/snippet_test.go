// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParagraphLen(t *testing.T) {
	assert.Equal(t, 5, Paragraph{Text: "iron!"}.Len())
	assert.Equal(t, 4, Paragraph{Text: "पोषण"}.Len())
	assert.Equal(t, 0, Paragraph{}.Len())
}

func TestKnowledgeStoreWith(t *testing.T) {
	a := Document{Source: "a.pdf", Paragraphs: []Paragraph{{Text: "alpha", Score: 4}}}
	b := Document{Source: "b.pdf", Paragraphs: []Paragraph{{Text: "beta", Score: 3}, {Text: "gamma", Score: 3}}}

	var empty KnowledgeStore
	one := empty.With(a)
	two := one.With(b)

	assert.Empty(t, empty.Documents)
	assert.Len(t, one.Documents, 1)
	assert.Len(t, two.Documents, 2)
	assert.Equal(t, "b.pdf", two.Documents[1].Source)

	assert.Equal(t, 3, two.ParagraphCount())
	assert.Equal(t, 14, two.CharCount())
	assert.Equal(t, 9, b.CharCount())
}

func TestKnowledgeStoreWith_SkipsEmpty(t *testing.T) {
	store := KnowledgeStore{}.With(Document{Source: "a.pdf", Paragraphs: []Paragraph{{Text: "alpha"}}})
	same := store.With(Document{Source: "blank.pdf"})
	assert.Equal(t, store, same)
	assert.Len(t, same.Documents, 1)
}

func TestKnowledgeStoreWith_DoesNotAlias(t *testing.T) {
	base := KnowledgeStore{}.With(Document{Source: "a.pdf", Paragraphs: []Paragraph{{Text: "alpha"}}})
	left := base.With(Document{Source: "b.pdf", Paragraphs: []Paragraph{{Text: "beta"}}})
	right := base.With(Document{Source: "c.pdf", Paragraphs: []Paragraph{{Text: "gamma"}}})

	assert.Equal(t, "b.pdf", left.Documents[1].Source)
	assert.Equal(t, "c.pdf", right.Documents[1].Source)
	assert.Len(t, base.Documents, 1)
}
