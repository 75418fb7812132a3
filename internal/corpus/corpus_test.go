// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

func touch(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func ids(sources []types.Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.ID
	}
	return out
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"who_guidelines.pdf",
		"NFHS-5.pdf",
		"notes/poshan.txt",
		"notes/image.png",
		".git/objects/pack.pdf",
		"archive/old.pdf",
	} {
		touch(t, root, rel)
	}

	w := NewWalker(nil, []string{"**/.git/**", "archive/**"})
	sources, err := w.Walk(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"NFHS-5.pdf", "notes/poshan.txt", "who_guidelines.pdf"}, ids(sources))
	for _, s := range sources {
		assert.True(t, filepath.IsAbs(s.Path))
		assert.FileExists(t, s.Path)
	}
}

func TestWalk_CustomIncludes(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.pdf")
	touch(t, root, "b.txt")

	sources, err := NewWalker([]string{"*.txt"}, nil).Walk(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, ids(sources))
}

func TestWalk_MissingRoot(t *testing.T) {
	_, err := NewWalker(nil, nil).Walk(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSortSources(t *testing.T) {
	sources := []types.Source{{ID: "c.pdf"}, {ID: "a.pdf"}, {ID: "b.pdf"}}
	SortSources(sources)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, ids(sources))
}
