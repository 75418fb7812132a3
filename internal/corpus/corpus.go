// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus locates the source documents of a build.
package corpus

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

// DefaultIncludes matches PDF and plain text files at any depth.
var DefaultIncludes = []string{"**/*.pdf", "**/*.txt"}

// Walker finds files under a root directory that match include patterns
// and no exclude pattern. Patterns use doublestar syntax and are matched
// against slash-separated paths relative to the root.
type Walker struct {
	includes []string
	excludes []string
}

// NewWalker returns a Walker. With no includes, DefaultIncludes is used.
func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	return &Walker{includes: includes, excludes: excludes}
}

// Walk returns the matching files under root ordered by source ID.
func (w *Walker) Walk(root string) ([]types.Source, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving corpus root: %w", err)
	}

	var sources []types.Source
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && w.excluded(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.included(rel) && !w.excluded(rel) {
			sources = append(sources, types.Source{ID: rel, Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking corpus %s: %w", root, err)
	}

	SortSources(sources)
	return sources, nil
}

// SortSources orders sources by ID ascending, in place.
func SortSources(sources []types.Source) {
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].ID < sources[j].ID
	})
}

func (w *Walker) included(path string) bool {
	return matchAny(w.includes, path)
}

func (w *Walker) excluded(path string) bool {
	return matchAny(w.excludes, path)
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
