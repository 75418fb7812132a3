// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

// Format names an export file format.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatModule Format = "js"
	FormatAll    Format = "all"
)

// Export file names inside the index directory.
const (
	yamlFile   = "snippets.yaml"
	jsonFile   = "snippets.json"
	moduleFile = "snippets.js"
)

// ParseFormat validates an export format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatYAML, FormatJSON, FormatModule, FormatAll:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want yaml, json, js, or all)", name)
	}
}

// ExportEntry is one document as written to the YAML and JSON exports.
type ExportEntry struct {
	Source     string   `json:"source" yaml:"source"`
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
}

// Entries flattens ks into export entries, preserving document and
// paragraph order.
func Entries(ks types.KnowledgeStore) []ExportEntry {
	entries := make([]ExportEntry, len(ks.Documents))
	for i, doc := range ks.Documents {
		texts := make([]string, len(doc.Paragraphs))
		for j, p := range doc.Paragraphs {
			texts[j] = p.Text
		}
		entries[i] = ExportEntry{Source: doc.Source, Paragraphs: texts}
	}
	return entries
}

// Export writes ks in the requested format, or all formats for FormatAll.
// maxResults is the default result count of the module's search function.
// It returns the paths written.
func (s *Store) Export(ks types.KnowledgeStore, format Format, maxResults, minTokenLength int) ([]string, error) {
	var paths []string
	if format == FormatYAML || format == FormatAll {
		p, err := s.ExportYAML(ks)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	if format == FormatJSON || format == FormatAll {
		p, err := s.ExportJSON(ks)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	if format == FormatModule || format == FormatAll {
		p, err := s.ExportModule(ks, maxResults, minTokenLength)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ExportYAML writes ks to index/snippets.yaml.
func (s *Store) ExportYAML(ks types.KnowledgeStore) (string, error) {
	data, err := yaml.Marshal(Entries(ks))
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport(yamlFile, data)
}

// ExportJSON writes ks to index/snippets.json.
func (s *Store) ExportJSON(ks types.KnowledgeStore) (string, error) {
	data, err := json.MarshalIndent(Entries(ks), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport(jsonFile, append(data, '\n'))
}

// ExportModule writes ks to index/snippets.js as an ES module.
func (s *Store) ExportModule(ks types.KnowledgeStore, maxResults, minTokenLength int) (string, error) {
	return s.writeExport(moduleFile, []byte(RenderModule(ks, maxResults, minTokenLength)))
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
