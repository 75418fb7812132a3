// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts page-level plain text from source documents with
// pluggable backends: plain text files, pdftotext on the host, and the
// markitdown container image.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/snippet-engine/internal/container"
	"github.com/pdiddy/snippet-engine/pkg/types"
)

// pageBreak separates pages in text files and pdftotext output.
const pageBreak = "\f"

// PageExtractor returns the text of every page of a document. An error
// means the whole document could not be read; a page without text is
// reported as a Missing page instead.
type PageExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]types.Page, error)
}

// SplitPages splits text on form feeds into numbered pages. Blank pages are
// marked Missing. A trailing form feed does not start a new page.
func SplitPages(text string) []types.Page {
	text = strings.TrimSuffix(text, pageBreak)
	parts := strings.Split(text, pageBreak)
	pages := make([]types.Page, len(parts))
	for i, part := range parts {
		pages[i] = types.Page{
			Number:  i + 1,
			Text:    part,
			Missing: strings.TrimSpace(part) == "",
		}
	}
	return pages
}

// TextExtractor reads plain text files. Form feeds separate pages.
type TextExtractor struct{}

// ExtractPages reads the file at path.
func (TextExtractor) ExtractPages(ctx context.Context, path string) ([]types.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return SplitPages(string(data)), nil
}

// AutoExtractor picks a backend by file extension: text files go to Text,
// everything else to PDF.
type AutoExtractor struct {
	Text PageExtractor
	PDF  PageExtractor
}

// textExtensions are the extensions handled as plain text.
var textExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
}

// ExtractPages delegates to the backend for path's extension.
func (a *AutoExtractor) ExtractPages(ctx context.Context, path string) ([]types.Page, error) {
	if textExtensions[strings.ToLower(filepath.Ext(path))] {
		return a.Text.ExtractPages(ctx, path)
	}
	if a.PDF == nil {
		return nil, fmt.Errorf("no PDF backend configured for %s", path)
	}
	return a.PDF.ExtractPages(ctx, path)
}

// New returns the extractor for cfg. Backends that need an external program
// verify that it is available before returning.
func New(cfg types.ConversionConfig) (PageExtractor, error) {
	switch cfg.Backend {
	case types.BackendText:
		return TextExtractor{}, nil
	case types.BackendPdftotext, types.BackendMarkitdown:
		return newPDFBackend(cfg.Backend)
	case types.BackendAuto, "":
		pdfBackend := cfg.PDFBackend
		if pdfBackend == "" {
			pdfBackend = types.BackendPdftotext
		}
		pdf, err := newPDFBackend(pdfBackend)
		if err != nil {
			return nil, err
		}
		return &AutoExtractor{Text: TextExtractor{}, PDF: pdf}, nil
	default:
		return nil, fmt.Errorf("unsupported conversion backend %q: use auto, text, pdftotext, or markitdown", cfg.Backend)
	}
}

func newPDFBackend(backend types.ConversionBackend) (PageExtractor, error) {
	switch backend {
	case types.BackendPdftotext:
		tool, err := container.LookupTool(binPdftotext)
		if err != nil {
			return nil, err
		}
		return NewPdftotextExtractor(tool), nil
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewMarkitdownExtractor(rt)
	case types.BackendText:
		return TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported PDF backend %q: use pdftotext or markitdown", backend)
	}
}
