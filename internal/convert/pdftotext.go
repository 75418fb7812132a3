// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

const binPdftotext = "pdftotext"

// toolRunner runs a host binary. *container.Tool implements it.
type toolRunner interface {
	Run(ctx context.Context, args []string, stdout io.Writer) error
}

// PdftotextExtractor extracts text with poppler's pdftotext, which writes a
// form feed after every page.
type PdftotextExtractor struct {
	tool toolRunner
}

// NewPdftotextExtractor wraps a resolved pdftotext binary.
func NewPdftotextExtractor(tool toolRunner) *PdftotextExtractor {
	return &PdftotextExtractor{tool: tool}
}

// ExtractPages runs pdftotext on path and splits its output into pages.
func (p *PdftotextExtractor) ExtractPages(ctx context.Context, path string) ([]types.Page, error) {
	var out bytes.Buffer
	if err := p.tool.Run(ctx, []string{"-enc", "UTF-8", path, "-"}, &out); err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", path, err)
	}
	return SplitPages(out.String()), nil
}
