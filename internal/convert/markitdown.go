// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/snippet-engine/internal/container"
	"github.com/pdiddy/snippet-engine/pkg/types"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownExtractor pipes documents through the markitdown container
// image. Markitdown does not report page boundaries, so the whole document
// comes back as a single page.
type MarkitdownExtractor struct {
	runtime container.Runtime
}

// NewMarkitdownExtractor verifies that the markitdown image exists in rt.
func NewMarkitdownExtractor(rt container.Runtime) (*MarkitdownExtractor, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownExtractor{runtime: rt}, nil
}

// ExtractPages converts the document at path.
func (m *MarkitdownExtractor) ExtractPages(ctx context.Context, path string) ([]types.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, imageMarkitdown, f, &out); err != nil {
		return nil, fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("markitdown produced empty output for %s", path)
	}

	return []types.Page{{Number: 1, Text: out.String()}}, nil
}
