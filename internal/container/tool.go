// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"context"
	"fmt"
	"io"
)

// Tool runs a binary installed on the host, such as pdftotext.
type Tool struct {
	bin  string
	path string
	exec executor
}

// LookupTool resolves bin on PATH.
func LookupTool(bin string) (*Tool, error) {
	return lookupTool(defaultExec, bin)
}

func lookupTool(exec executor, bin string) (*Tool, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", bin, err)
	}
	return &Tool{bin: bin, path: path, exec: exec}, nil
}

// Name returns the binary name.
func (t *Tool) Name() string { return t.bin }

// Run executes the tool with args and copies its stdout to stdout.
func (t *Tool) Run(ctx context.Context, args []string, stdout io.Writer) error {
	if err := t.exec.RunPiped(ctx, t.path, args, nil, stdout); err != nil {
		return fmt.Errorf("running %s: %w", t.bin, err)
	}
	return nil
}
