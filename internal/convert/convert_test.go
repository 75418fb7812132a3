// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

// fakeTool implements toolRunner with canned output.
type fakeTool struct {
	output string
	err    error
	args   []string
}

func (f *fakeTool) Run(ctx context.Context, args []string, stdout io.Writer) error {
	f.args = args
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

// fakeRuntime implements container.Runtime.
type fakeRuntime struct {
	imageErr error
	output   string
	runErr   error
	stdin    string
}

func (f *fakeRuntime) Name() string    { return "fake" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(image string) error { return f.imageErr }

func (f *fakeRuntime) Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error {
	data, _ := io.ReadAll(stdin)
	f.stdin = string(data)
	if f.runErr != nil {
		return f.runErr
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

// fakeExtractor records which paths it was asked for.
type fakeExtractor struct {
	name  string
	paths []string
}

func (f *fakeExtractor) ExtractPages(ctx context.Context, path string) ([]types.Page, error) {
	f.paths = append(f.paths, path)
	return []types.Page{{Number: 1, Text: f.name}}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []types.Page
	}{
		{
			name: "form feed separated",
			text: "one\ftwo\f",
			want: []types.Page{{Number: 1, Text: "one"}, {Number: 2, Text: "two"}},
		},
		{
			name: "blank page is missing",
			text: "one\f \n\fthree",
			want: []types.Page{
				{Number: 1, Text: "one"},
				{Number: 2, Text: " \n", Missing: true},
				{Number: 3, Text: "three"},
			},
		},
		{
			name: "no form feed",
			text: "single page",
			want: []types.Page{{Number: 1, Text: "single page"}},
		},
		{
			name: "empty",
			text: "",
			want: []types.Page{{Number: 1, Text: "", Missing: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPages(tt.text))
		})
	}
}

func TestTextExtractor(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", "first page\fsecond page")

	pages, err := TextExtractor{}.ExtractPages(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []types.Page{
		{Number: 1, Text: "first page"},
		{Number: 2, Text: "second page"},
	}, pages)
}

func TestTextExtractor_MissingFile(t *testing.T) {
	_, err := TextExtractor{}.ExtractPages(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestPdftotextExtractor(t *testing.T) {
	tool := &fakeTool{output: "Page one text.\f\fPage three text.\f"}
	ex := NewPdftotextExtractor(tool)

	pages, err := ex.ExtractPages(context.Background(), "/corpus/report.pdf")
	require.NoError(t, err)

	assert.Equal(t, []string{"-enc", "UTF-8", "/corpus/report.pdf", "-"}, tool.args)
	assert.Equal(t, []types.Page{
		{Number: 1, Text: "Page one text."},
		{Number: 2, Text: "", Missing: true},
		{Number: 3, Text: "Page three text."},
	}, pages)
}

func TestPdftotextExtractor_Failure(t *testing.T) {
	ex := NewPdftotextExtractor(&fakeTool{err: errors.New("Syntax Error: Couldn't read xref table")})

	_, err := ex.ExtractPages(context.Background(), "/corpus/broken.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestMarkitdownExtractor(t *testing.T) {
	path := writeFile(t, t.TempDir(), "guide.pdf", "%PDF-1.7 fake")
	rt := &fakeRuntime{output: "# Guide\n\nBody text."}

	ex, err := NewMarkitdownExtractor(rt)
	require.NoError(t, err)

	pages, err := ex.ExtractPages(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", rt.stdin)
	assert.Equal(t, []types.Page{{Number: 1, Text: "# Guide\n\nBody text."}}, pages)
}

func TestMarkitdownExtractor_Errors(t *testing.T) {
	_, err := NewMarkitdownExtractor(&fakeRuntime{imageErr: errors.New("no such image")})
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "guide.pdf", "pdf")

	ex, err := NewMarkitdownExtractor(&fakeRuntime{runErr: errors.New("exit 1")})
	require.NoError(t, err)
	_, err = ex.ExtractPages(context.Background(), path)
	assert.Error(t, err)

	ex, err = NewMarkitdownExtractor(&fakeRuntime{})
	require.NoError(t, err)
	_, err = ex.ExtractPages(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty output")
}

func TestAutoExtractor(t *testing.T) {
	text := &fakeExtractor{name: "text"}
	pdf := &fakeExtractor{name: "pdf"}
	auto := &AutoExtractor{Text: text, PDF: pdf}

	for _, p := range []string{"a.txt", "b.PDF", "c.md", "d"} {
		_, err := auto.ExtractPages(context.Background(), p)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a.txt", "c.md"}, text.paths)
	assert.Equal(t, []string{"b.PDF", "d"}, pdf.paths)
}

func TestAutoExtractor_NoPDFBackend(t *testing.T) {
	auto := &AutoExtractor{Text: TextExtractor{}}
	_, err := auto.ExtractPages(context.Background(), "report.pdf")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	ex, err := New(types.ConversionConfig{Backend: types.BackendText})
	require.NoError(t, err)
	assert.IsType(t, TextExtractor{}, ex)

	_, err = New(types.ConversionConfig{Backend: "grobid"})
	assert.Error(t, err)

	ex, err = New(types.ConversionConfig{Backend: types.BackendAuto, PDFBackend: types.BackendText})
	require.NoError(t, err)
	assert.IsType(t, &AutoExtractor{}, ex)
}
