package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alnah/notes2pdf/internal/pipeline"
)

// LocalRenderer renders notes from the notes directory with Goldmark.
// Used when no remote base URL is configured.
type LocalRenderer struct {
	Root      string
	Converter pipeline.HTMLConverter
}

// NewLocalRenderer creates a LocalRenderer reading notes under root.
func NewLocalRenderer(root string) *LocalRenderer {
	return &LocalRenderer{Root: root, Converter: pipeline.NewGoldmarkConverter()}
}

// Fetch reads and converts the note. Relative images and links resolve
// against the note's directory. The fragment is always Found.
func (l *LocalRenderer) Fetch(ctx context.Context, relPath string) (Fragment, error) {
	path := filepath.Join(l.Root, filepath.FromSlash(relPath))

	content, err := readLimited(path)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	article, err := l.Converter.ToHTML(ctx, content)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: converting %s: %w", ErrFetch, relPath, err)
	}

	base, err := pipeline.DirURL(filepath.Dir(path))
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	article, err = pipeline.RewriteRelativePaths(article, base)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: rewriting links in %s: %v", ErrFetch, relPath, err)
	}

	return Fragment{HTML: article, Found: true, Source: path}, nil
}

func readLimited(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is under the configured notes directory
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxPageSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) > MaxPageSize {
		return "", fmt.Errorf("%s exceeds %d bytes", path, MaxPageSize)
	}
	return string(data), nil
}

// Compile-time interface check.
var _ Fetcher = (*LocalRenderer)(nil)
