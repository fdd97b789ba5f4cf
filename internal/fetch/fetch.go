// Package fetch obtains the rendered HTML of a note, either from a remote
// Git host that renders Markdown or from the local Markdown file.
package fetch

import (
	"context"
	"errors"
)

// ErrFetch indicates a note could not be fetched or read.
var ErrFetch = errors.New("fetch failed")

// MaxPageSize is the largest response or note file accepted (16MB).
// Anything larger is an error rather than a truncated page.
const MaxPageSize = 16 << 20

// Fragment is the rendered content of one note.
type Fragment struct {
	HTML   string // outer HTML of the markdown-body article
	Found  bool   // false when the page had no markdown-body article
	Source string // URL or file the fragment came from
}

// Fetcher returns the rendered fragment for a note path relative to the
// notes directory (slash separated).
type Fetcher interface {
	Fetch(ctx context.Context, relPath string) (Fragment, error)
}
