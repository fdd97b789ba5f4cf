package notes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNoChangeSource indicates incremental selection was requested without
// a version-control client.
var ErrNoChangeSource = errors.New("incremental selection requires a change source")

// defaultAgainst is the revision diffed against when SelectOptions.Against is empty.
const defaultAgainst = "HEAD~"

// ChangeSource reports files changed since the output directory was last
// committed. Implemented by *vcs.Git.
type ChangeSource interface {
	LastCommit(ctx context.Context, path string) (string, error)
	ChangedFiles(ctx context.Context, from, to string) ([]string, error)
}

// SelectOptions controls which notes a run converts.
type SelectOptions struct {
	Root    string   // notes directory
	All     bool     // full scan instead of incremental selection
	Exclude []string // substrings that drop a path

	// Incremental mode only.
	Changes   ChangeSource
	OutputDir string // its last commit anchors the diff
	Against   string // revision to diff against (default "HEAD~")
}

// Select returns the notes to convert, in the order the scan or the diff
// produced them.
func Select(ctx context.Context, opts SelectOptions) ([]Note, error) {
	var paths []string
	var err error

	if opts.All {
		paths, err = ScanAll(opts.Root)
	} else {
		paths, err = Changed(ctx, opts.Changes, opts.Root, opts.OutputDir, opts.Against)
	}
	if err != nil {
		return nil, err
	}

	return Filter(paths, opts.Exclude), nil
}

// ScanAll walks root and returns every .md file as a slash-separated path
// relative to root, in lexical order. Hidden files and directories are
// skipped, as a shell glob of **/*.md would.
func ScanAll(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if p == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(p) != MarkdownExt {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// Changed returns the .md files that differ between the last commit
// touching outputDir and the against revision. Files deleted from the
// working tree are dropped since there is nothing left to convert.
func Changed(ctx context.Context, changes ChangeSource, root, outputDir, against string) ([]string, error) {
	if changes == nil {
		return nil, ErrNoChangeSource
	}
	if against == "" {
		against = defaultAgainst
	}

	anchor, err := changes.LastCommit(ctx, outputDir)
	if err != nil {
		return nil, err
	}

	changed, err := changes.ChangedFiles(ctx, anchor, against)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, p := range changed {
		p = filepath.ToSlash(p)
		if path.Ext(p) != MarkdownExt {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(p))); err != nil {
			continue
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Filter drops paths containing any exclude substring and wraps the rest.
func Filter(paths, exclude []string) []Note {
	notes := make([]Note, 0, len(paths))
	for _, p := range paths {
		if IsExcluded(p, exclude) {
			continue
		}
		notes = append(notes, Note{Path: p})
	}
	return notes
}

// IsExcluded reports whether p contains any of the exclude substrings.
func IsExcluded(p string, exclude []string) bool {
	for _, e := range exclude {
		if e != "" && strings.Contains(p, e) {
			return true
		}
	}
	return false
}
