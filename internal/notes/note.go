// Package notes selects the Markdown notes a run converts and derives
// their display titles and output names.
package notes

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownExt is the only extension a note may have.
const MarkdownExt = ".md"

// Note is a Markdown file identified by its slash-separated path relative
// to the notes directory.
type Note struct {
	Path string
}

// Base returns the note's filename, e.g. "my_notes.md".
func (n Note) Base() string {
	return path.Base(n.Path)
}

// Stem returns the filename without extension.
func (n Note) Stem() string {
	base := n.Base()
	return strings.TrimSuffix(base, path.Ext(base))
}

// OutputName returns the PDF filename for the note.
func (n Note) OutputName() string {
	return n.Stem() + ".pdf"
}

// Title returns the note's display title.
func (n Note) Title() string {
	return Title(n.Path)
}

// Title converts a file path into a display title: the filename without
// extension, underscores replaced by spaces, each word title-cased.
// Runs of underscores keep one space each.
func Title(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	// A Caser is stateful; one per call keeps Title safe for concurrent use.
	return cases.Title(language.English).String(strings.ReplaceAll(stem, "_", " "))
}
