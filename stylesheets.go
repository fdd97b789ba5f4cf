package notes2pdf

import "github.com/alnah/notes2pdf/internal/notes"

// isLandscape reports whether the note's file name is listed as landscape.
func (c *Converter) isLandscape(note notes.Note) bool {
	return c.cfg.landscapeFiles[note.Base()]
}

// stylesheets returns the stylesheets for note in application order:
// the base stylesheet, then the landscape one when the note is listed.
func (c *Converter) stylesheets(note notes.Note) []string {
	sheets := []string{c.cfg.stylesheet}
	if c.isLandscape(note) {
		sheets = append(sheets, c.cfg.landscapeStyle)
	}
	return sheets
}
