// Package pipeline turns a note's HTML fragment into the page handed to the
// PDF writer.
//
// Stages:
//   - Markdown to article conversion via Goldmark (local notes only)
//   - Relative link and image resolution
//   - Page template execution and pretty-printing
//   - Stylesheet injection
//
// PDF generation is handled by the root notes2pdf package using headless
// Chrome (go-rod).
package pipeline
