package notes2pdf

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/notes2pdf/internal/fetch"
	"github.com/alnah/notes2pdf/internal/fileutil"
	"github.com/alnah/notes2pdf/internal/notes"
	"github.com/alnah/notes2pdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ PageRenderer         = (*pipeline.PageRenderer)(nil)
	_ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)
	_ fetch.Fetcher        = (*fetch.HTTPFetcher)(nil)
	_ fetch.Fetcher        = (*fetch.LocalRenderer)(nil)
)

// pdfFileMode is the permission of written PDF files.
const pdfFileMode = 0o644

// Converter turns notes into PDF files.
// Create with NewConverter, convert with ConvertNote or Convert, and Close
// when done. Not safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	fetcher      fetch.Fetcher
	pageRenderer PageRenderer
	cssInjector  pipeline.CSSInjector
	pdfConverter pdfConverter
}

// Input is a rendered page ready to print.
type Input struct {
	Note notes.Note
	HTML string // full page, before stylesheet injection
}

// Result describes one written PDF.
type Result struct {
	Note       notes.Note
	Title      string
	OutputPath string
	Found      bool // false when the source had no rendered article
	Size       int  // bytes written
}

// NewConverter creates a Converter. WithOutputDir is required.
// The browser is not started until the first conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.outputDir == "" {
		return nil, fmt.Errorf("%w: output directory", ErrMissingOption)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// ConvertNote fetches note, renders it through the page template and
// writes <output dir>/<stem>.pdf. A note whose source page has no rendered
// article is still written, with an empty article.
func (c *Converter) ConvertNote(ctx context.Context, note notes.Note) (*Result, error) {
	if c.fetcher == nil {
		return nil, fmt.Errorf("%w: fetcher", ErrMissingOption)
	}
	if c.pageRenderer == nil {
		return nil, fmt.Errorf("%w: page renderer", ErrMissingOption)
	}

	fragment, err := c.fetcher.Fetch(ctx, note.Path)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", note.Path, err)
	}

	title := note.Title()
	page, err := c.pageRenderer.Render(title, fragment.HTML)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", note.Path, err)
	}

	res, err := c.Convert(ctx, Input{Note: note, HTML: page})
	if err != nil {
		return nil, err
	}
	res.Title = title
	res.Found = fragment.Found
	return res, nil
}

// Convert injects the note's stylesheets into input.HTML, prints it and
// writes the PDF. Nothing is written if printing fails.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	outputPath := c.OutputPath(input.Note)
	if err := fileutil.RequireDir(c.cfg.outputDir); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWritePDF, outputPath, err)
	}

	htmlContent := c.cssInjector.InjectCSS(ctx, input.HTML, c.stylesheets(input.Note)...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Landscape: c.isLandscape(input.Note),
	})
	if err != nil {
		return nil, fmt.Errorf("converting %s to PDF: %w", input.Note.Path, err)
	}

	if err := fileutil.WriteFileAtomic(outputPath, pdfBytes, pdfFileMode); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWritePDF, outputPath, err)
	}

	return &Result{
		Note:       input.Note,
		Title:      input.Note.Title(),
		OutputPath: outputPath,
		Found:      true,
		Size:       len(pdfBytes),
	}, nil
}

// OutputPath returns where the PDF for note is written. Notes in
// subdirectories share the flat output directory.
func (c *Converter) OutputPath(note notes.Note) string {
	return filepath.Join(c.cfg.outputDir, note.OutputName())
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
