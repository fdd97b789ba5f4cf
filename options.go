package notes2pdf

import (
	"time"

	"github.com/alnah/notes2pdf/internal/fetch"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings applied by options.
type converterConfig struct {
	timeout        time.Duration
	outputDir      string
	stylesheet     string
	landscapeStyle string
	landscapeFiles map[string]bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// PageRenderer fills the page template for one note.
// Implemented by *pipeline.PageRenderer.
type PageRenderer interface {
	Render(title, article string) (string, error)
}

// WithTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("notes2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithOutputDir sets the directory PDFs are written to. Required.
// The directory is not created.
func WithOutputDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.outputDir = dir
	}
}

// WithStylesheet sets the base stylesheet applied to every note.
func WithStylesheet(css string) Option {
	return func(c *Converter) {
		c.cfg.stylesheet = css
	}
}

// WithLandscape sets the stylesheet added after the base one for notes
// whose file name is in files.
func WithLandscape(css string, files ...string) Option {
	return func(c *Converter) {
		c.cfg.landscapeStyle = css
		c.cfg.landscapeFiles = make(map[string]bool, len(files))
		for _, f := range files {
			c.cfg.landscapeFiles[f] = true
		}
	}
}

// WithFetcher sets where rendered notes come from. Required by ConvertNote.
func WithFetcher(f fetch.Fetcher) Option {
	return func(c *Converter) {
		c.fetcher = f
	}
}

// WithPageRenderer sets the page template renderer. Required by ConvertNote.
func WithPageRenderer(r PageRenderer) Option {
	return func(c *Converter) {
		c.pageRenderer = r
	}
}
