// Package notes2pdf converts Markdown notes to PDF files using headless Chrome.
//
// # Quick Start
//
// A Converter is built once per run from the page template, the fetcher and
// the stylesheets, then used for every note:
//
//	tmpl, err := assets.LoadTemplate(cfg.TemplateDir, cfg.Template)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := notes2pdf.NewConverter(
//	    notes2pdf.WithOutputDir(cfg.OutputDir),
//	    notes2pdf.WithFetcher(fetch.NewHTTPFetcher(cfg.GitURL, timeout)),
//	    notes2pdf.WithPageRenderer(pipeline.NewPageRenderer(tmpl)),
//	    notes2pdf.WithStylesheet(css),
//	    notes2pdf.WithLandscape(cfg.LandscapeStyle, cfg.LandscapeFiles...),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	res, err := conv.ConvertNote(ctx, notes.Note{Path: "python/intro.md"})
//
// # Conversion Pipeline
//
// For each note:
//
//  1. Fetch the rendered article (remote Git host or local Goldmark)
//  2. Derive the title from the file name
//  3. Execute the page template and pretty-print it
//  4. Inject the base stylesheet, then the landscape stylesheet if the
//     note is listed as landscape
//  5. Print to PDF via headless Chrome (go-rod) and write
//     <output dir>/<stem>.pdf
//
// # Error Handling
//
// Errors wrap sentinels that can be checked with errors.Is:
//
//	ErrWritePDF       - output directory missing or not writable
//	ErrBrowserConnect - failed to launch or connect to Chrome
//	ErrPageCreate     - failed to open a browser tab
//	ErrPageLoad       - page load timed out or failed
//	ErrPDFGeneration  - Chrome failed to print the page
//	ErrMissingOption  - NewConverter called without a required option
//
// Fetch and template errors are returned unchanged from the fetch and
// pipeline packages.
//
// # Browser
//
// Chrome is launched lazily on the first conversion and reused until Close.
// Set ROD_BROWSER_BIN to use an installed browser; rod downloads Chromium
// otherwise.
package notes2pdf
