package notes2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrWritePDF       = errors.New("failed to write PDF")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrMissingOption  = errors.New("missing converter option")
)
