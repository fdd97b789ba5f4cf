package main

import (
	"context"
	"errors"
	"os"

	notes2pdf "github.com/alnah/notes2pdf"
	"github.com/alnah/notes2pdf/internal/assets"
	"github.com/alnah/notes2pdf/internal/config"
	"github.com/alnah/notes2pdf/internal/fetch"
	"github.com/alnah/notes2pdf/internal/hints"
	"github.com/alnah/notes2pdf/internal/pipeline"
	"github.com/alnah/notes2pdf/internal/vcs"
)

// Exit codes for notes2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every selected note converted
	ExitGeneral = 1 // Fetch, git or unexpected error
	ExitUsage   = 2 // Invalid flags, config or template
	ExitIO      = 3 // File not found, permission denied, PDF not written
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Usage and fetch errors are checked before I/O ones since they may wrap
// os.ErrNotExist.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, notes2pdf.ErrBrowserConnect) ||
		errors.Is(err, notes2pdf.ErrPageCreate) ||
		errors.Is(err, notes2pdf.ErrPageLoad) ||
		errors.Is(err, notes2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/template errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrMissingKey) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assets.ErrTemplateLoad) ||
		errors.Is(err, pipeline.ErrTemplateExecute) ||
		errors.Is(err, notes2pdf.ErrMissingOption) ||
		errors.Is(err, ErrUnexpectedArgs) {
		return ExitUsage
	}

	// Remote and git errors (exit 1)
	if errors.Is(err, fetch.ErrFetch) ||
		errors.Is(err, vcs.ErrVersionControl) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitGeneral
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, notes2pdf.ErrWritePDF) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns actionable hints for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, notes2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, notes2pdf.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(defaultConfigName))
	case errors.Is(err, assets.ErrTemplateLoad):
		return hints.ForTemplate()
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound()
	case errors.Is(err, vcs.ErrVersionControl):
		return hints.ForVersionControl()
	case errors.Is(err, fetch.ErrFetch):
		return hints.ForFetch()
	case errors.Is(err, notes2pdf.ErrWritePDF):
		return hints.ForOutputDirectory()
	}
	return ""
}
