package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every package plus wrapped
//   errors, including usage and fetch errors that also wrap os.ErrNotExist.
// - hintFor: we test that each error family gets its hint.
// These are acceptable gaps: hint wording is covered in internal/hints.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	notes2pdf "github.com/alnah/notes2pdf"
	"github.com/alnah/notes2pdf/internal/assets"
	"github.com/alnah/notes2pdf/internal/config"
	"github.com/alnah/notes2pdf/internal/fetch"
	"github.com/alnah/notes2pdf/internal/pipeline"
	"github.com/alnah/notes2pdf/internal/vcs"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", notes2pdf.ErrBrowserConnect, ExitBrowser},
		{"page create", notes2pdf.ErrPageCreate, ExitBrowser},
		{"page load", notes2pdf.ErrPageLoad, ExitBrowser},
		{"pdf generation", notes2pdf.ErrPDFGeneration, ExitBrowser},
		{"wrapped page load timeout", fmt.Errorf("%w: %w", notes2pdf.ErrPageLoad, context.DeadlineExceeded), ExitBrowser},

		// Usage/config/template errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"missing key", config.ErrMissingKey, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"template load", assets.ErrTemplateLoad, ExitUsage},
		{"template load wrapping not exist", fmt.Errorf("%w: %w", assets.ErrTemplateLoad, os.ErrNotExist), ExitUsage},
		{"template execute", pipeline.ErrTemplateExecute, ExitUsage},
		{"missing option", notes2pdf.ErrMissingOption, ExitUsage},
		{"unexpected args", ErrUnexpectedArgs, ExitUsage},

		// Remote and git errors (exit 1)
		{"fetch", fetch.ErrFetch, ExitGeneral},
		{"fetch wrapping not exist", fmt.Errorf("%w: %w", fetch.ErrFetch, os.ErrNotExist), ExitGeneral},
		{"version control", vcs.ErrVersionControl, ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"style not found", assets.ErrStyleNotFound, ExitIO},
		{"asset read", assets.ErrAssetRead, ExitIO},
		{"write pdf", notes2pdf.ErrWritePDF, ExitIO},
		{"wrapped write pdf", fmt.Errorf("converting: %w", notes2pdf.ErrWritePDF), ExitIO},

		// Unknown
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("Unix conventions broken: success=%d general=%d usage=%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d must be below 126", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Error hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string // substring, "" for no hint
	}{
		{"config not found", config.ErrConfigNotFound, "--config"},
		{"template", assets.ErrTemplateLoad, "jinja_template"},
		{"style", assets.ErrStyleNotFound, "css_file"},
		{"version control", fmt.Errorf("diff: %w", vcs.ErrVersionControl), "--all"},
		{"fetch", fetch.ErrFetch, "git_url"},
		{"write pdf", notes2pdf.ErrWritePDF, "output_dir"},
		{"page load", notes2pdf.ErrPageLoad, "--timeout"},
		{"unknown", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor(%v) = %q, want no hint", tt.err, got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor(%v) = %q, want it to contain %q", tt.err, got, tt.want)
			}
		})
	}
}
