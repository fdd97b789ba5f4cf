// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/notes2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for slow hosts or large notes, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the first user config location among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/config.ini"

	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == "notes2pdf" {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("output_dir is relative to notes_dir and must already exist")
}

// ForStyleNotFound returns hints for stylesheet not found errors.
func ForStyleNotFound() string {
	return format("a relative css_file is looked up next to the executable, then next to the config file")
}

// ForTemplate returns hints for template load errors.
func ForTemplate() string {
	return format("check jinja_env (template directory) and jinja_template (file name)")
}

// ForVersionControl returns hints for git errors during incremental selection.
func ForVersionControl() string {
	return formatHints([]string{
		"notes_dir must be inside a git repository with output_dir committed",
		"use --all to convert every note",
	})
}

// ForFetch returns hints for remote fetch errors.
func ForFetch() string {
	return format("check git_url ends with \"/\" and the note is pushed")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
