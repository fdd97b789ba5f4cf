package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrUnexpectedArgs indicates positional arguments were given.
var ErrUnexpectedArgs = errors.New("unexpected arguments")

// defaultConfigName is looked up when --config is not given.
const defaultConfigName = "config.ini"

// runFlags holds every command-line flag.
type runFlags struct {
	all     bool
	config  string
	timeout string
	quiet   bool
	verbose bool
	version bool
}

// parseFlags parses args (without the program name).
// Returns flag.ErrHelp when -h or --help is given.
func parseFlags(args []string) (*runFlags, error) {
	fs := flag.NewFlagSet("notes2pdf", flag.ContinueOnError)
	f := &runFlags{}

	fs.BoolVar(&f.all, "all", false, "convert every note instead of those changed since the last PDF commit")
	fs.StringVarP(&f.config, "config", "c", defaultConfigName, "config file name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "fetch and page load timeout (e.g., 30s, 2m)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.version, "version", false, "show version and exit")

	// Errors and usage are reported by run.
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(fs.Args(), " "))
	}
	if f.quiet && f.verbose {
		f.verbose = false
	}

	return f, nil
}

// wantsVerbose reports whether args hold a standalone -v or --verbose.
// Used before full parsing, so malformed args are ignored.
func wantsVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--verbose" || arg == "-v" {
			return true
		}
	}
	return false
}

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: notes2pdf [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown notes to PDF. By default only notes changed since the")
	fmt.Fprintln(w, "output directory was last committed are converted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --all                 Convert every note")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default \"config.ini\")")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Fetch and page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version and exit")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config ([defaults] section of an INI file, or camelCase keys in YAML):")
	fmt.Fprintln(w, "  notes_dir, output_dir, git_url, jinja_env, jinja_template, css_file,")
	fmt.Fprintln(w, "  landscape_style, landscape_files, exclude, timeout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general, 2 usage or config, 3 I/O, 4 browser")
}
