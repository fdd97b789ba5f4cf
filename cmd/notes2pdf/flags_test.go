package main

// Notes:
// - parseFlags: we test defaults, long and short forms, help, unknown flags
//   and positional arguments.
// - wantsVerbose: we test the pre-parse scan used for GOMAXPROCS logging.
// These are acceptable gaps: usage text content is not asserted line by line.

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want runFlags
	}{
		{
			name: "defaults",
			args: nil,
			want: runFlags{config: "config.ini"},
		},
		{
			name: "long forms",
			args: []string{"--all", "--config", "notes.yaml", "--timeout", "1m", "--verbose"},
			want: runFlags{all: true, config: "notes.yaml", timeout: "1m", verbose: true},
		},
		{
			name: "short forms",
			args: []string{"-c", "work.ini", "-t", "45s", "-q"},
			want: runFlags{config: "work.ini", timeout: "45s", quiet: true},
		},
		{
			name: "quiet wins over verbose",
			args: []string{"-q", "-v"},
			want: runFlags{config: "config.ini", quiet: true},
		},
		{
			name: "version",
			args: []string{"--version"},
			want: runFlags{config: "config.ini", version: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags(%v) unexpected error: %v", tt.args, err)
			}
			if *got != tt.want {
				t.Errorf("parseFlags(%v) = %+v, want %+v", tt.args, *got, tt.want)
			}
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		_, err := parseFlags([]string{"--help"})
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()
		_, err := parseFlags([]string{"--output", "x"})
		if err == nil {
			t.Fatal("expected error for unknown flag")
		}
		if !strings.Contains(err.Error(), "output") {
			t.Errorf("error %q should name the flag", err)
		}
	})

	t.Run("positional arguments", func(t *testing.T) {
		t.Parallel()
		_, err := parseFlags([]string{"--all", "notes/intro.md"})
		if !errors.Is(err, ErrUnexpectedArgs) {
			t.Fatalf("error = %v, want ErrUnexpectedArgs", err)
		}
		if !strings.Contains(err.Error(), "notes/intro.md") {
			t.Errorf("error %q should list the arguments", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWantsVerbose - Pre-parse verbose detection
// ---------------------------------------------------------------------------

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--all"}, false},
		{[]string{"-v"}, true},
		{[]string{"--all", "--verbose"}, true},
		{[]string{"--", "-v"}, false},
	}

	for _, tt := range tests {
		if got := wantsVerbose(tt.args); got != tt.want {
			t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintUsage - Usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, want := range []string{"Usage: notes2pdf", "--all", "--config", "--timeout", "Exit codes"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage should contain %q", want)
		}
	}
}
