package main

import (
	"context"
	"io"
	"os"
	"time"

	notes2pdf "github.com/alnah/notes2pdf"
	"github.com/alnah/notes2pdf/internal/fetch"
	"github.com/alnah/notes2pdf/internal/notes"
	"github.com/alnah/notes2pdf/internal/vcs"
)

// noteConverter turns one selected note into a PDF.
// Implemented by *notes2pdf.Converter.
type noteConverter interface {
	ConvertNote(ctx context.Context, note notes.Note) (*notes2pdf.Result, error)
	Close() error
}

// Compile-time interface implementation checks.
var (
	_ noteConverter      = (*notes2pdf.Converter)(nil)
	_ notes.ChangeSource = (*vcs.Git)(nil)
)

// converterSetup is everything a run hands to the converter.
type converterSetup struct {
	OutputDir      string
	Timeout        time.Duration
	Stylesheet     string
	LandscapeStyle string
	LandscapeFiles []string
	Fetcher        fetch.Fetcher
	Renderer       notes2pdf.PageRenderer
}

// options translates the setup into converter options.
func (s converterSetup) options() []notes2pdf.Option {
	return []notes2pdf.Option{
		notes2pdf.WithOutputDir(s.OutputDir),
		notes2pdf.WithTimeout(s.Timeout),
		notes2pdf.WithStylesheet(s.Stylesheet),
		notes2pdf.WithLandscape(s.LandscapeStyle, s.LandscapeFiles...),
		notes2pdf.WithFetcher(s.Fetcher),
		notes2pdf.WithPageRenderer(s.Renderer),
	}
}

// Environment holds injectable dependencies for testability.
// Includes I/O, time, version control and PDF conversion.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Changes      func(notesDir string) notes.ChangeSource
	NewConverter func(setup converterSetup) (noteConverter, error)
}

// DefaultEnv returns the production environment: git in the notes
// directory and headless Chrome for printing.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Changes:      gitChanges,
		NewConverter: newConverter,
	}
}

func gitChanges(notesDir string) notes.ChangeSource {
	return vcs.NewGit(notesDir)
}

func newConverter(setup converterSetup) (noteConverter, error) {
	conv, err := notes2pdf.NewConverter(setup.options()...)
	if err != nil {
		return nil, err
	}
	return conv, nil
}
