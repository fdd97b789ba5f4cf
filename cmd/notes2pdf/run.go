package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/notes2pdf/internal/assets"
	"github.com/alnah/notes2pdf/internal/config"
	"github.com/alnah/notes2pdf/internal/fetch"
	"github.com/alnah/notes2pdf/internal/notes"
	"github.com/alnah/notes2pdf/internal/pipeline"
	"github.com/alnah/notes2pdf/internal/vcs"
)

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "notes2pdf %s\n", Version)
		return ExitSuccess
	}

	if err := runConvert(ctx, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert loads the config and assets, selects the notes and converts
// them one by one. The first failure aborts the run.
func runConvert(ctx context.Context, flags *runFlags, env *Environment) error {
	cfg, err := config.LoadConfig(flags.config)
	if err != nil {
		return err
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	tmpl, err := assets.LoadTemplate(cfg.TemplateDir, cfg.Template)
	if err != nil {
		return err
	}
	css, err := assets.LoadStyle(cfg.CSSFile)
	if err != nil {
		return err
	}

	selected, err := notes.Select(ctx, notes.SelectOptions{
		Root:      cfg.NotesDir,
		All:       flags.all,
		Exclude:   cfg.Exclude,
		Changes:   env.Changes(cfg.NotesDir),
		OutputDir: cfg.OutputDir,
		Against:   vcs.PreviousHead,
	})
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		if !flags.quiet {
			fmt.Fprintln(env.Stdout, "No notes to convert")
		}
		return nil
	}

	conv, err := env.NewConverter(converterSetup{
		OutputDir:      cfg.OutputDir,
		Timeout:        timeout,
		Stylesheet:     css,
		LandscapeStyle: cfg.LandscapeStyle,
		LandscapeFiles: cfg.LandscapeFiles,
		Fetcher:        newFetcher(cfg, timeout),
		Renderer:       pipeline.NewPageRenderer(tmpl),
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil && flags.verbose {
			fmt.Fprintf(env.Stderr, "warning: closing browser: %v\n", cerr)
		}
	}()

	return convertAll(ctx, conv, selected, flags, env)
}

// newFetcher returns the remote fetcher, or the local Markdown renderer
// when no git_url is configured.
func newFetcher(cfg *config.Config, timeout time.Duration) fetch.Fetcher {
	if cfg.GitURL == "" {
		return fetch.NewLocalRenderer(cfg.NotesDir)
	}
	return fetch.NewHTTPFetcher(cfg.GitURL, timeout)
}

// convertAll converts selected in order and reports each written PDF.
func convertAll(ctx context.Context, conv noteConverter, selected []notes.Note, flags *runFlags, env *Environment) error {
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d note(s)\n", len(selected))
	}

	for _, note := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := env.Now()
		res, err := conv.ConvertNote(ctx, note)
		if err != nil {
			return err
		}

		switch {
		case flags.quiet:
		case flags.verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", note.Path, res.OutputPath, env.Now().Sub(start).Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", res.OutputPath)
		}
		if !res.Found && !flags.quiet {
			fmt.Fprintf(env.Stderr, "warning: %s: no rendered article found\n", note.Path)
		}
	}

	if !flags.quiet && len(selected) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d converted\n", len(selected))
	}
	return nil
}
