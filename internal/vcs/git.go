// Package vcs runs the read-only git queries used by incremental selection.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrVersionControl indicates a git query failed or returned nothing usable.
var ErrVersionControl = errors.New("version control query failed")

// PreviousHead is the revision incremental selection diffs against.
const PreviousHead = "HEAD~"

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed git subcommands
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Git queries a local repository clone.
type Git struct {
	Runner CommandRunner
	Dir    string // working directory for every command
}

// NewGit creates a Git client for the repository containing dir.
func NewGit(dir string) *Git {
	return &Git{Runner: &ExecRunner{}, Dir: dir}
}

// LastCommit returns the hash of the most recent commit touching path.
func (g *Git) LastCommit(ctx context.Context, path string) (string, error) {
	out, err := g.run(ctx, "log", "-n", "1", "--pretty=format:%H", "--", path)
	if err != nil {
		return "", err
	}
	hash := strings.TrimSpace(out)
	if hash == "" {
		return "", fmt.Errorf("%w: no commit touches %s", ErrVersionControl, path)
	}
	return hash, nil
}

// ChangedFiles lists the files that differ between two revisions, relative
// to Dir, in the order git reports them. Names are read NUL-terminated so
// git never quotes or escapes them.
func (g *Git) ChangedFiles(ctx context.Context, from, to string) ([]string, error) {
	out, err := g.run(ctx, "diff", "--name-only", "-z", "--relative", from, to)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, name := range strings.Split(out, "\x00") {
		if name != "" {
			files = append(files, name)
		}
	}
	return files, nil
}

// run executes git with args and wraps any failure in ErrVersionControl.
func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := g.Runner.Run(ctx, g.Dir, "git", args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: git %s: %s", ErrVersionControl, args[0], msg)
	}
	return stdout, nil
}
