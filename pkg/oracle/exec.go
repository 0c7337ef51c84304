package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/locradar/pkg/identity"
)

const defaultGitBinary = "git"

// Runner executes git with args inside dir and returns its standard output.
// An error with an ExitCode method (such as *exec.ExitError) means git ran
// and failed; any other error means it could not be started.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Exec drives the git command line. Each call is one blocking subprocess.
type Exec struct {
	gitBinary string
	run       Runner
}

// ExecOption configures an Exec oracle.
type ExecOption func(*Exec)

// WithGitBinary sets the git executable. Empty keeps the default.
func WithGitBinary(bin string) ExecOption {
	return func(e *Exec) {
		if bin != "" {
			e.gitBinary = bin
		}
	}
}

// WithRunner replaces process spawning, for tests.
func WithRunner(r Runner) ExecOption {
	return func(e *Exec) {
		if r != nil {
			e.run = r
		}
	}
}

// NewExec returns an oracle backed by the git CLI.
func NewExec(opts ...ExecOption) *Exec {
	e := &Exec{gitBinary: defaultGitBinary}
	e.run = e.spawn

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// spawn runs git without a shell; -C scopes it to the repository on every platform.
func (e *Exec) spawn(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.gitBinary, append([]string{"-C", dir}, args...)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if isExitError(err) && stderr.Len() > 0 {
			return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}

		return out, err
	}

	return out, nil
}

// TrackedFiles runs `git ls-files -z`. A failing git (for example a broken
// repository) yields whatever it printed, usually nothing; only a git that
// cannot be started or prints undecodable paths is ErrBackendUnavailable.
func (e *Exec) TrackedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	out, err := e.run(ctx, repoRoot, "ls-files", "-z")
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if err != nil && !isExitError(err) {
		return nil, fmt.Errorf("%w: git ls-files in %s: %w", ErrBackendUnavailable, repoRoot, err)
	}

	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%w: git ls-files in %s: output is not valid UTF-8", ErrBackendUnavailable, repoRoot)
	}

	return SplitLsFiles(string(out)), nil
}

// AttributedLines runs `git blame --line-porcelain` for one file.
func (e *Exec) AttributedLines(
	ctx context.Context, repoRoot, relPath string, authors identity.AuthorSet,
) (int, error) {
	out, err := e.run(ctx, repoRoot, "blame", "--line-porcelain", "--", relPath)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}

	if err != nil {
		if isExitError(err) {
			return 0, fmt.Errorf("%w: %s: %w", ErrAttributionUnreadable, relPath, err)
		}

		return 0, fmt.Errorf("%w: git blame in %s: %w", ErrBackendUnavailable, repoRoot, err)
	}

	if !utf8.Valid(out) {
		return 0, fmt.Errorf("%w: %s: blame output is not valid UTF-8", ErrAttributionUnreadable, relPath)
	}

	return CountPorcelainAuthors(string(out), authors), nil
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

func isExitError(err error) bool {
	var ec exitCoder

	return errors.As(err, &ec)
}
