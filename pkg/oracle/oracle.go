// Package oracle answers the two questions line attribution asks a version
// control backend: which files does a repository track, and how many lines of
// a file were last written by a given set of authors.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/locradar/pkg/identity"
)

// Backend names accepted by New.
const (
	BackendExec    = "exec"
	BackendLibGit2 = "libgit2"
)

// Sentinel errors.
var (
	// ErrBackendUnavailable means the backend could not be invoked or its file
	// listing could not be decoded. It aborts the scan of the repository.
	ErrBackendUnavailable = errors.New("version control backend unavailable")

	// ErrAttributionUnreadable means one file's provenance could not be read or
	// decoded. Callers count the file as zero lines and move on.
	ErrAttributionUnreadable = errors.New("file attribution unreadable")

	// ErrUnknownBackend is returned by New for an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown backend")
)

// Oracle is the boundary to the version control system.
// Implementations must be safe for concurrent use.
type Oracle interface {
	// TrackedFiles returns slash-separated paths relative to repoRoot.
	TrackedFiles(ctx context.Context, repoRoot string) ([]string, error)

	// AttributedLines counts the current lines of relPath whose blamed author
	// is one of authors.
	AttributedLines(ctx context.Context, repoRoot, relPath string, authors identity.AuthorSet) (int, error)
}

// Closer is implemented by oracles holding resources across calls.
type Closer interface {
	Close() error
}

// New returns the oracle for a backend name. gitBinary only applies to the
// exec backend; empty means "git" from PATH.
func New(backend, gitBinary string) (Oracle, error) {
	switch backend {
	case "", BackendExec:
		return NewExec(WithGitBinary(gitBinary)), nil
	case BackendLibGit2:
		return NewLibGit2(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
