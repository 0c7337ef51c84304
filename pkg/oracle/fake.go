package oracle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/locradar/pkg/identity"
)

// FakeRepo is the canned state of one repository.
type FakeRepo struct {
	// Files is what TrackedFiles returns, in order.
	Files []string
	// Blame holds line-porcelain text per path. A path without an entry has
	// no attributed lines.
	Blame map[string]string
}

// Fake is an in-memory Oracle for tests. Repositories are keyed by the
// cleaned root path. It records how often each root was listed.
type Fake struct {
	mu       sync.Mutex
	repos    map[string]FakeRepo
	listErrs map[string]error
	listed   map[string]int
}

// NewFake returns an empty fake.
func NewFake() *Fake {
	return &Fake{
		repos:    make(map[string]FakeRepo),
		listErrs: make(map[string]error),
		listed:   make(map[string]int),
	}
}

// AddRepo registers canned data for root.
func (f *Fake) AddRepo(root string, repo FakeRepo) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.repos[filepath.Clean(root)] = repo
}

// FailListing makes TrackedFiles for root return err.
func (f *Fake) FailListing(root string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listErrs[filepath.Clean(root)] = err
}

// ListCalls reports how many times TrackedFiles was called for root.
func (f *Fake) ListCalls(root string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.listed[filepath.Clean(root)]
}

// Listed returns every root TrackedFiles was called for.
func (f *Fake) Listed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.listed))
	for root := range f.listed {
		out = append(out, root)
	}

	return out
}

// TrackedFiles returns the canned file list. Unknown roots are reported as
// ErrBackendUnavailable, as git would fail to list them.
func (f *Fake) TrackedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	root := filepath.Clean(repoRoot)
	f.listed[root]++

	if err, ok := f.listErrs[root]; ok {
		return nil, err
	}

	repo, ok := f.repos[root]
	if !ok {
		return nil, fmt.Errorf("%w: no fake repository at %s", ErrBackendUnavailable, root)
	}

	return append([]string{}, repo.Files...), nil
}

// AttributedLines counts the canned porcelain text with CountPorcelainAuthors.
func (f *Fake) AttributedLines(
	ctx context.Context, repoRoot, relPath string, authors identity.AuthorSet,
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f.mu.Lock()
	text, ok := f.repos[filepath.Clean(repoRoot)].Blame[relPath]
	f.mu.Unlock()

	if !ok {
		return 0, nil
	}

	if !utf8.ValidString(text) {
		return 0, fmt.Errorf("%w: %s", ErrAttributionUnreadable, relPath)
	}

	return CountPorcelainAuthors(text, authors), nil
}

// Lines repeats author n times, one entry per blamed line.
func Lines(author string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = author
	}

	return out
}

// Porcelain renders `git blame --line-porcelain` text with one record per
// element of lineAuthors.
func Porcelain(lineAuthors ...string) string {
	var sb strings.Builder

	for i, author := range lineAuthors {
		fmt.Fprintf(&sb, "%040x %d %d 1\n", i+1, i+1, i+1)
		fmt.Fprintf(&sb, "author %s\n", author)
		fmt.Fprintf(&sb, "author-mail <%s@example.com>\n", author)
		sb.WriteString("author-time 1700000000\nauthor-tz +0000\n")
		fmt.Fprintf(&sb, "committer %s\n", author)
		fmt.Fprintf(&sb, "committer-mail <%s@example.com>\n", author)
		sb.WriteString("committer-time 1700000000\ncommitter-tz +0000\n")
		sb.WriteString("summary initial import\nfilename file\n")
		fmt.Fprintf(&sb, "\tline %d\n", i+1)
	}

	return sb.String()
}
