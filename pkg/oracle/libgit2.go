package oracle

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sumatoshi-tech/locradar/pkg/gitlib"
	"github.com/Sumatoshi-tech/locradar/pkg/identity"
)

// LibGit2 answers in-process through libgit2. Blame is computed against HEAD,
// so uncommitted edits are not attributed. Opened repositories are cached
// until Close; calls are serialized because libgit2 handles are not shared
// across goroutines here.
type LibGit2 struct {
	mu    sync.Mutex
	repos map[string]*gitlib.Repository
}

// NewLibGit2 returns an empty libgit2 oracle.
func NewLibGit2() *LibGit2 {
	return &LibGit2{repos: make(map[string]*gitlib.Repository)}
}

func (o *LibGit2) open(repoRoot string) (*gitlib.Repository, error) {
	if repo, ok := o.repos[repoRoot]; ok {
		return repo, nil
	}

	repo, err := gitlib.OpenRepository(repoRoot)
	if err != nil {
		return nil, err
	}

	o.repos[repoRoot] = repo

	return repo, nil
}

// TrackedFiles lists the index of the repository at repoRoot. A repository
// libgit2 cannot open, such as a broken or bare `.git`, lists nothing, the
// same as a failing `git ls-files` does for the Exec backend.
func (o *LibGit2) TrackedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	repo, err := o.open(repoRoot)
	if err != nil {
		return []string{}, nil
	}

	paths, err := repo.TrackedPaths()
	if err != nil {
		return []string{}, nil
	}

	return paths, nil
}

// AttributedLines sums the blame hunks of relPath authored by authors.
func (o *LibGit2) AttributedLines(
	ctx context.Context, repoRoot, relPath string, authors identity.AuthorSet,
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	repo, err := o.open(repoRoot)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrAttributionUnreadable, relPath, err)
	}

	hunks, err := repo.Blame(relPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAttributionUnreadable, err)
	}

	byAuthor := gitlib.LinesByAuthor(hunks)
	count := 0

	for _, name := range authors.Names() {
		count += byAuthor[name]
	}

	return count, nil
}

// Close frees every cached repository.
func (o *LibGit2) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for root, repo := range o.repos {
		repo.Free()
		delete(o.repos, root)
	}

	return nil
}
