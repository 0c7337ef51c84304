// Package gitlib is a thin wrapper over libgit2 exposing the two repository
// queries line attribution needs: the tracked paths and per-line blame.
package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrNotWorkingTree is returned for bare repositories, which have no checkout to attribute.
var ErrNotWorkingTree = errors.New("repository has no working tree")

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
}

// OpenRepository opens a git repository at the given path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	if repo.IsBare() {
		repo.Free()

		return nil, fmt.Errorf("%w: %s", ErrNotWorkingTree, path)
	}

	return &Repository{repo: repo}, nil
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// TrackedPaths returns the slash-separated paths recorded in the index, in
// index order. This is the set `git ls-files` prints.
func (r *Repository) TrackedPaths() ([]string, error) {
	index, err := r.repo.Index()
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer index.Free()

	count := index.EntryCount()
	paths := make([]string, 0, count)

	for i := range count {
		entry, entryErr := index.EntryByIndex(i)
		if entryErr != nil {
			return nil, fmt.Errorf("index entry %d: %w", i, entryErr)
		}

		// Conflicted paths appear once per stage.
		if len(paths) > 0 && paths[len(paths)-1] == entry.Path {
			continue
		}

		paths = append(paths, entry.Path)
	}

	return paths, nil
}

