// Package walker finds git repositories below a directory and folds their
// per-language line counts into one aggregate.
package walker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/locradar/internal/observability"
	"github.com/Sumatoshi-tech/locradar/pkg/identity"
	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
	"github.com/Sumatoshi-tech/locradar/pkg/scanner"
)

// NoDepthLimit disables depth pruning.
const NoDepthLimit = -1

// metadataDir marks its parent as a repository root. It is never descended into.
const metadataDir = ".git"

// Sentinel errors.
var (
	ErrNotADirectory = errors.New("not a directory")

	// ErrUnreadableEntry is returned for a directory whose name is not valid UTF-8.
	ErrUnreadableEntry = scanner.ErrUnreadableEntry
)

// RepositoryScanner scans one repository root.
type RepositoryScanner interface {
	Scan(ctx context.Context, repoRoot string, authors identity.AuthorSet) (linecount.Counts, error)
}

// Walker walks a directory tree depth-first and scans every repository it finds.
type Walker struct {
	Scanner RepositoryScanner

	// MaxDepth is the deepest directory level visited; the root is level 0.
	// NoDepthLimit (or any negative value) visits everything.
	MaxDepth int

	// Logger is optional.
	Logger *slog.Logger
}

// New returns a Walker without a depth limit.
func New(s RepositoryScanner) *Walker {
	return &Walker{Scanner: s, MaxDepth: NoDepthLimit}
}

type frame struct {
	dir   string
	depth int
}

func (w *Walker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}

	return observability.Discard()
}

func (w *Walker) pruned(depth int) bool {
	return w.MaxDepth >= 0 && depth > w.MaxDepth
}

// Walk returns the merged counts of every repository at or below root.
// It returns nil when no repository contributed. The first error from a
// directory listing or a repository scan aborts the walk.
func (w *Walker) Walk(ctx context.Context, root string, authors identity.AuthorSet) (linecount.Counts, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w: %w", root, ErrNotADirectory, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("walk %s: %w", root, ErrNotADirectory)
	}

	var total linecount.Counts

	stack := []frame{{dir: filepath.Clean(root), depth: 0}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if w.pruned(cur.depth) {
			w.logger().DebugContext(ctx, "depth limit reached", "dir", cur.dir, "depth", cur.depth)

			continue
		}

		children, isRepo, err := w.list(cur.dir)
		if err != nil {
			return nil, err
		}

		if isRepo {
			counts, err := w.Scanner.Scan(ctx, cur.dir, authors)
			if err != nil {
				return nil, err
			}

			w.logger().InfoContext(ctx, "repository scanned",
				"path", cur.dir, "languages", len(counts), "lines", counts.Total())

			total = linecount.Merge(total, counts)
		}

		// Reverse order so children pop in directory order.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{dir: children[i], depth: cur.depth + 1})
		}
	}

	return total, nil
}

// list returns the child directories of dir, excluding the metadata
// directory, and whether dir is a repository root. Files and symlinks are
// ignored.
func (w *Walker) list(dir string) ([]string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var (
		children []string
		isRepo   bool
	)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !utf8.ValidString(name) {
			return nil, false, fmt.Errorf("%w: %q in %s", ErrUnreadableEntry, name, dir)
		}

		if name == metadataDir {
			isRepo = true

			continue
		}

		children = append(children, filepath.Join(dir, name))
	}

	return children, isRepo, nil
}
