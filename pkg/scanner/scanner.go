// Package scanner attributes the tracked lines of one repository to the
// programming languages they are written in.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/src-d/enry/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/locradar/internal/observability"
	"github.com/Sumatoshi-tech/locradar/pkg/identity"
	"github.com/Sumatoshi-tech/locradar/pkg/langcatalog"
	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
	"github.com/Sumatoshi-tech/locradar/pkg/oracle"
)

// ErrUnreadableEntry is returned for a path whose name is not valid UTF-8.
var ErrUnreadableEntry = errors.New("unreadable entry name")

const tracerName = "locradar"

// Scanner counts attributed lines per programming language in one repository.
type Scanner struct {
	Oracle  oracle.Oracle
	Catalog *langcatalog.Catalog

	// Logger receives per-file diagnostics. Nil discards them.
	Logger *slog.Logger

	// Tracer creates one span per repository.
	// When nil, falls back to otel.Tracer("locradar").
	Tracer trace.Tracer

	// Metrics is optional.
	Metrics *observability.ScanMetrics

	// Workers bounds concurrent attribution calls. Zero means one per CPU,
	// one means strictly sequential.
	Workers int

	// SkipVendored drops paths enry recognises as vendored or generated
	// third-party code.
	SkipVendored bool
}

// New returns a Scanner with default settings.
func New(o oracle.Oracle, catalog *langcatalog.Catalog) *Scanner {
	return &Scanner{Oracle: o, Catalog: catalog}
}

func (s *Scanner) tracer() trace.Tracer {
	if s.Tracer != nil {
		return s.Tracer
	}

	return otel.Tracer(tracerName)
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}

	return observability.Discard()
}

func (s *Scanner) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}

	return runtime.NumCPU()
}

type candidate struct {
	path     string
	language string
}

// Scan lists the tracked files of repoRoot and adds, per programming
// language, the lines whose author is in authors. Languages with no
// attributed lines are absent. A repository without tracked files yields an
// empty, non-nil result.
//
// Listing failures abort the repository. A file whose provenance cannot be
// read counts as zero.
func (s *Scanner) Scan(ctx context.Context, repoRoot string, authors identity.AuthorSet) (linecount.Counts, error) {
	ctx, span := s.tracer().Start(ctx, "locradar.scan.repository",
		trace.WithAttributes(attribute.String("repository.path", repoRoot)))
	defer span.End()

	start := time.Now()

	files, err := s.Oracle.TrackedFiles(ctx, repoRoot)
	if err != nil {
		err = fmt.Errorf("list tracked files in %s: %w", repoRoot, err)
		observability.RecordSpanError(span, err)

		return nil, err
	}

	stats := observability.RepositoryStats{}

	candidates, skipped, err := s.classify(files)
	if err != nil {
		err = fmt.Errorf("scan %s: %w", repoRoot, err)
		observability.RecordSpanError(span, err)

		return nil, err
	}

	stats.Skipped = skipped

	counts, err := s.attribute(ctx, repoRoot, candidates, authors, &stats)
	if err != nil {
		err = fmt.Errorf("scan %s: %w", repoRoot, err)
		observability.RecordSpanError(span, err)

		return nil, err
	}

	stats.Lines = counts.Total()
	stats.Duration = time.Since(start)
	s.Metrics.RecordRepository(ctx, stats)

	span.SetAttributes(
		attribute.Int("repository.files", len(files)),
		attribute.Int("repository.lines", stats.Lines),
		attribute.Int("repository.languages", len(counts)),
	)

	s.logger().DebugContext(ctx, "repository scanned",
		"path", repoRoot,
		"files", len(files),
		"counted", stats.Counted,
		"unreadable", stats.Unreadable,
		"lines", stats.Lines,
		"duration", stats.Duration,
	)

	return counts, nil
}

// classify keeps the files whose extension maps to a programming language.
// It returns how many files were dropped.
func (s *Scanner) classify(files []string) ([]candidate, int, error) {
	out := make([]candidate, 0, len(files))
	skipped := 0

	for _, file := range files {
		ext, ok := langcatalog.ExtensionOf(file)
		if !ok {
			skipped++

			continue
		}

		if !utf8.ValidString(ext) {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnreadableEntry, file)
		}

		entry, ok := s.Catalog.Classify(ext)
		if !ok || !entry.IsProgramming() {
			skipped++

			continue
		}

		if s.SkipVendored && enry.IsVendor(file) {
			skipped++

			continue
		}

		out = append(out, candidate{path: file, language: entry.Name})
	}

	return out, skipped, nil
}

func (s *Scanner) attribute(
	ctx context.Context,
	repoRoot string,
	candidates []candidate,
	authors identity.AuthorSet,
	stats *observability.RepositoryStats,
) (linecount.Counts, error) {
	var mu sync.Mutex

	counts := linecount.New()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())

	for _, c := range candidates {
		g.Go(func() error {
			n, err := s.Oracle.AttributedLines(gctx, repoRoot, c.path, authors)

			switch {
			case errors.Is(err, oracle.ErrAttributionUnreadable):
				s.logger().DebugContext(gctx, "attribution unreadable, counting zero",
					"repository", repoRoot, "file", c.path, "error", err)

				mu.Lock()
				stats.Unreadable++
				mu.Unlock()

				return nil
			case err != nil:
				return fmt.Errorf("attribute %s: %w", c.path, err)
			}

			mu.Lock()
			defer mu.Unlock()

			if n > 0 {
				counts.Add(c.language, n)
				stats.Counted++
			} else {
				stats.Skipped++
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return counts, nil
}
