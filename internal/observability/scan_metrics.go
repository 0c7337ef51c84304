package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRepositoriesTotal = "locradar.scan.repositories"
	metricFilesTotal        = "locradar.scan.files"
	metricLinesTotal        = "locradar.scan.attributed_lines"
	metricRepoDuration      = "locradar.scan.repository.duration"

	attrOutcome = "outcome"

	// Outcomes of a single file's attribution.
	outcomeCounted    = "counted"
	outcomeSkipped    = "skipped"
	outcomeUnreadable = "unreadable"
)

// durationBucketBoundaries covers a tiny repository through a monorepo blame.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// ScanMetrics holds OTel instruments for repository scans.
type ScanMetrics struct {
	repositories metric.Int64Counter
	files        metric.Int64Counter
	lines        metric.Int64Counter
	duration     metric.Float64Histogram
}

// RepositoryStats summarizes one repository scan.
type RepositoryStats struct {
	// Counted files contributed lines to a programming language.
	Counted int
	// Skipped files were unclassified, non-programming, vendored or had no
	// attributed lines.
	Skipped int
	// Unreadable files had provenance that could not be decoded.
	Unreadable int
	// Lines is the number of attributed programming lines.
	Lines    int
	Duration time.Duration
}

// NewScanMetrics creates scan instruments from the given meter.
func NewScanMetrics(mt metric.Meter) (*ScanMetrics, error) {
	repos, err := mt.Int64Counter(metricRepositoriesTotal,
		metric.WithDescription("Repositories scanned"),
		metric.WithUnit("{repository}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRepositoriesTotal, err)
	}

	files, err := mt.Int64Counter(metricFilesTotal,
		metric.WithDescription("Tracked files examined, by outcome"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesTotal, err)
	}

	lines, err := mt.Int64Counter(metricLinesTotal,
		metric.WithDescription("Lines attributed to the requested authors in programming languages"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricLinesTotal, err)
	}

	dur, err := mt.Float64Histogram(metricRepoDuration,
		metric.WithDescription("Per-repository scan duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRepoDuration, err)
	}

	return &ScanMetrics{repositories: repos, files: files, lines: lines, duration: dur}, nil
}

// RecordRepository records one finished repository scan.
// Safe to call on a nil receiver (no-op).
func (sm *ScanMetrics) RecordRepository(ctx context.Context, stats RepositoryStats) {
	if sm == nil {
		return
	}

	sm.repositories.Add(ctx, 1)
	sm.files.Add(ctx, int64(stats.Counted), metric.WithAttributes(attribute.String(attrOutcome, outcomeCounted)))
	sm.files.Add(ctx, int64(stats.Skipped), metric.WithAttributes(attribute.String(attrOutcome, outcomeSkipped)))
	sm.files.Add(ctx, int64(stats.Unreadable), metric.WithAttributes(attribute.String(attrOutcome, outcomeUnreadable)))
	sm.lines.Add(ctx, int64(stats.Lines))
	sm.duration.Record(ctx, stats.Duration.Seconds())
}
