package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricBuildDuration    = "itree.index.build.duration.seconds"
	metricIntervalsIndexed = "itree.index.intervals"
	metricIndexHeight      = "itree.index.height"
	metricQueryMatches     = "itree.query.matches"
	metricQueriesTruncated = "itree.query.truncated.total"

	attrSource = "source"
)

// matchBucketBoundaries spans single hits to the default result cap.
var matchBucketBoundaries = []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000, 5000, 10000}

// IndexMetrics records how the interval index was built and how queries against it behave.
type IndexMetrics struct {
	buildDuration    metric.Float64Histogram
	intervalsIndexed metric.Int64Gauge
	height           metric.Int64Gauge
	queryMatches     metric.Int64Histogram
	truncated        metric.Int64Counter
}

// NewIndexMetrics creates index instruments from the given meter.
func NewIndexMetrics(mt metric.Meter) (*IndexMetrics, error) {
	buildDuration, err := mt.Float64Histogram(metricBuildDuration,
		metric.WithDescription("Time spent building the interval tree"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBuildDuration, err)
	}

	intervals, err := mt.Int64Gauge(metricIntervalsIndexed,
		metric.WithDescription("Number of intervals held by the index"),
		metric.WithUnit("{interval}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricIntervalsIndexed, err)
	}

	height, err := mt.Int64Gauge(metricIndexHeight,
		metric.WithDescription("Height of the interval tree skeleton"),
		metric.WithUnit("{level}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricIndexHeight, err)
	}

	matches, err := mt.Int64Histogram(metricQueryMatches,
		metric.WithDescription("Intervals matched per query before truncation"),
		metric.WithUnit("{interval}"),
		metric.WithExplicitBucketBoundaries(matchBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricQueryMatches, err)
	}

	truncated, err := mt.Int64Counter(metricQueriesTruncated,
		metric.WithDescription("Queries whose results were cut at the result cap"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricQueriesTruncated, err)
	}

	return &IndexMetrics{
		buildDuration:    buildDuration,
		intervalsIndexed: intervals,
		height:           height,
		queryMatches:     matches,
		truncated:        truncated,
	}, nil
}

// RecordBuild records one completed tree build.
func (im *IndexMetrics) RecordBuild(ctx context.Context, intervals, height int, duration time.Duration) {
	im.buildDuration.Record(ctx, duration.Seconds())
	im.intervalsIndexed.Record(ctx, int64(intervals))
	im.height.Record(ctx, int64(height))
}

// RecordQuery records the match count of one query. Source names the surface
// that issued it (http, mcp, repl).
func (im *IndexMetrics) RecordQuery(ctx context.Context, source string, matches int, truncated bool) {
	attrs := metric.WithAttributes(attribute.String(attrSource, source))

	im.queryMatches.Record(ctx, int64(matches), attrs)

	if truncated {
		im.truncated.Add(ctx, 1, attrs)
	}
}
