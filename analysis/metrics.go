package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the analysis pipeline.
type Metrics struct {
	Registry              *prometheus.Registry
	RowsLoadedTotal       prometheus.Counter
	RowsCleanedTotal      prometheus.Counter
	ParseSkipsTotal       *prometheus.CounterVec
	ParseCacheHitsTotal   prometheus.Counter
	ArtifactsWrittenTotal *prometheus.CounterVec
	StageDuration         *prometheus.HistogramVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	rowsLoaded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "netflix_rows_loaded_total",
			Help: "Total rows read from the input dataset.",
		},
	)
	rowsCleaned := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "netflix_rows_cleaned_total",
			Help: "Total rows with a parseable duration value.",
		},
	)
	parseSkips := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netflix_parse_skips_total",
			Help: "Rows excluded from aggregation, by skip reason.",
		},
		[]string{"reason"},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "netflix_parse_cache_hits_total",
			Help: "Duration strings answered from the parse cache.",
		},
	)
	artifacts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netflix_artifacts_written_total",
			Help: "Output files written, by artifact kind.",
		},
		[]string{"kind"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netflix_stage_duration_seconds",
			Help:    "Wall time spent in each pipeline stage.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	registry.MustRegister(rowsLoaded, rowsCleaned, parseSkips, cacheHits, artifacts, stageDuration)

	return &Metrics{
		Registry:              registry,
		RowsLoadedTotal:       rowsLoaded,
		RowsCleanedTotal:      rowsCleaned,
		ParseSkipsTotal:       parseSkips,
		ParseCacheHitsTotal:   cacheHits,
		ArtifactsWrittenTotal: artifacts,
		StageDuration:         stageDuration,
	}
}

// AddRowsLoaded records rows read from the input.
func (m *Metrics) AddRowsLoaded(n int) {
	if m == nil {
		return
	}
	m.RowsLoadedTotal.Add(float64(n))
}

// AddRowsCleaned records rows kept in the cleaned table.
func (m *Metrics) AddRowsCleaned(n int) {
	if m == nil {
		return
	}
	m.RowsCleanedTotal.Add(float64(n))
}

// IncParseSkip increments the skip counter for a reason label.
func (m *Metrics) IncParseSkip(reason string) {
	if m == nil {
		return
	}
	m.ParseSkipsTotal.WithLabelValues(reason).Inc()
}

// IncCacheHit increments the parse cache hit counter.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.ParseCacheHitsTotal.Inc()
}

// IncArtifact increments the artifact counter for a kind label.
func (m *Metrics) IncArtifact(kind string) {
	if m == nil {
		return
	}
	m.ArtifactsWrittenTotal.WithLabelValues(kind).Inc()
}

// ObserveStage records the wall time of one pipeline stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
