// Package metrics provides Prometheus metrics for the swimtab pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"

	ReasonUnresolvedEvent = "unresolved_event"
	ReasonRelay           = "relay"
)

// Manager manages all Prometheus metrics for a pipeline run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	filesTotal       *prometheus.CounterVec
	meetsTotal       prometheus.Counter
	rowsEmitted      *prometheus.CounterVec
	resultsDropped   *prometheus.CounterVec
	parseDuration    prometheus.Histogram
	runDuration      prometheus.Gauge
	lastRunTimestamp prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swimtab",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.filesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_total",
		Help:      "Input files handled, by outcome",
	}, []string{"status"})

	m.meetsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "meets_total",
		Help:      "Meets converted into competition rows",
	})

	m.rowsEmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_emitted_total",
		Help:      "Rows written per output table after deduplication",
	}, []string{"table"})

	m.resultsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_dropped_total",
		Help:      "Results that produced no rows, by reason",
	}, []string{"reason"})

	m.parseDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_duration_seconds",
		Help:      "Time spent loading and parsing one input file",
		Buckets:   m.histogramBuckets,
	})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run",
	})

	m.lastRunTimestamp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last run finished",
	})
}

// RecordFile counts one input file with the given status.
func (m *Manager) RecordFile(status string) { m.filesTotal.WithLabelValues(status).Inc() }

// RecordMeets adds n converted meets.
func (m *Manager) RecordMeets(n int) { m.meetsTotal.Add(float64(n)) }

// RecordRows adds n rows written to table.
func (m *Manager) RecordRows(table string, n int) { m.rowsEmitted.WithLabelValues(table).Add(float64(n)) }

// RecordDroppedResults adds n results dropped for reason.
func (m *Manager) RecordDroppedResults(reason string, n int) {
	m.resultsDropped.WithLabelValues(reason).Add(float64(n))
}

// ObserveParseDuration records the parse time of one file in seconds.
func (m *Manager) ObserveParseDuration(seconds float64) { m.parseDuration.Observe(seconds) }

// SetRunDuration records the wall time of the run and its finish time.
func (m *Manager) SetRunDuration(seconds float64, finishedUnix int64) {
	m.runDuration.Set(seconds)
	m.lastRunTimestamp.Set(float64(finishedUnix))
}

// RecordFile counts one input file with the given status.
func RecordFile(status string) { globalManager.RecordFile(status) }

// RecordMeets adds n converted meets.
func RecordMeets(n int) { globalManager.RecordMeets(n) }

// RecordRows adds n rows written to table.
func RecordRows(table string, n int) { globalManager.RecordRows(table, n) }

// RecordDroppedResults adds n results dropped for reason.
func RecordDroppedResults(reason string, n int) { globalManager.RecordDroppedResults(reason, n) }

// ObserveParseDuration records the parse time of one file in seconds.
func ObserveParseDuration(seconds float64) { globalManager.ObserveParseDuration(seconds) }

// SetRunDuration records the wall time of the run and its finish time.
func SetRunDuration(seconds float64, finishedUnix int64) {
	globalManager.SetRunDuration(seconds, finishedUnix)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every metric of g to path in the text exposition
// format, for pickup by the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
