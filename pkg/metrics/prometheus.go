// Package metrics provides Prometheus metrics for the scout rating engine.
package metrics

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scout service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	ratingBuckets    []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Core business metrics
	playersEvaluated      prometheus.Counter
	playersDuplicate      prometheus.Counter
	playersRejected       prometheus.Counter
	evaluationsByPosition *prometheus.CounterVec
	goalkeeperViews       prometheus.Counter
	ratingDistribution    prometheus.Histogram
	evaluationLatency     prometheus.Histogram

	// Rating board
	boardSize          prometheus.Gauge
	boardUpdates       prometheus.Counter
	boardUpdateLatency prometheus.Histogram
	boardQueryLatency  prometheus.Histogram

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Roster generation
	rostersGenerated prometheus.Counter

	errorsByComponent *prometheus.CounterVec
}

// global pairs the process-wide manager with the registry it writes to.
type global struct {
	manager  *Manager
	registry *prometheus.Registry
}

var state atomic.Pointer[global] //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Init()
}

// Init replaces the global metrics with a fresh manager on a new custom
// registry, so default Go metrics stay out. Counters restart from zero.
// Any WithPrometheusRegistry in opts is ignored.
func Init(opts ...Option) {
	reg := prometheus.NewRegistry()
	opts = append(opts, WithPrometheusRegistry(reg))
	state.Store(&global{manager: NewManager(opts...), registry: reg})
}

func current() *Manager { return state.Load().manager }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scout",
		subsystem:        "rating",
		histogramBuckets: prometheus.DefBuckets,
		ratingBuckets:    prometheus.LinearBuckets(0.5, 0.5, 10),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.playersEvaluated = m.counter("players_evaluated_total", "Total number of player records evaluated")
	m.playersDuplicate = m.counter("players_duplicate_total", "Total number of player records skipped as duplicates")
	m.playersRejected = m.counter("players_rejected_total", "Total number of player records rejected as invalid")
	m.evaluationsByPosition = m.counterVec("evaluations_by_position_total", "Evaluations grouped by submitted position code", "position")
	m.goalkeeperViews = m.counter("goalkeeper_views_total", "Evaluations whose pie and bar panels used the goalkeeper view")
	m.ratingDistribution = m.histogram("distribution", "Distribution of computed 0-5 ratings", m.ratingBuckets)
	m.evaluationLatency = m.histogram("evaluation_latency_milliseconds", "Histogram of single player evaluation latency in milliseconds", m.histogramBuckets)

	m.boardSize = m.gauge("board_players", "Number of players on the rating board")
	m.boardUpdates = m.counter("board_updates_total", "Total number of rating board upserts")
	m.boardUpdateLatency = m.histogram("board_update_latency_milliseconds", "Rating board upsert latency in milliseconds", m.histogramBuckets)
	m.boardQueryLatency = m.histogram("board_query_latency_milliseconds", "Rating board query latency in milliseconds", m.histogramBuckets)

	m.queueSize = m.gauge("queue_size", "Current number of records waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue fill ratio (0-1)")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Total number of records enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Total number of records dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Total number of enqueue attempts rejected")

	m.workerCount = m.gauge("worker_count", "Number of configured workers")
	m.workerActiveCount = m.gauge("worker_active_count", "Number of workers currently running")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Per-record worker processing latency in milliseconds", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Total number of worker processing errors")

	m.rostersGenerated = m.counter("rosters_generated_players_total", "Total number of synthetic player records generated")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors grouped by component and type", "component", "error_type")
}

// RecordPlayerEvaluated records a finished evaluation.
func RecordPlayerEvaluated(position string, rating float64, goalkeeperView bool) {
	current().playersEvaluated.Inc()
	current().evaluationsByPosition.WithLabelValues(position).Inc()
	current().ratingDistribution.Observe(rating)
	if goalkeeperView {
		current().goalkeeperViews.Inc()
	}
}

// RecordPlayerDuplicate increments the duplicate records counter.
func RecordPlayerDuplicate() {
	current().playersDuplicate.Inc()
}

// RecordPlayerRejected increments the rejected records counter.
func RecordPlayerRejected() {
	current().playersRejected.Inc()
}

// RecordEvaluationLatency records evaluation latency in milliseconds.
func RecordEvaluationLatency(latencyMs float64) {
	current().evaluationLatency.Observe(latencyMs)
}

// UpdateBoardSize sets the number of players on the board.
func UpdateBoardSize(count int) {
	current().boardSize.Set(float64(count))
}

// RecordBoardUpdate increments the board upsert counter and records its latency.
func RecordBoardUpdate(latencyMs float64) {
	current().boardUpdates.Inc()
	current().boardUpdateLatency.Observe(latencyMs)
}

// RecordBoardQueryLatency records board query latency in milliseconds.
func RecordBoardQueryLatency(latencyMs float64) {
	current().boardQueryLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	current().queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	current().queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	current().queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	current().queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	current().queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	current().queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	current().workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) {
	current().workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	current().workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	current().workerErrors.Inc()
}

// RecordRosterGenerated adds n generated players.
func RecordRosterGenerated(n int) {
	current().rostersGenerated.Add(float64(n))
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	current().errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return state.Load().registry
}

// WriteTextfile dumps the current metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
