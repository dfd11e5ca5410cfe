// Package metrics provides Prometheus metrics for the clanpulse tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the tracker.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Poll loop metrics - one poll tick is one fetch+diff cycle
	ticksTotal   prometheus.Counter
	ticksSkipped prometheus.Counter
	tickFailures prometheus.Counter
	tickDuration prometheus.Histogram

	// Remote API metrics
	fetchLatency   prometheus.Histogram
	fetchFailures  prometheus.Counter
	membersSkipped prometheus.Counter

	// Ledger metrics
	trophyEvents    *prometheus.CounterVec
	eventMagnitude  *prometheus.HistogramVec
	trackedPlayers  prometheus.Gauge
	ledgerEvents    prometheus.Gauge
	rolloversTotal  prometheus.Counter
	partitionActive prometheus.Gauge

	// Outbound queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Delivery metrics
	deliveries      prometheus.Counter
	deliveryErrors  prometheus.Counter
	deliveryLatency prometheus.Histogram
	workerCount     prometheus.Gauge

	// HTTP read-surface metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "clanpulse",
		subsystem:        "tracker",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.ticksTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_ticks_total",
		Help:      "Total number of poll ticks processed",
	})

	m.ticksSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_ticks_skipped_total",
		Help:      "Total number of poll ticks skipped because the previous tick was still running",
	})

	m.tickFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_tick_failures_total",
		Help:      "Total number of poll ticks abandoned due to a failed fetch",
	})

	m.tickDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_tick_duration_milliseconds",
		Help:      "Histogram of poll tick duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Histogram of clan API fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.fetchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_failures_total",
		Help:      "Total number of failed clan API fetches",
	})

	m.membersSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "members_skipped_total",
		Help:      "Total number of clan members skipped due to malformed payload fields",
	})

	m.trophyEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trophy_events_total",
		Help:      "Total number of trophy events recorded, labeled by kind",
	}, []string{"kind"})

	m.eventMagnitude = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trophy_event_magnitude",
		Help:      "Histogram of trophy event magnitudes, labeled by kind",
		Buckets:   []float64{1, 5, 10, 20, 30, 40, 60, 100},
	}, []string{"kind"})

	m.trackedPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_players",
		Help:      "Number of players with a snapshot entry",
	})

	m.ledgerEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_events",
		Help:      "Number of trophy events held in the active ledger partition",
	})

	m.rolloversTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "day_rollovers_total",
		Help:      "Total number of day-partition rollovers",
	})

	m.partitionActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "partition_active_start_seconds",
		Help:      "Unix time at which the active day partition was opened",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_size",
		Help:      "Current number of queued notifications",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_capacity",
		Help:      "Maximum capacity of the notification queue",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_utilization",
		Help:      "Queue utilization as a ratio of size to capacity",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_enqueues_total",
		Help:      "Total number of notifications enqueued",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_dequeues_total",
		Help:      "Total number of notifications dequeued",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_enqueue_errors_total",
		Help:      "Total number of rejected enqueues (closed or full queue)",
	})

	m.deliveries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "deliveries_total",
		Help:      "Total number of notifications handed to the chat transport",
	})

	m.deliveryErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "delivery_errors_total",
		Help:      "Total number of failed notification deliveries",
	})

	m.deliveryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "delivery_latency_milliseconds",
		Help:      "Histogram of notification delivery latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "delivery_workers",
		Help:      "Number of delivery workers draining the notification queue",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method, and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Poll loop metrics.

func RecordTick() {
	globalManager.ticksTotal.Inc()
}

func RecordTickSkipped() {
	globalManager.ticksSkipped.Inc()
}

func RecordTickFailure() {
	globalManager.tickFailures.Inc()
}

func RecordTickDuration(durationMs float64) {
	globalManager.tickDuration.Observe(durationMs)
}

// Remote API metrics.

func RecordFetchLatency(latencyMs float64) {
	globalManager.fetchLatency.Observe(latencyMs)
}

func RecordFetchFailure() {
	globalManager.fetchFailures.Inc()
}

func RecordMemberSkipped() {
	globalManager.membersSkipped.Inc()
}

// Ledger metrics.

func RecordTrophyEvent(kind string, magnitude int) {
	globalManager.trophyEvents.WithLabelValues(kind).Inc()
	globalManager.eventMagnitude.WithLabelValues(kind).Observe(float64(magnitude))
}

func UpdateTrackedPlayers(count int) {
	globalManager.trackedPlayers.Set(float64(count))
}

func UpdateLedgerEvents(count int) {
	globalManager.ledgerEvents.Set(float64(count))
}

func RecordRollover() {
	globalManager.rolloversTotal.Inc()
}

func UpdatePartitionStart(unixSeconds int64) {
	globalManager.partitionActive.Set(float64(unixSeconds))
}

// Queue metrics.

func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// Delivery metrics.

func RecordDelivery() {
	globalManager.deliveries.Inc()
}

func RecordDeliveryError() {
	globalManager.deliveryErrors.Inc()
}

func RecordDeliveryLatency(latencyMs float64) {
	globalManager.deliveryLatency.Observe(latencyMs)
}

func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// HTTP metrics.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry used by the global manager,
// for serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
