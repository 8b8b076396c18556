package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Buckets cover sub-millisecond store reads up to the multi-second simulated booking flow
	CustomAPIBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Booking store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Booking store operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"backend", "operation", "status"},
	)

	StoreOperationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of booking store operations",
		},
		[]string{"backend", "operation", "status"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Object storage metrics (receipts)
	ObjectStorageRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Object storage operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	ObjectStorageRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of object storage operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	MentorSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorsetu_mentor_searches_total",
			Help: "Total number of mentor directory searches",
		},
		[]string{"result"}, // "empty", "non_empty"
	)

	MentorProfileViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorsetu_mentor_profile_views_total",
			Help: "Total number of mentor profile views",
		},
		[]string{"mentor_id"},
	)

	BookingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorsetu_booking_submissions_total",
			Help: "Total booking submissions by outcome",
		},
		[]string{"status"}, // "rejected", "persisted", "failed", "cancelled"
	)

	SubmissionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mentorsetu_booking_submissions_in_flight",
			Help: "Number of booking submissions currently submitting or processing payment",
		},
	)

	PaymentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentorsetu_payment_duration_seconds",
			Help:    "Payment gateway charge duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"gateway", "status"},
	)

	BookingCancellations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorsetu_booking_cancellations_total",
			Help: "Total booking cancellations by outcome",
		},
		[]string{"status"},
	)

	ReceiptUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorsetu_receipt_uploads_total",
			Help: "Total receipt uploads by outcome",
		},
		[]string{"status"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorsetu_notifications_total",
			Help: "Total notifications raised by kind",
		},
		[]string{"kind"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mentorsetu_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	// MCP Metrics
	MCPToolInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorsetu_mcp_tool_invocations_total",
			Help: "Total number of MCP tool invocations",
		},
		[]string{"tool", "status"},
	)

	MCPResultsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentorsetu_mcp_results_returned",
			Help:    "Number of results returned by MCP tools",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		},
		[]string{"tool"},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
