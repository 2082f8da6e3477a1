package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdocs_requests_total",
			Help: "Total HTTP requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartdocs_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// pages rendered, labelled by policy and detected OS
	RenderCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdocs_renders_total",
			Help: "Total personalized pages rendered",
		},
		[]string{"policy", "os"},
	)

	// client environments seen on any endpoint
	DetectionCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdocs_detections_total",
			Help: "Total environment detections by OS and browser",
		},
		[]string{"os", "browser"},
	)

	// errors while streaming a rewritten page
	RenderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdocs_render_errors_total",
			Help: "Total errors while rendering personalized pages",
		},
		[]string{"policy"},
	)

	// remote demo fetches labelled by outcome
	DemoFetchCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdocs_demo_fetch_total",
			Help: "Total remote demo document fetches",
		},
		[]string{"outcome"},
	)

	// latency of remote demo fetches
	DemoFetchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "smartdocs_demo_fetch_duration_seconds",
			Help:    "Duration of remote demo document fetches",
			Buckets: prometheus.DefBuckets,
		},
	)

	// demo cache lookups labelled by result (hit, miss, error)
	DemoCacheCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartdocs_demo_cache_total",
			Help: "Total demo document cache lookups",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		RenderCount,
		DetectionCount,
		RenderErrors,
		DemoFetchCount,
		DemoFetchLatency,
		DemoCacheCount,
	)
}
