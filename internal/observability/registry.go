package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics
// so handlers never touch the global Prometheus collectors directly.
type MetricsRegistry interface {
	// HTTP request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Personalization metrics
	IncrementRenders(policy, os string)
	IncrementRenderErrors(policy string)
	IncrementDetections(os, browser string)

	// Demo source metrics
	IncrementDemoFetches(outcome string)
	RecordDemoFetchLatency(duration time.Duration)
	IncrementDemoCache(result string)
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementRenders(policy, os string) {
	RenderCount.WithLabelValues(policy, os).Inc()
}

func (r *PrometheusRegistry) IncrementRenderErrors(policy string) {
	RenderErrors.WithLabelValues(policy).Inc()
}

func (r *PrometheusRegistry) IncrementDetections(os, browser string) {
	DetectionCount.WithLabelValues(os, browser).Inc()
}

func (r *PrometheusRegistry) IncrementDemoFetches(outcome string) {
	DemoFetchCount.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRegistry) RecordDemoFetchLatency(duration time.Duration) {
	DemoFetchLatency.Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementDemoCache(result string) {
	DemoCacheCount.WithLabelValues(result).Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementRenders(policy, os string)                                   {}
func (r *NoOpRegistry) IncrementRenderErrors(policy string)                                  {}
func (r *NoOpRegistry) IncrementDetections(os, browser string)                               {}
func (r *NoOpRegistry) IncrementDemoFetches(outcome string)                                  {}
func (r *NoOpRegistry) RecordDemoFetchLatency(duration time.Duration)                        {}
func (r *NoOpRegistry) IncrementDemoCache(result string)                                     {}
