package observability

import (
	"sync"
	"time"
)

// MockMetricsRegistry records calls so tests can assert on them.
type MockMetricsRegistry struct {
	mu         sync.Mutex
	Requests   map[string]int
	Renders    map[string]int
	Detections map[string]int
	Fetches    map[string]int
	Cache      map[string]int
	RenderErrs int
}

func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{
		Requests:   map[string]int{},
		Renders:    map[string]int{},
		Detections: map[string]int{},
		Fetches:    map[string]int{},
		Cache:      map[string]int{},
	}
}

func (m *MockMetricsRegistry) bump(counts map[string]int, key string) {
	m.mu.Lock()
	counts[key]++
	m.mu.Unlock()
}

// Count returns counts[key] under the registry lock.
func (m *MockMetricsRegistry) Count(counts map[string]int, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return counts[key]
}

// IncrementRequests keys requests as "endpoint method status".
func (m *MockMetricsRegistry) IncrementRequests(endpoint, method, status string) {
	m.bump(m.Requests, endpoint+" "+method+" "+status)
}

func (m *MockMetricsRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}

// IncrementRenders keys renders as "policy/os".
func (m *MockMetricsRegistry) IncrementRenders(policy, os string) {
	m.bump(m.Renders, policy+"/"+os)
}

func (m *MockMetricsRegistry) IncrementRenderErrors(policy string) {
	m.mu.Lock()
	m.RenderErrs++
	m.mu.Unlock()
}

// IncrementDetections keys detections as "os/browser".
func (m *MockMetricsRegistry) IncrementDetections(os, browser string) {
	m.bump(m.Detections, os+"/"+browser)
}

func (m *MockMetricsRegistry) IncrementDemoFetches(outcome string) {
	m.bump(m.Fetches, outcome)
}

func (m *MockMetricsRegistry) RecordDemoFetchLatency(duration time.Duration) {}

func (m *MockMetricsRegistry) IncrementDemoCache(result string) {
	m.bump(m.Cache, result)
}
