package planner

import (
	"sync/atomic"
	"time"
)

// Metrics tracks plan generation metrics
type Metrics struct {
	modelCalls         int64
	modelErrors        int64
	modelLatency       int64 // Total latency in nanoseconds
	validationFailures int64
	mockPlansServed    int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		modelCalls:         atomic.LoadInt64(&globalMetrics.modelCalls),
		modelErrors:        atomic.LoadInt64(&globalMetrics.modelErrors),
		modelLatency:       atomic.LoadInt64(&globalMetrics.modelLatency),
		validationFailures: atomic.LoadInt64(&globalMetrics.validationFailures),
		mockPlansServed:    atomic.LoadInt64(&globalMetrics.mockPlansServed),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.modelCalls, 0)
	atomic.StoreInt64(&globalMetrics.modelErrors, 0)
	atomic.StoreInt64(&globalMetrics.modelLatency, 0)
	atomic.StoreInt64(&globalMetrics.validationFailures, 0)
	atomic.StoreInt64(&globalMetrics.mockPlansServed, 0)
}

// recordModelCall records a model call
func recordModelCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.modelCalls, 1)
	atomic.AddInt64(&globalMetrics.modelLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.modelErrors, 1)
	}
}

// recordValidationFailure records a rejected model response
func recordValidationFailure() {
	atomic.AddInt64(&globalMetrics.validationFailures, 1)
}

// recordMockPlan records a mock plan served in place of a model response
func recordMockPlan() {
	atomic.AddInt64(&globalMetrics.mockPlansServed, 1)
}

// AverageModelLatency returns the average latency in milliseconds
func (m Metrics) AverageModelLatency() float64 {
	if m.modelCalls == 0 {
		return 0
	}
	avgNs := float64(m.modelLatency) / float64(m.modelCalls)
	return avgNs / 1e6 // Convert nanoseconds to milliseconds
}

// ModelErrorRate returns the error rate as a percentage
func (m Metrics) ModelErrorRate() float64 {
	if m.modelCalls == 0 {
		return 0
	}
	return float64(m.modelErrors) / float64(m.modelCalls) * 100
}

// ModelCalls returns the number of model calls recorded
func (m Metrics) ModelCalls() int64 { return m.modelCalls }

// ModelErrors returns the number of failed model calls
func (m Metrics) ModelErrors() int64 { return m.modelErrors }

// ValidationFailures returns the number of rejected model responses
func (m Metrics) ValidationFailures() int64 { return m.validationFailures }

// MockPlansServed returns the number of mock plans served
func (m Metrics) MockPlansServed() int64 { return m.mockPlansServed }
