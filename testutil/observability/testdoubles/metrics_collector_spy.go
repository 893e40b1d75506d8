package testdoubles

import (
	"context"
	"sync"
	"time"

	"github.com/timofurrer/observable"
)

// MetricsCollectorSpy is a MetricsCollector implementation that captures
// metrics calls for testing. It intentionally implements only the base
// interface, so tests can verify the registry's fallback path for
// collectors without context-aware methods.
type MetricsCollectorSpy struct {
	durationRecords []SpyDurationRecord
	counterRecords  []SpyCounterRecord
	valueRecords    []SpyValueRecord
	mu              sync.Mutex
	recordCalls     bool
}

// SpyDurationRecord represents a recorded duration metric call.
type SpyDurationRecord struct {
	Metric     string
	Duration   time.Duration
	Labels     map[string]string
	Contextual bool
}

// SpyCounterRecord represents a recorded counter increment call.
type SpyCounterRecord struct {
	Metric     string
	Labels     map[string]string
	Contextual bool
}

// SpyValueRecord represents a recorded value metric call.
type SpyValueRecord struct {
	Metric     string
	Value      float64
	Labels     map[string]string
	Contextual bool
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{
		recordCalls: recordCalls,
	}
}

// RecordDuration implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.recordDuration(metric, duration, labels, false)
}

// IncrementCounter implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.incrementCounter(metric, labels, false)
}

// RecordValue implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.recordValue(metric, value, labels, false)
}

func (s *MetricsCollectorSpy) recordDuration(metric string, duration time.Duration, labels map[string]string, contextual bool) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = append(s.durationRecords, SpyDurationRecord{
		Metric:     metric,
		Duration:   duration,
		Labels:     copyLabels(labels),
		Contextual: contextual,
	})
}

func (s *MetricsCollectorSpy) incrementCounter(metric string, labels map[string]string, contextual bool) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counterRecords = append(s.counterRecords, SpyCounterRecord{
		Metric:     metric,
		Labels:     copyLabels(labels),
		Contextual: contextual,
	})
}

func (s *MetricsCollectorSpy) recordValue(metric string, value float64, labels map[string]string, contextual bool) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.valueRecords = append(s.valueRecords, SpyValueRecord{
		Metric:     metric,
		Value:      value,
		Labels:     copyLabels(labels),
		Contextual: contextual,
	})
}

// Reset clears all recorded metric calls.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durationRecords = s.durationRecords[:0]
	s.counterRecords = s.counterRecords[:0]
	s.valueRecords = s.valueRecords[:0]
}

// GetDurationRecords returns a copy of all recorded duration metrics.
func (s *MetricsCollectorSpy) GetDurationRecords() []SpyDurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyDurationRecord(nil), s.durationRecords...)
}

// GetCounterRecords returns a copy of all recorded counter increments.
func (s *MetricsCollectorSpy) GetCounterRecords() []SpyCounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyCounterRecord(nil), s.counterRecords...)
}

// GetValueRecords returns a copy of all recorded value metrics.
func (s *MetricsCollectorSpy) GetValueRecords() []SpyValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyValueRecord(nil), s.valueRecords...)
}

// HasCounterRecord checks if a counter with the specified metric name was incremented.
func (s *MetricsCollectorSpy) HasCounterRecord(metric string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.counterRecords {
		if record.Metric == metric {
			return true
		}
	}

	return false
}

// HasDurationRecord checks if a duration for the specified metric name was recorded.
func (s *MetricsCollectorSpy) HasDurationRecord(metric string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.durationRecords {
		if record.Metric == metric {
			return true
		}
	}

	return false
}

// MetricRecordMatcher provides a fluent interface for checking metric records.
type MetricRecordMatcher struct {
	collector *MetricsCollectorSpy
	found     bool
	labels    map[string]string
}

// HasDurationRecordForMetric starts a fluent chain to check a duration record.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.durationRecords {
		if record.Metric == metric {
			return &MetricRecordMatcher{collector: s, found: true, labels: record.Labels}
		}
	}

	return &MetricRecordMatcher{collector: s, found: false}
}

// HasCounterRecordForMetric starts a fluent chain to check a counter record.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.counterRecords {
		if record.Metric == metric {
			return &MetricRecordMatcher{collector: s, found: true, labels: record.Labels}
		}
	}

	return &MetricRecordMatcher{collector: s, found: false}
}

// HasValueRecordForMetric starts a fluent chain to check a value record.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.valueRecords {
		if record.Metric == metric {
			return &MetricRecordMatcher{collector: s, found: true, labels: record.Labels}
		}
	}

	return &MetricRecordMatcher{collector: s, found: false}
}

// WithEventName checks if the record has the specified event_name label.
func (m *MetricRecordMatcher) WithEventName(event string) *MetricRecordMatcher {
	return m.WithLabel("event_name", event)
}

// WithStatus checks if the record has the specified status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithLabel checks if the record has the specified label with the given value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	if !m.found {
		return m
	}

	if labelValue, exists := m.labels[key]; !exists || labelValue != value {
		m.found = false
	}

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *MetricRecordMatcher) Assert() bool {
	return m.found
}

// ContextualMetricsCollectorSpy extends MetricsCollectorSpy with the
// context-aware methods, marking records made through them as contextual so
// tests can verify which path the registry took.
type ContextualMetricsCollectorSpy struct {
	MetricsCollectorSpy
}

// NewContextualMetricsCollectorSpy creates a new ContextualMetricsCollectorSpy.
func NewContextualMetricsCollectorSpy(recordCalls bool) *ContextualMetricsCollectorSpy {
	return &ContextualMetricsCollectorSpy{
		MetricsCollectorSpy: MetricsCollectorSpy{recordCalls: recordCalls},
	}
}

// RecordDurationContext implements the ContextualMetricsCollector interface for testing.
func (s *ContextualMetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.recordDuration(metric, duration, labels, true)
}

// IncrementCounterContext implements the ContextualMetricsCollector interface for testing.
func (s *ContextualMetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.incrementCounter(metric, labels, true)
}

// RecordValueContext implements the ContextualMetricsCollector interface for testing.
func (s *ContextualMetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.recordValue(metric, value, labels, true)
}

func copyLabels(labels map[string]string) map[string]string {
	labelsCopy := make(map[string]string, len(labels))
	for k, v := range labels {
		labelsCopy[k] = v
	}

	return labelsCopy
}

// Compile-time checks for the implemented interfaces.
var _ observable.MetricsCollector = (*MetricsCollectorSpy)(nil)
var _ observable.ContextualMetricsCollector = (*ContextualMetricsCollectorSpy)(nil)
