package testdoubles

import (
	"context"
	"sync"

	"github.com/timofurrer/observable"
)

// ContextualLoggerSpy is a ContextualLogger implementation that captures
// contextual logging calls for testing. It records the context each call
// carried, so tests can verify trace correlation reaches the logger.
type ContextualLoggerSpy struct {
	debugRecords []SpyContextualLogRecord
	infoRecords  []SpyContextualLogRecord
	warnRecords  []SpyContextualLogRecord
	errorRecords []SpyContextualLogRecord
	mu           sync.Mutex
	recordCalls  bool
}

// SpyContextualLogRecord represents a recorded contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy instance.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{
		recordCalls: recordCalls,
	}
}

// DebugContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(&s.debugRecords, ctx, "debug", msg, args)
}

// InfoContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(&s.infoRecords, ctx, "info", msg, args)
}

// WarnContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(&s.warnRecords, ctx, "warn", msg, args)
}

// ErrorContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(&s.errorRecords, ctx, "error", msg, args)
}

func (s *ContextualLoggerSpy) record(records *[]SpyContextualLogRecord, ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	*records = append(*records, SpyContextualLogRecord{
		Level:   level,
		Message: msg,
		Args:    args,
		Context: ctx,
	})
}

// Reset clears all recorded log calls.
func (s *ContextualLoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugRecords = s.debugRecords[:0]
	s.infoRecords = s.infoRecords[:0]
	s.warnRecords = s.warnRecords[:0]
	s.errorRecords = s.errorRecords[:0]
}

// GetDebugRecords returns a copy of all debug log records.
func (s *ContextualLoggerSpy) GetDebugRecords() []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyContextualLogRecord(nil), s.debugRecords...)
}

// GetErrorRecords returns a copy of all error log records.
func (s *ContextualLoggerSpy) GetErrorRecords() []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyContextualLogRecord(nil), s.errorRecords...)
}

// GetTotalRecordCount returns the total number of log records across all levels.
func (s *ContextualLoggerSpy) GetTotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.debugRecords) + len(s.infoRecords) + len(s.warnRecords) + len(s.errorRecords)
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *ContextualLoggerSpy) HasDebugLog(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.debugRecords {
		if record.Message == message {
			return true
		}
	}

	return false
}

// HasErrorLog checks if an error log with the specified message exists.
func (s *ContextualLoggerSpy) HasErrorLog(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.errorRecords {
		if record.Message == message {
			return true
		}
	}

	return false
}

// SpyContextualLogRecordMatcher provides a fluent interface for checking
// contextual log record attributes.
type SpyContextualLogRecordMatcher struct {
	spy    *ContextualLoggerSpy
	record *SpyContextualLogRecord
	found  bool
}

// HasDebugLogWithMessage starts a fluent chain to check a debug log record.
func (s *ContextualLoggerSpy) HasDebugLogWithMessage(message string) *SpyContextualLogRecordMatcher {
	return s.matchRecord(s.debugRecords, message)
}

// HasErrorLogWithMessage starts a fluent chain to check an error log record.
func (s *ContextualLoggerSpy) HasErrorLogWithMessage(message string) *SpyContextualLogRecordMatcher {
	return s.matchRecord(s.errorRecords, message)
}

func (s *ContextualLoggerSpy) matchRecord(records []SpyContextualLogRecord, message string) *SpyContextualLogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range records {
		if records[i].Message == message {
			return &SpyContextualLogRecordMatcher{spy: s, record: &records[i], found: true}
		}
	}

	return &SpyContextualLogRecordMatcher{spy: s, found: false}
}

// WithAttr checks if the log record carries the specified attribute key.
func (m *SpyContextualLogRecordMatcher) WithAttr(key string) *SpyContextualLogRecordMatcher {
	if !m.found {
		return m
	}

	if _, exists := findAttr(m.record.Args, key); !exists {
		m.found = false
	}

	return m
}

// WithAttrValue checks if the log record carries the specified attribute key and value.
func (m *SpyContextualLogRecordMatcher) WithAttrValue(key string, value any) *SpyContextualLogRecordMatcher {
	if !m.found {
		return m
	}

	if attrValue, exists := findAttr(m.record.Args, key); !exists || attrValue != value {
		m.found = false
	}

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *SpyContextualLogRecordMatcher) Assert() bool {
	return m.found
}

// Compile-time check to ensure ContextualLoggerSpy implements the ContextualLogger interface.
var _ observable.ContextualLogger = (*ContextualLoggerSpy)(nil)
