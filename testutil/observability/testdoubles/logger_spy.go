package testdoubles

import (
	"sync"

	"github.com/timofurrer/observable"
)

// LoggerSpy is a Logger implementation that captures plain logging calls for
// testing registry instrumentation that runs without a context.
type LoggerSpy struct {
	debugRecords []SpyLogRecord
	infoRecords  []SpyLogRecord
	warnRecords  []SpyLogRecord
	errorRecords []SpyLogRecord
	mu           sync.Mutex
	recordCalls  bool
}

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy(recordCalls bool) *LoggerSpy {
	return &LoggerSpy{
		recordCalls: recordCalls,
	}
}

// Debug implements the Logger interface for testing.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record(&s.debugRecords, "debug", msg, args)
}

// Info implements the Logger interface for testing.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record(&s.infoRecords, "info", msg, args)
}

// Warn implements the Logger interface for testing.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record(&s.warnRecords, "warn", msg, args)
}

// Error implements the Logger interface for testing.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record(&s.errorRecords, "error", msg, args)
}

func (s *LoggerSpy) record(records *[]SpyLogRecord, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	*records = append(*records, SpyLogRecord{
		Level:   level,
		Message: msg,
		Args:    args,
	})
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugRecords = s.debugRecords[:0]
	s.infoRecords = s.infoRecords[:0]
	s.warnRecords = s.warnRecords[:0]
	s.errorRecords = s.errorRecords[:0]
}

// GetDebugRecords returns a copy of all debug log records.
func (s *LoggerSpy) GetDebugRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.debugRecords...)
}

// GetErrorRecords returns a copy of all error log records.
func (s *LoggerSpy) GetErrorRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.errorRecords...)
}

// GetTotalRecordCount returns the total number of log records across all levels.
func (s *LoggerSpy) GetTotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.debugRecords) + len(s.infoRecords) + len(s.warnRecords) + len(s.errorRecords)
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *LoggerSpy) HasDebugLog(message string) bool {
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
func (s *LoggerSpy) HasErrorLog(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.errorRecords {
		if record.Message == message {
			return true
		}
	}

	return false
}

// SpyLogRecordMatcher provides a fluent interface for checking log record attributes.
// Attributes are the alternating key/value pairs the registry passes as args.
type SpyLogRecordMatcher struct {
	spy    *LoggerSpy
	record *SpyLogRecord
	found  bool
}

// HasDebugLogWithMessage starts a fluent chain to check a debug log record.
func (s *LoggerSpy) HasDebugLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.matchRecord(s.debugRecords, message)
}

// HasErrorLogWithMessage starts a fluent chain to check an error log record.
func (s *LoggerSpy) HasErrorLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.matchRecord(s.errorRecords, message)
}

func (s *LoggerSpy) matchRecord(records []SpyLogRecord, message string) *SpyLogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range records {
		if records[i].Message == message {
			return &SpyLogRecordMatcher{spy: s, record: &records[i], found: true}
		}
	}

	return &SpyLogRecordMatcher{spy: s, found: false}
}

// WithAttr checks if the log record carries the specified attribute key.
func (m *SpyLogRecordMatcher) WithAttr(key string) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	if _, exists := findAttr(m.record.Args, key); !exists {
		m.found = false
	}

	return m
}

// WithAttrValue checks if the log record carries the specified attribute key and value.
func (m *SpyLogRecordMatcher) WithAttrValue(key string, value any) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	if attrValue, exists := findAttr(m.record.Args, key); !exists || attrValue != value {
		m.found = false
	}

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *SpyLogRecordMatcher) Assert() bool {
	return m.found
}

func findAttr(args []any, key string) (any, bool) {
	for i := 0; i+1 < len(args); i += 2 {
		if attrKey, ok := args[i].(string); ok && attrKey == key {
			return args[i+1], true
		}
	}

	return nil, false
}

// Compile-time check to ensure LoggerSpy implements the Logger interface.
var _ observable.Logger = (*LoggerSpy)(nil)
