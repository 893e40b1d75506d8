package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/timofurrer/observable/oteladapters"
)

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")
	assert.NotNil(t, logger, "NewSlogBridgeLogger should return non-nil logger")
}

func Test_NewSlogBridgeLoggerWithHandler_Construction(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	assert.NotNil(t, logger, "NewSlogBridgeLoggerWithHandler should return non-nil logger")
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug, // Capture all levels
	})

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	logger.DebugContext(ctx, "debug message", "level", "debug")
	logger.InfoContext(ctx, "info message", "level", "info")
	logger.WarnContext(ctx, "warn message", "level", "warn")
	logger.ErrorContext(ctx, "error message", "level", "error")

	output := buf.String()

	assert.Contains(t, output, "debug message", "Debug message should be logged")
	assert.Contains(t, output, "info message", "Info message should be logged")
	assert.Contains(t, output, "warn message", "Warn message should be logged")
	assert.Contains(t, output, "error message", "Error message should be logged")

	assert.Contains(t, output, `"level":"debug"`, "Debug level should be present")
	assert.Contains(t, output, `"level":"info"`, "Info level should be present")
	assert.Contains(t, output, `"level":"warn"`, "Warn level should be present")
	assert.Contains(t, output, `"level":"error"`, "Error level should be present")
}

func Test_SlogBridgeLogger_WithAttributes(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	logger.InfoContext(ctx, "event trigger completed",
		"event_name", "reading.recorded",
		"handler_count", 2,
		"duration_ms", 0.125,
		"one_shot", true,
	)

	output := buf.String()

	assert.Contains(t, output, "event trigger completed", "Message should be logged")
	assert.Contains(t, output, `"event_name":"reading.recorded"`, "String attribute should be present")
	assert.Contains(t, output, `"handler_count":2`, "Int attribute should be present")
	assert.Contains(t, output, `"duration_ms":0.125`, "Float attribute should be present")
	assert.Contains(t, output, `"one_shot":true`, "Bool attribute should be present")
}

func Test_NewOTelLogger_Construction(t *testing.T) {
	otelLogger := noop.NewLoggerProvider().Logger("test")

	logger := oteladapters.NewOTelLogger(otelLogger)
	assert.NotNil(t, logger, "NewOTelLogger should return non-nil logger")
}

func Test_OTelLogger_EmitsRecords(t *testing.T) {
	exporter := &recordCapturingExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	logger := oteladapters.NewOTelLogger(provider.Logger("test"))

	logger.DebugContext(context.Background(), "event trigger completed",
		"event_name", "reading.recorded",
		"handler_count", 3,
	)

	records := exporter.Records()
	require.Len(t, records, 1, "Expected exactly one log record")

	record := records[0]
	assert.Equal(t, "event trigger completed", record.Body().AsString(), "Body should carry the message")
	assert.Equal(t, log.SeverityDebug, record.Severity(), "Severity should be debug")

	attrs := make(map[string]string)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})
	assert.Equal(t, "reading.recorded", attrs["event_name"], "String attribute should be present")
	assert.Equal(t, "3", attrs["handler_count"], "Non-string attributes are stringified")
}

func Test_OTelLogger_AllLevels(t *testing.T) {
	exporter := &recordCapturingExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	logger := oteladapters.NewOTelLogger(provider.Logger("test"))
	ctx := context.Background()

	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	records := exporter.Records()
	require.Len(t, records, 4, "Expected one record per level")

	severities := make([]log.Severity, 0, len(records))
	for _, record := range records {
		severities = append(severities, record.Severity())
	}
	assert.Equal(t, []log.Severity{log.SeverityDebug, log.SeverityInfo, log.SeverityWarn, log.SeverityError}, severities)
}

func Test_OTelLogger_ArgumentHandling(t *testing.T) {
	otelLogger := noop.NewLoggerProvider().Logger("test")
	logger := oteladapters.NewOTelLogger(otelLogger)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "test message",
			"string", "text_value",
			"number", 123,
			"float", 45.67,
			"boolean", false,
		)
	}, "Multiple args should not panic")

	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "test message", "key1", "value1", "key2")
	}, "Odd number of args should not panic")

	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "simple message")
	}, "No additional args should not panic")
}

// recordCapturingExporter is a minimal sdklog.Exporter that keeps clones of
// all exported records for inspection.
type recordCapturingExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *recordCapturingExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, record := range records {
		e.records = append(e.records, record.Clone())
	}

	return nil
}

func (e *recordCapturingExporter) Shutdown(_ context.Context) error {
	return nil
}

func (e *recordCapturingExporter) ForceFlush(_ context.Context) error {
	return nil
}

func (e *recordCapturingExporter) Records() []sdklog.Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]sdklog.Record(nil), e.records...)
}
