// Package testdoubles provides test doubles (spies) for the observable
// package's dependency-free observability interfaces:
//   - LoggerSpy: captures plain logging calls for verification
//   - ContextualLoggerSpy: captures structured logging with context
//   - MetricsCollectorSpy / ContextualMetricsCollectorSpy: capture metrics recording calls
//   - TracingCollectorSpy: captures dispatch spans and their attributes
//
// These test doubles enable testing of registry instrumentation without
// requiring actual telemetry backends. All spies are safe for concurrent use
// and record calls only when created with recordCalls set to true.
package testdoubles
