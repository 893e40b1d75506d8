package observable

// Option defines a functional option for configuring a Registry.
type Option func(*Registry) error

// WithLogger sets the logger for the Registry.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: dispatch completion and registration/removal detail (development use)
// Error level: handler failures during dispatch and removal failures.
func WithLogger(logger Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			return ErrNilLoggerSupplied
		}

		r.logger = logger

		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Registry.
// The contextual logger will receive log messages with context information including
// automatic trace/span correlation when tracing is enabled, enabling unified observability.
// When both loggers are configured, the contextual logger wins.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(r *Registry) error {
		if logger == nil {
			return ErrNilContextualLoggerSupplied
		}

		r.contextualLogger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector for the Registry.
// The collector will receive dispatch durations, trigger call counts, handler
// counts per dispatch, and registration/removal counts.
func WithMetrics(collector MetricsCollector) Option {
	return func(r *Registry) error {
		if collector == nil {
			return ErrNilMetricsCollectorSupplied
		}

		r.metricsCollector = collector

		return nil
	}
}

// WithTracing sets the tracing collector for the Registry.
// The collector will receive one span per dispatch pass, carrying the event
// name, handler count, and outcome status.
func WithTracing(collector TracingCollector) Option {
	return func(r *Registry) error {
		if collector == nil {
			return ErrNilTracingCollectorSupplied
		}

		r.tracingCollector = collector

		return nil
	}
}
