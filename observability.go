package observable

import (
	"context"
	"fmt"
	"math"
	"time"
)

const (
	metricTriggerDuration    = "eventregistry_trigger_duration_seconds"
	metricTriggerCalls       = "eventregistry_trigger_calls_total"
	metricHandlersPerTrigger = "eventregistry_handlers_per_trigger"
	metricRegistrations      = "eventregistry_registrations_total"
	metricRemovals           = "eventregistry_removals_total"

	spanNameTrigger = "eventregistry.trigger"

	statusSuccess    = "success"
	statusError      = "error"
	statusNotHandled = "not_handled"

	logMsgTriggerCompleted   = "event trigger completed"
	logMsgTriggerNotHandled  = "event trigger not handled"
	logMsgHandlerFailed      = "handler failed during event trigger"
	logMsgHandlersRegistered = "handlers registered"
	logMsgHandlersRemoved    = "handlers removed"
	logMsgEventRemoved       = "event removed"
	logMsgRegistryCleared    = "registry cleared"
	logMsgRemovalFailed      = "removal failed"

	logAttrEventName    = "event_name"
	logAttrHandlerName  = "handler_name"
	logAttrHandlerCount = "handler_count"
	logAttrDurationMS   = "duration_ms"
	logAttrError        = "error"
	logAttrStatus       = "status"
	logAttrOneShot      = "one_shot"
)

// Logger interface for dispatch logging, registration detail, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting registry performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for better tracing integration.
// Implementations can use the context for trace correlation, span propagation, and other contextual metadata.
// This interface is optional - the registry uses the context-aware methods when available, falling back to
// the base MetricsCollector interface otherwise.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting distributed tracing information from registry operations.
// This interface follows the same dependency-free pattern as MetricsCollector, allowing users to integrate
// with any tracing backend (OpenTelemetry, Jaeger, Zipkin, etc.) by implementing this interface.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// This interface follows the same dependency-free pattern as MetricsCollector and TracingCollector,
// allowing users to integrate with any logging backend (OpenTelemetry, structured loggers, etc.)
// that supports context-based correlation and automatic trace/span ID inclusion.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// observabilityConfigured reports whether any collaborator is wired; the hot
// dispatch path skips timing and observer allocation entirely when none is.
func (r *Registry) observabilityConfigured() bool {
	return r.logger != nil || r.contextualLogger != nil || r.metricsCollector != nil || r.tracingCollector != nil
}

// logDebug logs detail information at debug level, preferring the contextual logger when configured.
func (r *Registry) logDebug(ctx context.Context, msg string, args ...any) {
	if r.contextualLogger != nil {
		r.contextualLogger.DebugContext(ctx, msg, args...)
	} else if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

// logError logs error information, preferring the contextual logger when configured.
func (r *Registry) logError(ctx context.Context, msg string, err error, args ...any) {
	if r.contextualLogger == nil && r.logger == nil {
		return
	}

	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if r.contextualLogger != nil {
		r.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else {
		r.logger.Error(msg, allArgs...)
	}
}

// incrementCounter increments a counter metric if the metrics collector is configured,
// using the context-aware method when the collector supports it.
func (r *Registry) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if r.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := r.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		r.metricsCollector.IncrementCounter(metric, labels)
	}
}

// recordDuration records a duration metric if the metrics collector is configured,
// using the context-aware method when the collector supports it.
func (r *Registry) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if r.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := r.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
	} else {
		r.metricsCollector.RecordDuration(metric, duration, labels)
	}
}

// recordValue records a value metric if the metrics collector is configured,
// using the context-aware method when the collector supports it.
func (r *Registry) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if r.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := r.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
	} else {
		r.metricsCollector.RecordValue(metric, value, labels)
	}
}

// startTriggerSpan starts a tracing span for a dispatch pass if the tracing collector is configured.
func (r *Registry) startTriggerSpan(ctx context.Context, event EventName) (context.Context, SpanContext) {
	if r.tracingCollector == nil {
		return ctx, nil
	}

	return r.tracingCollector.StartSpan(ctx, spanNameTrigger, map[string]string{logAttrEventName: event})
}

// finishTriggerSpan finishes a dispatch span if one was started.
func (r *Registry) finishTriggerSpan(span SpanContext, status string, attrs map[string]string) {
	if r.tracingCollector == nil || span == nil {
		return
	}

	r.tracingCollector.FinishSpan(span, status, attrs)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// buildTriggerLabels creates the standard metric labels for dispatch operations.
func buildTriggerLabels(event EventName, status string) map[string]string {
	return map[string]string{
		logAttrEventName: event,
		logAttrStatus:    status,
	}
}

// observeRegistration reports one registration operation.
func (r *Registry) observeRegistration(event EventName, count int, oneShot bool) {
	if !r.observabilityConfigured() {
		return
	}

	ctx := context.Background()
	r.logDebug(ctx, logMsgHandlersRegistered,
		logAttrEventName, event,
		logAttrHandlerCount, count,
		logAttrOneShot, oneShot,
	)
	r.incrementCounter(ctx, metricRegistrations, map[string]string{logAttrEventName: event})
}

// observeEventRemoval reports removal of an event's entire entry.
func (r *Registry) observeEventRemoval(event EventName) {
	if !r.observabilityConfigured() {
		return
	}

	ctx := context.Background()
	r.logDebug(ctx, logMsgEventRemoved, logAttrEventName, event)
	r.incrementCounter(ctx, metricRemovals, map[string]string{logAttrEventName: event})
}

// observeHandlerRemoval reports removal of specific handlers from an event.
func (r *Registry) observeHandlerRemoval(event EventName, count int) {
	if !r.observabilityConfigured() {
		return
	}

	ctx := context.Background()
	r.logDebug(ctx, logMsgHandlersRemoved,
		logAttrEventName, event,
		logAttrHandlerCount, count,
	)
	r.incrementCounter(ctx, metricRemovals, map[string]string{logAttrEventName: event})
}

// observeRemovalFailure reports a failed Off call.
func (r *Registry) observeRemovalFailure(event EventName, err error) {
	if !r.observabilityConfigured() {
		return
	}

	r.logError(context.Background(), logMsgRemovalFailed, err, logAttrEventName, event)
}

// observeClear reports the unregister-all operation.
func (r *Registry) observeClear() {
	if !r.observabilityConfigured() {
		return
	}

	r.logDebug(context.Background(), logMsgRegistryCleared)
}

// triggerObserver bundles span, metric, and log reporting for one dispatch
// pass. A nil observer is valid and does nothing, so the dispatch path stays
// branch-free when no observability is configured.
type triggerObserver struct {
	r       *Registry
	ctx     context.Context
	event   EventName
	span    SpanContext
	started time.Time
}

// startTriggerObservation begins observing one dispatch pass. It returns a
// nil observer and the unchanged context when no collaborator is configured.
func (r *Registry) startTriggerObservation(ctx context.Context, event EventName) (*triggerObserver, context.Context) {
	if !r.observabilityConfigured() {
		return nil, ctx
	}

	newCtx, span := r.startTriggerSpan(ctx, event)

	return &triggerObserver{
		r:       r,
		ctx:     newCtx,
		event:   event,
		span:    span,
		started: time.Now(),
	}, newCtx
}

// finishNotHandled completes observation for a pass that found no handlers.
func (o *triggerObserver) finishNotHandled() {
	if o == nil {
		return
	}

	duration := time.Since(o.started)
	labels := buildTriggerLabels(o.event, statusNotHandled)

	o.r.recordDuration(o.ctx, metricTriggerDuration, duration, labels)
	o.r.incrementCounter(o.ctx, metricTriggerCalls, labels)

	if o.span != nil {
		o.span.SetStatus(statusNotHandled)
	}
	o.r.finishTriggerSpan(o.span, statusNotHandled, map[string]string{logAttrEventName: o.event})

	o.r.logDebug(o.ctx, logMsgTriggerNotHandled, logAttrEventName, o.event)
}

// finishSuccess completes observation for a pass in which every snapshot handler ran.
func (o *triggerObserver) finishSuccess(invoked int) {
	if o == nil {
		return
	}

	duration := time.Since(o.started)
	labels := buildTriggerLabels(o.event, statusSuccess)

	o.r.recordDuration(o.ctx, metricTriggerDuration, duration, labels)
	o.r.incrementCounter(o.ctx, metricTriggerCalls, labels)
	o.r.recordValue(o.ctx, metricHandlersPerTrigger, float64(invoked), labels)

	if o.span != nil {
		o.span.SetStatus(statusSuccess)
		o.span.AddAttribute(logAttrHandlerCount, fmt.Sprintf("%d", invoked))
	}
	o.r.finishTriggerSpan(o.span, statusSuccess, map[string]string{logAttrHandlerCount: fmt.Sprintf("%d", invoked)})

	o.r.logDebug(o.ctx, logMsgTriggerCompleted,
		logAttrEventName, o.event,
		logAttrHandlerCount, invoked,
		logAttrDurationMS, toMilliseconds(duration),
	)
}

// finishHandlerError completes observation for a pass aborted by a failing handler.
func (o *triggerObserver) finishHandlerError(handler *Handler, err error) {
	if o == nil {
		return
	}

	duration := time.Since(o.started)
	labels := buildTriggerLabels(o.event, statusError)

	o.r.recordDuration(o.ctx, metricTriggerDuration, duration, labels)
	o.r.incrementCounter(o.ctx, metricTriggerCalls, labels)

	if o.span != nil {
		o.span.SetStatus(statusError)
		o.span.AddAttribute(logAttrHandlerName, handler.String())
	}
	o.r.finishTriggerSpan(o.span, statusError, map[string]string{
		logAttrHandlerName: handler.String(),
		logAttrError:       err.Error(),
	})

	o.r.logError(o.ctx, logMsgHandlerFailed, err,
		logAttrEventName, o.event,
		logAttrHandlerName, handler.String(),
		logAttrDurationMS, toMilliseconds(duration),
	)
}
