package observable

import (
	"errors"
	"fmt"
)

// EventName is a type alias for string, identifying a category of occurrence that handlers subscribe to.
type EventName = string

var ErrEventNotFound = errors.New("event wasn't found")
var ErrHandlerNotFound = errors.New("handler wasn't found")

var ErrNilLoggerSupplied = errors.New("nil logger supplied")
var ErrNilContextualLoggerSupplied = errors.New("nil contextual logger supplied")
var ErrNilMetricsCollectorSupplied = errors.New("nil metrics collector supplied")
var ErrNilTracingCollectorSupplied = errors.New("nil tracing collector supplied")

// EventNotFoundError reports that an operation required an already registered
// event name and found none. It unwraps to ErrEventNotFound so callers can
// match the kind with errors.Is and still read the event name with errors.As.
type EventNotFoundError struct {
	Event EventName
}

func (e *EventNotFoundError) Error() string {
	return fmt.Sprintf("event %q wasn't found", e.Event)
}

func (e *EventNotFoundError) Unwrap() error {
	return ErrEventNotFound
}

// HandlerNotFoundError reports that a removal named a handler which is not
// currently registered for an event that does exist. It unwraps to
// ErrHandlerNotFound.
type HandlerNotFoundError struct {
	Event   EventName
	Handler *Handler
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("handler %s wasn't found for event %q", e.Handler, e.Event)
}

func (e *HandlerNotFoundError) Unwrap() error {
	return ErrHandlerNotFound
}
