package observable

import (
	"context"
	"slices"
	"sync"
)

// Registry is the event registry: it owns the mapping from event name to the
// ordered sequence of registered handlers and exposes register, unregister,
// introspection, and dispatch operations.
//
// Within one event's sequence the same *Handler may appear multiple times;
// every occurrence is invoked once per dispatch pass, and removal strips
// every occurrence. An event whose sequence is empty behaves like an absent
// event for dispatch, but Off still treats it as existing; only removing the
// entry itself makes the name unknown again.
//
// The registry is safe for concurrent use. Its lock guards only the mapping
// and is never held while handlers run, so a handler may call Trigger, On,
// and Off on the same registry: dispatch iterates a snapshot taken at
// dispatch start while mutations act on the live mapping immediately.
type Registry struct {
	mu       sync.RWMutex
	handlers map[EventName][]*Handler

	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewRegistry creates an empty Registry with optional configuration.
func NewRegistry(options ...Option) (*Registry, error) {
	r := &Registry{
		handlers: make(map[EventName][]*Handler),
	}

	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// On appends the given handlers, in the order given, to the sequence
// registered for event, creating the sequence when the event is unknown.
// It returns the first handler supplied, so a registration can double as an
// in-place annotation of the handler value. Registering the same *Handler
// again appends another occurrence. Nil handlers panic.
func (r *Registry) On(event EventName, first *Handler, more ...*Handler) *Handler {
	r.register(event, first, more, false)

	return first
}

// OnEvent returns the curried registration form for event: the returned
// RegisterFunc performs the same append as On and returns the first handler.
func (r *Registry) OnEvent(event EventName) RegisterFunc {
	return func(first *Handler, more ...*Handler) *Handler {
		return r.On(event, first, more...)
	}
}

// Once registers a one-shot wrapper around the given handlers and returns
// the wrapper; callers need the wrapper for Off and IsRegistered. When the
// wrapper is invoked it first unregisters itself from event, then invokes
// every wrapped handler in order with the dispatch call. Unregistering
// before invoking means a handler that re-triggers the same event
// synchronously cannot re-enter the wrapper.
func (r *Registry) Once(event EventName, first *Handler, more ...*Handler) *Handler {
	wrapper := r.buildOnceWrapper(event, first, more)
	r.register(event, wrapper, nil, true)

	return wrapper
}

// OnceEvent returns the curried registration form of Once: the returned
// RegisterFunc registers a one-shot wrapper for event and returns it.
func (r *Registry) OnceEvent(event EventName) RegisterFunc {
	return func(first *Handler, more ...*Handler) *Handler {
		return r.Once(event, first, more...)
	}
}

// Off unregisters from event. With no handlers it removes the event's entire
// entry, making the name unknown again. With handlers it removes, in
// argument order, every occurrence of each given handler from the sequence,
// keeping the (possibly empty) entry.
//
// It returns an *EventNotFoundError when event is not present, and an
// *HandlerNotFoundError when a given handler is not currently registered for
// it; in the latter case the handlers already processed stay removed and the
// remaining ones are not touched.
func (r *Registry) Off(event EventName, handlers ...*Handler) error {
	r.mu.Lock()

	seq, ok := r.handlers[event]
	if !ok {
		r.mu.Unlock()
		err := &EventNotFoundError{Event: event}
		r.observeRemovalFailure(event, err)

		return err
	}

	if len(handlers) == 0 {
		delete(r.handlers, event)
		r.mu.Unlock()
		r.observeEventRemoval(event)

		return nil
	}

	for _, handler := range handlers {
		if !slices.Contains(seq, handler) {
			r.handlers[event] = seq
			r.mu.Unlock()
			err := &HandlerNotFoundError{Event: event, Handler: handler}
			r.observeRemovalFailure(event, err)

			return err
		}

		seq = slices.DeleteFunc(seq, func(registered *Handler) bool {
			return registered == handler
		})
	}

	r.handlers[event] = seq
	r.mu.Unlock()
	r.observeHandlerRemoval(event, len(handlers))

	return nil
}

// Clear drops every event and every handler. It is the unregister-all form
// and always succeeds.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.handlers = make(map[EventName][]*Handler)
	r.mu.Unlock()

	r.observeClear()
}

// Trigger dispatches event with positional arguments only; see TriggerCall
// for the full dispatch contract.
func (r *Registry) Trigger(ctx context.Context, event EventName, args ...any) (bool, error) {
	return r.TriggerCall(ctx, Call{Event: event, Args: args})
}

// TriggerCall synchronously invokes every handler currently registered for
// call.Event, in registration order, forwarding the call unchanged to each.
// The pass iterates a snapshot taken before the first invocation, so
// handlers that register or unregister during the pass do not affect it.
//
// It returns (false, nil) when the event is unknown or has no handlers;
// unlike Off, a missing event is never an error here. It returns (true, nil)
// once every snapshot handler ran. A handler error aborts the remaining
// invocations of the pass and is returned verbatim as (false, err); handler
// panics are not recovered.
func (r *Registry) TriggerCall(ctx context.Context, call Call) (bool, error) {
	observer, ctx := r.startTriggerObservation(ctx, call.Event)

	r.mu.RLock()
	snapshot := slices.Clone(r.handlers[call.Event])
	r.mu.RUnlock()

	if len(snapshot) == 0 {
		observer.finishNotHandled()

		return false, nil
	}

	for _, handler := range snapshot {
		if err := handler.Invoke(ctx, call); err != nil {
			observer.finishHandlerError(handler, err)

			return false, err
		}
	}

	observer.finishSuccess(len(snapshot))

	return true, nil
}

// Handlers returns a copy of the sequence registered for event, nil when the
// event is unknown. The live sequence is never exposed.
func (r *Registry) Handlers(event EventName) []*Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.handlers[event])
}

// AllHandlers returns a snapshot of the whole mapping: every event currently
// present, including ones whose sequence is empty, mapped to a copy of its
// sequence.
func (r *Registry) AllHandlers() map[EventName][]*Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[EventName][]*Handler, len(r.handlers))
	for event, seq := range r.handlers {
		snapshot[event] = slices.Clone(seq)
	}

	return snapshot
}

// IsRegistered reports whether handler appears at least once in event's
// sequence; it is false when the event is unknown.
func (r *Registry) IsRegistered(event EventName, handler *Handler) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Contains(r.handlers[event], handler)
}

// EventNames returns the sorted names of every event currently present,
// including ones with an empty sequence.
func (r *Registry) EventNames() []EventName {
	r.mu.RLock()
	names := make([]EventName, 0, len(r.handlers))
	for event := range r.handlers {
		names = append(names, event)
	}
	r.mu.RUnlock()

	slices.Sort(names)

	return names
}

// HandlerCount returns the number of registrations for event, counting
// duplicate occurrences, 0 when the event is unknown.
func (r *Registry) HandlerCount(event EventName) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers[event])
}

// EventRegistry returns the registry itself. A type that embeds *Registry
// thereby satisfies locator interfaces that ask for one, such as
// property.RegistrySource.
func (r *Registry) EventRegistry() *Registry {
	return r
}

// register implements On and Once. Get-or-create of the sequence is explicit
// so an introspection between registrations never observes a half-made entry.
func (r *Registry) register(event EventName, first *Handler, more []*Handler, oneShot bool) {
	if first == nil {
		panic("observable: nil handler")
	}
	for _, handler := range more {
		if handler == nil {
			panic("observable: nil handler")
		}
	}

	r.mu.Lock()
	seq, ok := r.handlers[event]
	if !ok {
		seq = make([]*Handler, 0, 1+len(more))
	}
	seq = append(seq, first)
	seq = append(seq, more...)
	r.handlers[event] = seq
	r.mu.Unlock()

	r.observeRegistration(event, 1+len(more), oneShot)
}

// buildOnceWrapper creates the self-unregistering wrapper used by Once.
func (r *Registry) buildOnceWrapper(event EventName, first *Handler, more []*Handler) *Handler {
	if first == nil {
		panic("observable: nil handler")
	}
	for _, handler := range more {
		if handler == nil {
			panic("observable: nil handler")
		}
	}

	wrapped := make([]*Handler, 0, 1+len(more))
	wrapped = append(wrapped, first)
	wrapped = append(wrapped, more...)

	var wrapper *Handler
	wrapper = NewNamedHandler("once("+first.Name()+")", func(ctx context.Context, call Call) error {
		// Another handler earlier in the same pass may have removed the
		// wrapper already; the desired state then holds and the not-found
		// result is irrelevant.
		_ = r.Off(event, wrapper)

		for _, handler := range wrapped {
			if err := handler.Invoke(ctx, call); err != nil {
				return err
			}
		}

		return nil
	})

	return wrapper
}
