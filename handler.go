package observable

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
)

// Call carries the dispatch-time arguments delivered to every handler of an
// event: the event name that was triggered, the positional arguments, and the
// named arguments. The registry is agnostic to what a handler expects; it
// forwards the call unchanged to every handler in the pass.
type Call struct {
	Event EventName
	Args  []any
	Named map[string]any
}

// HandlerFunc is the fixed signature shared by all handlers. Positional
// values arrive in call.Args, named values in call.Named. A non-nil error
// aborts the remaining handlers of the current dispatch pass and is returned
// verbatim to the trigger caller.
type HandlerFunc func(ctx context.Context, call Call) error

// Handler is an opaque, equality-comparable reference to a registered
// callable. Identity is pointer identity: wrapping the same HandlerFunc twice
// yields two distinct handlers, while registering the same *Handler twice
// registers the same handler twice. This keeps removal exact even for
// closures created from the same function literal, which share a code
// address and are not distinguishable by it.
type Handler struct {
	fn   HandlerFunc
	name string
}

// NewHandler wraps fn into a Handler whose display name is derived from the
// function symbol. It panics when fn is nil, following the net/http
// convention for handler registration.
func NewHandler(fn HandlerFunc) *Handler {
	if fn == nil {
		panic("observable: nil HandlerFunc")
	}

	return &Handler{fn: fn, name: funcName(fn)}
}

// NewNamedHandler wraps fn into a Handler with an explicit display name.
// The name shows up in error messages and log attributes; it plays no role
// in handler identity. It panics when fn is nil.
func NewNamedHandler(name string, fn HandlerFunc) *Handler {
	if fn == nil {
		panic("observable: nil HandlerFunc")
	}

	return &Handler{fn: fn, name: name}
}

// Invoke runs the wrapped function with the given call.
func (h *Handler) Invoke(ctx context.Context, call Call) error {
	return h.fn(ctx, call)
}

// Name returns the handler's display name.
func (h *Handler) Name() string {
	return h.name
}

// String returns the display name; it is nil-safe so handlers can be
// formatted in error messages without guards.
func (h *Handler) String() string {
	if h == nil {
		return "<nil>"
	}

	return h.name
}

// RegisterFunc is the curried registration form returned by Registry.OnEvent
// and Registry.OnceEvent: the event name is fixed, the handlers are supplied
// by a later call, and the first handler (or the one-shot wrapper) is
// returned just like the direct forms do.
type RegisterFunc func(first *Handler, more ...*Handler) *Handler

// funcName resolves the symbol name of fn for display purposes only.
func funcName(fn HandlerFunc) string {
	pc := reflect.ValueOf(fn).Pointer()
	if f := runtime.FuncForPC(pc); f != nil {
		return f.Name()
	}

	return fmt.Sprintf("handler@%#x", pc)
}
