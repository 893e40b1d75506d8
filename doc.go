// Package observable provides an in-process publish/subscribe registry:
// callers register named event handlers, later trigger an event by name with
// arbitrary arguments, and the registry synchronously invokes every handler
// registered for that name, in registration order.
//
// The registry supports:
//   - Duplicate registrations (one invocation per occurrence)
//   - One-shot handlers that unregister themselves before their first run
//   - Removal of a whole event or of every occurrence of specific handlers
//   - Snapshot dispatch, so handlers may mutate the registry mid-pass
//   - Introspection of registered events and handlers
//
// Key types:
//   - Registry: owns the event name to handler sequence mapping
//   - Handler: opaque, equality-comparable reference to a registered callable
//   - Call: the positional and named arguments forwarded to handlers
//
// Common usage pattern:
//
//	reg, err := observable.NewRegistry()
//	if err != nil {
//		// handle error
//	}
//
//	greeted := observable.NewHandler(func(ctx context.Context, call observable.Call) error {
//		fmt.Println("hello", call.Args[0])
//		return nil
//	})
//	reg.On("greet", greeted)
//
//	handled, err := reg.Trigger(ctx, "greet", "world")
//	// handled == true, the handler saw "world"
//
//	err = reg.Off("greet", greeted)
//	handled, err = reg.Trigger(ctx, "greet", "world")
//	// handled == false, nothing ran
//
// Dispatch never fails on an unknown event; it reports false. Off is the
// strict counterpart: removing from an unknown event returns
// *EventNotFoundError and removing an unregistered handler returns
// *HandlerNotFoundError.
//
// Logging, metrics, and tracing are optional and wired through functional
// options (WithLogger, WithContextualLogger, WithMetrics, WithTracing) using
// dependency-free interfaces; the oteladapters subpackage bridges them to
// OpenTelemetry. The property subpackage dispatches registry events around
// property get/set/delete access.
package observable
