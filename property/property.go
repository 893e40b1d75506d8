// Package property layers event dispatch around property-style access to a
// value. An Observed wraps author-written get/set/delete accessors and
// triggers paired before/after events on a registry around every access, so
// observers can watch reads, writes, and deletions of a value without the
// owning type wiring each dispatch by hand.
package property

import (
	"context"

	"github.com/timofurrer/observable"
)

// Accessors carries the underlying access functions of a property. Any
// subset may be nil; accesses of a kind whose function is nil fail with an
// AccessNotSupportedError without dispatching any events.
type Accessors[T any] struct {
	Get func(ctx context.Context) (T, error)
	Set func(ctx context.Context, value T) error
	Del func(ctx context.Context) error
}

// Observed is a property whose accesses dispatch events. Around every access
// it triggers a before event and an after event on the resolved registry,
// named after the access kind and the property:
//
//	before_get_<n>          after_get_<n> (with the value)
//	before_set_<n> (with v) after_set_<n> (with v)
//	before_del_<n>          after_del_<n>
//
// where <n> is the configured event override, or the property name when no
// override is set.
type Observed[T any] struct {
	name      string
	event     string
	accessors Accessors[T]
	registry  *observable.Registry
	source    RegistrySource
}

// New creates an observed property. The name must be non-empty and a
// registry must be reachable through the options, either directly via
// WithRegistry or through a WithSource locator.
func New[T any](name string, acc Accessors[T], opts ...Option) (*Observed[T], error) {
	if name == "" {
		return nil, ErrEmptyPropertyName
	}

	var s settings

	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, err
		}
	}

	if s.registry == nil && s.source == nil {
		return nil, ErrNoRegistry
	}

	return &Observed[T]{
		name:      name,
		event:     s.event,
		accessors: acc,
		registry:  s.registry,
		source:    s.source,
	}, nil
}

// Get reads the property. It dispatches the before-get event without
// arguments, runs the Get accessor, dispatches the after-get event with the
// value, and returns the value. A before-event handler error or accessor
// error aborts the sequence. When an after-get handler fails, the read has
// already happened, so the value is returned alongside the error.
func (o *Observed[T]) Get(ctx context.Context) (T, error) {
	var zero T

	if o.accessors.Get == nil {
		return zero, &AccessNotSupportedError{Property: o.name, Access: AccessGet}
	}

	registry, err := o.resolveRegistry()
	if err != nil {
		return zero, err
	}

	if _, err := registry.Trigger(ctx, BeforeEventName(AccessGet, o.EventName())); err != nil {
		return zero, err
	}

	value, err := o.accessors.Get(ctx)
	if err != nil {
		return zero, err
	}

	if _, err := registry.Trigger(ctx, AfterEventName(AccessGet, o.EventName()), value); err != nil {
		return value, err
	}

	return value, nil
}

// Set writes the property. It dispatches the before-set event with the
// value, runs the Set accessor, and dispatches the after-set event with the
// value. A before-event handler error or accessor error aborts the sequence;
// a failing after-set handler propagates after the write has happened.
func (o *Observed[T]) Set(ctx context.Context, value T) error {
	if o.accessors.Set == nil {
		return &AccessNotSupportedError{Property: o.name, Access: AccessSet}
	}

	registry, err := o.resolveRegistry()
	if err != nil {
		return err
	}

	if _, err := registry.Trigger(ctx, BeforeEventName(AccessSet, o.EventName()), value); err != nil {
		return err
	}

	if err := o.accessors.Set(ctx, value); err != nil {
		return err
	}

	_, err = registry.Trigger(ctx, AfterEventName(AccessSet, o.EventName()), value)

	return err
}

// Delete removes the property's value. It dispatches the before-del event,
// runs the Del accessor, and dispatches the after-del event, both events
// without arguments. A before-event handler error or accessor error aborts
// the sequence; a failing after-del handler propagates after the deletion
// has happened.
func (o *Observed[T]) Delete(ctx context.Context) error {
	if o.accessors.Del == nil {
		return &AccessNotSupportedError{Property: o.name, Access: AccessDelete}
	}

	registry, err := o.resolveRegistry()
	if err != nil {
		return err
	}

	if _, err := registry.Trigger(ctx, BeforeEventName(AccessDelete, o.EventName())); err != nil {
		return err
	}

	if err := o.accessors.Del(ctx); err != nil {
		return err
	}

	_, err = registry.Trigger(ctx, AfterEventName(AccessDelete, o.EventName()))

	return err
}

// Name returns the property name.
func (o *Observed[T]) Name() string {
	return o.name
}

// EventName returns the segment used in dispatched event names: the
// configured override, or the property name when no override is set.
func (o *Observed[T]) EventName() string {
	if o.event != "" {
		return o.event
	}

	return o.name
}

// resolveRegistry picks the registry for one access. A fixed registry wins;
// otherwise the source is consulted, which may legitimately return a
// different registry than it did for the previous access.
func (o *Observed[T]) resolveRegistry() (*observable.Registry, error) {
	if o.registry != nil {
		return o.registry, nil
	}

	if registry := o.source.EventRegistry(); registry != nil {
		return registry, nil
	}

	return nil, ErrNoRegistry
}

// BeforeEventName builds the event name dispatched before an access of the
// given kind on the given property, for example before_set_temperature.
func BeforeEventName(access Access, name string) observable.EventName {
	return "before_" + string(access) + "_" + name
}

// AfterEventName builds the event name dispatched after an access of the
// given kind on the given property, for example after_set_temperature.
func AfterEventName(access Access, name string) observable.EventName {
	return "after_" + string(access) + "_" + name
}
