package property

import (
	"github.com/timofurrer/observable"
)

// RegistrySource locates the registry a property dispatches through. It is
// re-consulted on every access, so the source may swap registries over time.
//
// Two shapes are common: a type with a hand-written EventRegistry method
// pointing at one of its fields, and a type that embeds *observable.Registry
// and thereby is its own source.
type RegistrySource interface {
	EventRegistry() *observable.Registry
}

// Option defines a functional option for configuring an observed property.
type Option func(*settings) error

// settings collects the option values before New binds them to a typed
// property. Keeping it untyped lets the options stay free of the property's
// type parameter.
type settings struct {
	registry *observable.Registry
	source   RegistrySource
	event    string
}

// WithRegistry binds the property to a fixed registry. When both a registry
// and a source are configured, the registry wins.
func WithRegistry(registry *observable.Registry) Option {
	return func(s *settings) error {
		if registry == nil {
			return ErrNilRegistrySupplied
		}

		s.registry = registry

		return nil
	}
}

// WithSource binds the property to a registry locator that is re-resolved on
// every access.
func WithSource(source RegistrySource) Option {
	return func(s *settings) error {
		if source == nil {
			return ErrNilSourceSupplied
		}

		s.source = source

		return nil
	}
}

// WithEvent overrides the event-name segment derived from the property name,
// so a property "temperature" can dispatch before_get_reading instead of
// before_get_temperature.
func WithEvent(event string) Option {
	return func(s *settings) error {
		if event == "" {
			return ErrEmptyEventOverride
		}

		s.event = event

		return nil
	}
}
