// Package shell connects the sensor-hub domain events to the event registry:
// topic names for dispatch, envelopes that carry a serialized event together
// with its metadata, and an audit trail that records dispatched events as
// JSON lines.
//
// This package implements the "imperative shell" pattern, handling the
// translation between the functional core (domain events) and the outside
// world (registry topics, serialized envelopes, audit output).
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'infrastructure' layer.
package shell
