// Package core contains domain events for the example:
// a hub collecting readings from environmental sensors.
//
// Events represent meaningful occurrences like SensorRegistered and
// ThresholdExceeded rather than generic create/update operations. All of
// them implement the DomainEvent interface so the shell layer can wrap any
// of them into envelopes without knowing the concrete types.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'domain' layer.
package core
