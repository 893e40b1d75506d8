package core

import (
	"time"
)

// Alias types and small helpers instead of full value objects keep the demo code lean ...

// EventTypeString identifies the concrete event type of a domain event
type EventTypeString = string

// SensorIDString represents a sensor identifier
type SensorIDString = string

// ReadingIDString represents a reading identifier
type ReadingIDString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
