package core

import (
	"time"

	"github.com/google/uuid"
)

// ThresholdExceededEventType is the event type identifier.
const ThresholdExceededEventType = "ThresholdExceeded"

// ThresholdExceeded represents when a recorded reading crossed the limit
// configured for its sensor.
type ThresholdExceeded struct {
	EventType  EventTypeString
	SensorID   SensorIDString
	Value      float64
	Limit      float64
	OccurredAt OccurredAtTS
}

// BuildThresholdExceeded creates a new ThresholdExceeded event.
func BuildThresholdExceeded(
	sensorID uuid.UUID,
	value float64,
	limit float64,
	occurredAt time.Time,
) ThresholdExceeded {

	event := ThresholdExceeded{
		EventType:  ThresholdExceededEventType,
		SensorID:   sensorID.String(),
		Value:      value,
		Limit:      limit,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ThresholdExceeded) IsEventType() string {
	return ThresholdExceededEventType
}

// HasOccurredAt returns when this event occurred.
func (e ThresholdExceeded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failure condition.
func (e ThresholdExceeded) IsErrorEvent() bool {
	return true
}
