package core

import (
	"time"

	"github.com/google/uuid"
)

// SensorRegisteredEventType is the event type identifier.
const SensorRegisteredEventType = "SensorRegistered"

// SensorRegistered represents when a new sensor is registered with the hub.
type SensorRegistered struct {
	EventType  EventTypeString
	SensorID   SensorIDString
	Location   string
	OccurredAt OccurredAtTS
}

// BuildSensorRegistered creates a new SensorRegistered event.
func BuildSensorRegistered(
	sensorID uuid.UUID,
	location string,
	occurredAt time.Time,
) SensorRegistered {

	event := SensorRegistered{
		EventType:  SensorRegisteredEventType,
		SensorID:   sensorID.String(),
		Location:   location,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e SensorRegistered) IsEventType() string {
	return SensorRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e SensorRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e SensorRegistered) IsErrorEvent() bool {
	return false
}
