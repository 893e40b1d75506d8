package core

import (
	"time"

	"github.com/google/uuid"
)

// ReadingRecordedEventType is the event type identifier.
const ReadingRecordedEventType = "ReadingRecorded"

// ReadingRecorded represents when a sensor reading is recorded by the hub.
type ReadingRecorded struct {
	EventType  EventTypeString
	ReadingID  ReadingIDString
	SensorID   SensorIDString
	Value      float64
	Unit       string
	OccurredAt OccurredAtTS
}

// BuildReadingRecorded creates a new ReadingRecorded event.
func BuildReadingRecorded(
	readingID uuid.UUID,
	sensorID uuid.UUID,
	value float64,
	unit string,
	occurredAt time.Time,
) ReadingRecorded {

	event := ReadingRecorded{
		EventType:  ReadingRecordedEventType,
		ReadingID:  readingID.String(),
		SensorID:   sensorID.String(),
		Value:      value,
		Unit:       unit,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ReadingRecorded) IsEventType() string {
	return ReadingRecordedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReadingRecorded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReadingRecorded) IsErrorEvent() bool {
	return false
}
