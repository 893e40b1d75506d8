package shell

import (
	"errors"
	"fmt"

	"github.com/timofurrer/observable"
	"github.com/timofurrer/observable/example/shared/core"
)

// ErrNoTopicForEventType is returned when an event type has no registry topic.
var ErrNoTopicForEventType = errors.New("no topic for event type")

// Registry topics the sensor hub dispatches domain events on.
const (
	TopicSensorRegistered  observable.EventName = "sensor.registered"
	TopicReadingRecorded   observable.EventName = "reading.recorded"
	TopicThresholdExceeded observable.EventName = "threshold.exceeded"
	TopicCalibrationDue    observable.EventName = "calibration.due"
)

// TopicFor maps a domain event to the registry topic it is dispatched on.
func TopicFor(event core.DomainEvent) (observable.EventName, error) {
	switch event.IsEventType() {
	case core.SensorRegisteredEventType:
		return TopicSensorRegistered, nil

	case core.ReadingRecordedEventType:
		return TopicReadingRecorded, nil

	case core.ThresholdExceededEventType:
		return TopicThresholdExceeded, nil
	}

	return "", errors.Join(ErrNoTopicForEventType, fmt.Errorf("event type: %s", event.IsEventType()))
}
