package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/timofurrer/observable/example/shared/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple EventEnvelopes back to DomainEvents.
func DomainEventsFrom(envelopes EventEnvelopes) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0)

	for _, envelope := range envelopes {
		domainEvent, err := DomainEventFrom(envelope)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts an EventEnvelope back to its typed DomainEvent.
func DomainEventFrom(envelope EventEnvelope) (core.DomainEvent, error) {
	switch envelope.EventType {
	case core.SensorRegisteredEventType:
		return unmarshalSensorRegistered(envelope.PayloadJSON)

	case core.ReadingRecordedEventType:
		return unmarshalReadingRecorded(envelope.PayloadJSON)

	case core.ThresholdExceededEventType:
		return unmarshalThresholdExceeded(envelope.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalSensorRegistered(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.SensorRegistered)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.SensorRegistered{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return core.SensorRegistered{
		EventType:  payload.EventType,
		SensorID:   payload.SensorID,
		Location:   payload.Location,
		OccurredAt: payload.OccurredAt,
	}, nil
}

func unmarshalReadingRecorded(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.ReadingRecorded)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.ReadingRecorded{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return core.ReadingRecorded{
		EventType:  payload.EventType,
		ReadingID:  payload.ReadingID,
		SensorID:   payload.SensorID,
		Value:      payload.Value,
		Unit:       payload.Unit,
		OccurredAt: payload.OccurredAt,
	}, nil
}

func unmarshalThresholdExceeded(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.ThresholdExceeded)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.ThresholdExceeded{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return core.ThresholdExceeded{
		EventType:  payload.EventType,
		SensorID:   payload.SensorID,
		Value:      payload.Value,
		Limit:      payload.Limit,
		OccurredAt: payload.OccurredAt,
	}, nil
}
