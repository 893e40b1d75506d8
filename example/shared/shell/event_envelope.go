package shell

import (
	"encoding/json"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/timofurrer/observable/example/shared/core"
)

// ErrMappingToEnvelopeFailed is returned when envelope construction or serialization fails.
var ErrMappingToEnvelopeFailed = errors.New("mapping to event envelope failed")

// ErrMappingFromEnvelopeFailed is returned when envelope deserialization fails.
var ErrMappingFromEnvelopeFailed = errors.New("mapping from event envelope failed")

// EventEnvelopes is a slice of EventEnvelope instances.
type EventEnvelopes = []EventEnvelope

// EventEnvelope combines a serialized domain event with its metadata.
type EventEnvelope struct {
	EventType     core.EventTypeString
	OccurredAt    core.OccurredAtTS
	PayloadJSON   json.RawMessage
	EventMetadata EventMetadata
}

// BuildEventEnvelope creates a new EventEnvelope from a domain event and metadata.
func BuildEventEnvelope(event core.DomainEvent, metadata EventMetadata) (EventEnvelope, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return EventEnvelope{}, errors.Join(ErrMappingToEnvelopeFailed, err)
	}

	envelope := EventEnvelope{
		EventType:     event.IsEventType(),
		OccurredAt:    event.HasOccurredAt(),
		PayloadJSON:   payloadJSON,
		EventMetadata: metadata,
	}

	return envelope, nil
}

// ToJSON serializes the envelope.
func (e EventEnvelope) ToJSON() ([]byte, error) {
	envelopeJSON, err := jsoniter.ConfigFastest.Marshal(e)
	if err != nil {
		return nil, errors.Join(ErrMappingToEnvelopeFailed, err)
	}

	return envelopeJSON, nil
}

// EnvelopeFromJSON deserializes an envelope.
func EnvelopeFromJSON(envelopeJSON []byte) (EventEnvelope, error) {
	envelope := new(EventEnvelope)

	err := jsoniter.ConfigFastest.Unmarshal(envelopeJSON, envelope)
	if err != nil {
		return EventEnvelope{}, errors.Join(ErrMappingFromEnvelopeFailed, err)
	}

	return *envelope, nil
}
