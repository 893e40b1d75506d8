package shell

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timofurrer/observable/example/shared/core"
)

func Test_EventEnvelope_RoundTripPreservesMetadataAndPayload(t *testing.T) {
	event := core.BuildSensorRegistered(uuid.New(), "greenhouse", time.Now())
	metadata := BuildEventMetadata(uuid.New(), uuid.New(), uuid.New())

	envelope, err := BuildEventEnvelope(event, metadata)
	require.NoError(t, err)

	envelopeJSON, err := envelope.ToJSON()
	require.NoError(t, err)

	decoded, err := EnvelopeFromJSON(envelopeJSON)
	require.NoError(t, err)
	assert.Equal(t, core.SensorRegisteredEventType, decoded.EventType)
	assert.Equal(t, metadata, decoded.EventMetadata)

	domainEvent, err := DomainEventFrom(decoded)
	require.NoError(t, err)
	assert.Equal(t, event, domainEvent)
}

func Test_EnvelopeFromJSON_RejectsMalformedInput(t *testing.T) {
	_, err := EnvelopeFromJSON([]byte("{not json"))

	assert.ErrorIs(t, err, ErrMappingFromEnvelopeFailed)
}

func Test_DomainEventFrom_RejectsUnknownEventTypes(t *testing.T) {
	envelope := EventEnvelope{EventType: "SensorDecommissioned"}

	domainEvent, err := DomainEventFrom(envelope)

	assert.Nil(t, domainEvent)
	assert.ErrorIs(t, err, ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventsFrom_ConvertsAllEnvelopes(t *testing.T) {
	sensorID := uuid.New()
	registered := core.BuildSensorRegistered(sensorID, "greenhouse", time.Now())
	exceeded := core.BuildThresholdExceeded(sensorID, 31.2, 30.0, time.Now())

	envelopes := make(EventEnvelopes, 0)
	for _, event := range core.DomainEvents{registered, exceeded} {
		envelope, err := BuildEventEnvelope(event, FreshEventMetadata())
		require.NoError(t, err)

		envelopes = append(envelopes, envelope)
	}

	domainEvents, err := DomainEventsFrom(envelopes)

	require.NoError(t, err)
	require.Len(t, domainEvents, 2)
	assert.Equal(t, registered, domainEvents[0])
	assert.Equal(t, exceeded, domainEvents[1])
	assert.False(t, domainEvents[0].IsErrorEvent())
	assert.True(t, domainEvents[1].IsErrorEvent())
}

func Test_TopicFor_MapsEveryEventType(t *testing.T) {
	sensorID := uuid.New()

	testCases := []struct {
		name      string
		event     core.DomainEvent
		wantTopic string
	}{
		{
			name:      "sensor_registered",
			event:     core.BuildSensorRegistered(sensorID, "greenhouse", time.Now()),
			wantTopic: TopicSensorRegistered,
		},
		{
			name:      "reading_recorded",
			event:     core.BuildReadingRecorded(uuid.New(), sensorID, 21.5, "celsius", time.Now()),
			wantTopic: TopicReadingRecorded,
		},
		{
			name:      "threshold_exceeded",
			event:     core.BuildThresholdExceeded(sensorID, 31.2, 30.0, time.Now()),
			wantTopic: TopicThresholdExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			topic, err := TopicFor(tc.event)

			assert.NoError(t, err)
			assert.Equal(t, tc.wantTopic, topic)
		})
	}
}

func Test_TopicFor_RejectsUnmappedEventTypes(t *testing.T) {
	_, err := TopicFor(staleEvent{})

	assert.ErrorIs(t, err, ErrNoTopicForEventType)
}

// staleEvent is a domain event no topic is mapped for.
type staleEvent struct{}

func (e staleEvent) IsEventType() string {
	return "StaleEvent"
}

func (e staleEvent) HasOccurredAt() time.Time {
	return time.Time{}
}

func (e staleEvent) IsErrorEvent() bool {
	return false
}
