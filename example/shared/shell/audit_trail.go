package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/timofurrer/observable"
	"github.com/timofurrer/observable/example/shared/core"
)

// ErrAuditPayloadNotADomainEvent is returned when a dispatch on an audited
// topic carries an argument that is not a domain event.
var ErrAuditPayloadNotADomainEvent = errors.New("audit payload is not a domain event")

// ErrAuditWriteFailed is returned when the audit line cannot be written.
var ErrAuditWriteFailed = errors.New("audit trail write failed")

// AuditTrail records dispatched domain events. It subscribes one handler to
// the given registry topics and appends one JSON-serialized envelope per
// event, one line each, to its writer. Every line gets fresh metadata so
// audit entries stay distinguishable even for identical events.
//
// The writer is guarded by a mutex since dispatches may run concurrently.
type AuditTrail struct {
	mu      sync.Mutex
	out     io.Writer
	handler *observable.Handler
}

// NewAuditTrail creates an AuditTrail writing to out.
func NewAuditTrail(out io.Writer) *AuditTrail {
	trail := &AuditTrail{out: out}
	trail.handler = observable.NewNamedHandler("audit-trail", trail.record)

	return trail
}

// Subscribe registers the trail's recording handler on each topic.
func (a *AuditTrail) Subscribe(registry *observable.Registry, topics ...observable.EventName) {
	for _, topic := range topics {
		registry.On(topic, a.handler)
	}
}

// Unsubscribe removes the trail's recording handler from each topic.
func (a *AuditTrail) Unsubscribe(registry *observable.Registry, topics ...observable.EventName) error {
	for _, topic := range topics {
		if err := registry.Off(topic, a.handler); err != nil {
			return err
		}
	}

	return nil
}

// record wraps every domain event argument of the dispatch into an envelope
// and writes it as one JSON line. A non-event argument fails the dispatch so
// misuse of an audited topic does not go unnoticed.
func (a *AuditTrail) record(_ context.Context, call observable.Call) error {
	for _, arg := range call.Args {
		event, ok := arg.(core.DomainEvent)
		if !ok {
			return errors.Join(ErrAuditPayloadNotADomainEvent, fmt.Errorf("topic %q carried %T", call.Event, arg))
		}

		envelope, err := BuildEventEnvelope(event, FreshEventMetadata())
		if err != nil {
			return err
		}

		line, err := envelope.ToJSON()
		if err != nil {
			return err
		}

		if err := a.writeLine(line); err != nil {
			return err
		}
	}

	return nil
}

func (a *AuditTrail) writeLine(line []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.out.Write(append(line, '\n')); err != nil {
		return errors.Join(ErrAuditWriteFailed, err)
	}

	return nil
}
