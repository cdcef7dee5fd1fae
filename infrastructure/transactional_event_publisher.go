package infrastructure

import (
	"bicho/domain/events"
	"bicho/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// TransactionalEventPublisher holds events until flush, then forwards
// them to the real publisher. A unit of work flushes after commit and
// discards on rollback so events never describe state that was never
// persisted.
type TransactionalEventPublisher struct {
	realPublisher interfaces.EventPublisher
	pending       []events.Event
}

// NewTransactionalEventPublisher creates a new transactional publisher
func NewTransactionalEventPublisher(realPublisher interfaces.EventPublisher) *TransactionalEventPublisher {
	return &TransactionalEventPublisher{
		realPublisher: realPublisher,
		pending:       make([]events.Event, 0),
	}
}

// Publish stores an event in the pending queue without forwarding it
func (p *TransactionalEventPublisher) Publish(event events.Event) error {
	p.pending = append(p.pending, event)
	return nil
}

// Flush forwards all pending events. Called after a successful commit.
func (p *TransactionalEventPublisher) Flush() {
	for _, event := range p.pending {
		if err := p.realPublisher.Publish(event); err != nil {
			// Continue with the rest; a partial failure must not block
			// the remaining events.
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to publish event during flush")
		}
	}
	p.pending = p.pending[:0]
}

// Discard clears all pending events without publishing them
func (p *TransactionalEventPublisher) Discard() {
	if len(p.pending) > 0 {
		log.WithField("discarded", len(p.pending)).Debug("Discarding pending events after rollback")
	}
	p.pending = p.pending[:0]
}
