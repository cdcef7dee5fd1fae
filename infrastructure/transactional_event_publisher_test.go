package infrastructure

import (
	"errors"
	"testing"

	"bicho/domain/events"

	"github.com/stretchr/testify/assert"
)

type capturingPublisher struct {
	published []events.Event
	err       error
}

func (p *capturingPublisher) Publish(event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func TestTransactionalPublisher_HoldsUntilFlush(t *testing.T) {
	real := &capturingPublisher{}
	publisher := NewTransactionalEventPublisher(real)

	assert.NoError(t, publisher.Publish(events.BonusGrantedEvent{EntryID: 1, UserID: 100}))
	assert.NoError(t, publisher.Publish(events.DrawSettledEvent{DrawID: 7}))

	// Nothing reaches the real publisher before commit.
	assert.Empty(t, real.published)

	publisher.Flush()
	assert.Len(t, real.published, 2)

	// A second flush does not replay.
	publisher.Flush()
	assert.Len(t, real.published, 2)
}

func TestTransactionalPublisher_DiscardDropsPending(t *testing.T) {
	real := &capturingPublisher{}
	publisher := NewTransactionalEventPublisher(real)

	assert.NoError(t, publisher.Publish(events.BonusExpiredEvent{EntryID: 1}))
	publisher.Discard()
	publisher.Flush()

	assert.Empty(t, real.published)
}

func TestTransactionalPublisher_FlushContinuesPastFailures(t *testing.T) {
	real := &capturingPublisher{err: errors.New("nats down")}
	publisher := NewTransactionalEventPublisher(real)

	assert.NoError(t, publisher.Publish(events.DrawSettledEvent{DrawID: 7}))
	publisher.Flush()

	// The failed event is dropped, not retried on the next flush.
	real.err = nil
	publisher.Flush()
	assert.Empty(t, real.published)
}
