package infrastructure

import (
	"bicho/domain/events"
)

// NoopEventPublisher is an event publisher that does nothing.
// Used when no message bus is configured, and in tests.
type NoopEventPublisher struct{}

// NewNoopEventPublisher creates a new no-op event publisher
func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{}
}

// Publish does nothing with the event
func (n *NoopEventPublisher) Publish(event events.Event) error {
	return nil
}
