package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bicho/domain/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// subjectPrefix namespaces every event subject published by this service.
const subjectPrefix = "bicho.events"

// eventEnvelope wraps an event payload with delivery metadata.
type eventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher implements the EventPublisher interface using NATS
type NATSEventPublisher struct {
	natsClient *NATSClient
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(natsClient *NATSClient) *NATSEventPublisher {
	return &NATSEventPublisher{natsClient: natsClient}
}

// Publish publishes an event to NATS using the event type as subject
func (p *NATSEventPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := eventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     time.Now().UTC(),
		SourceService: "bicho-core",
		Payload:       payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", subjectPrefix, event.Type())
	if err := p.natsClient.Publish(context.Background(), subject, data); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"subject":   subject,
	}).Debug("Published event to NATS")
	return nil
}
