package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// NATSClient wraps the NATS connection used to fan settlement and bonus
// events out to the notification and back-office services.
type NATSClient struct {
	servers              string
	nc                   *nats.Conn
	reconnectDelay       time.Duration
	maxReconnectAttempts int
}

// NewNATSClient creates a new NATS client
func NewNATSClient(servers string) *NATSClient {
	return &NATSClient{
		servers:              servers,
		reconnectDelay:       2 * time.Second,
		maxReconnectAttempts: 10,
	}
}

// Connect establishes a connection to the NATS server
func (c *NATSClient) Connect(ctx context.Context) error {
	opts := []nats.Option{
		nats.Name("bicho-core"),
		nats.MaxReconnects(c.maxReconnectAttempts),
		nats.ReconnectWait(c.reconnectDelay),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(c.servers, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	c.nc = nc

	log.WithField("servers", c.servers).Info("Connected to NATS")
	return nil
}

// Publish sends a message to the specified subject
func (c *NATSClient) Publish(ctx context.Context, subject string, data []byte) error {
	if c.nc == nil {
		return fmt.Errorf("not connected to NATS")
	}
	if err := c.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	return nil
}

// Subscribe registers a handler for messages on the specified subject
func (c *NATSClient) Subscribe(subject string, handler func([]byte) error) error {
	if c.nc == nil {
		return fmt.Errorf("not connected to NATS")
	}
	_, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			log.WithFields(log.Fields{
				"subject": subject,
				"error":   err,
			}).Error("Failed to process message")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}
	log.WithField("subject", subject).Info("Subscribed to NATS subject")
	return nil
}

// Close drains and closes the NATS connection
func (c *NATSClient) Close() {
	if c.nc != nil {
		if err := c.nc.Drain(); err != nil {
			log.WithError(err).Warn("Failed to drain NATS connection")
		}
		c.nc = nil
	}
}
