package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bicho/domain/entities"

	log "github.com/sirupsen/logrus"
)

// DrawClosedSubject is the message bus subject carrying published draw
// results from the admin service.
const DrawClosedSubject = "bicho.draws.closed"

// Subscriber is the message bus surface the consumer needs.
type Subscriber interface {
	Subscribe(subject string, handler func([]byte) error) error
}

// DrawClosedMessage is the wire shape of a published draw result.
type DrawClosedMessage struct {
	DrawID  int64 `json:"draw_id"`
	Results []struct {
		AnimalGroup *int    `json:"animal_group"`
		Milhar      *string `json:"milhar"`
	} `json:"results"`
}

// DrawClosedConsumer triggers settlement when the admin service
// publishes a draw's results on the message bus.
type DrawClosedConsumer struct {
	settlementHandler *SettlementHandler
}

// NewDrawClosedConsumer creates a new draw closed consumer
func NewDrawClosedConsumer(settlementHandler *SettlementHandler) *DrawClosedConsumer {
	return &DrawClosedConsumer{settlementHandler: settlementHandler}
}

// Start subscribes to the draw closed subject
func (c *DrawClosedConsumer) Start(ctx context.Context, subscriber Subscriber) error {
	return subscriber.Subscribe(DrawClosedSubject, func(data []byte) error {
		return c.handleMessage(ctx, data)
	})
}

func (c *DrawClosedConsumer) handleMessage(ctx context.Context, data []byte) error {
	var msg DrawClosedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("failed to decode draw closed message: %w", err)
	}

	results := make([]entities.PremioResult, 0, len(msg.Results))
	for _, r := range msg.Results {
		results = append(results, entities.PremioResult{
			AnimalGroup: r.AnimalGroup,
			Milhar:      r.Milhar,
		})
	}

	report, err := c.settlementHandler.SettleDraw(ctx, msg.DrawID, results)
	if errors.Is(err, entities.ErrDrawAlreadySettled) {
		// Redelivery of a settled draw is expected; nothing to do.
		log.WithField("drawID", msg.DrawID).Info("Draw already settled, ignoring")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to settle draw %d: %w", msg.DrawID, err)
	}

	log.WithFields(log.Fields{
		"drawID":    report.DrawID,
		"processed": report.WagersProcessed,
		"won":       report.WagersWon,
		"paidOut":   report.TotalPaidOut,
	}).Info("Draw settled from message bus trigger")
	return nil
}
