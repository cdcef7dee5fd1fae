package utils

import (
	"context"
	"fmt"

	"bicho/domain/entities"
	"bicho/domain/events"
	"bicho/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// RecordBalanceChange records a balance history entry and emits the
// balance change event. This is the single entry point for all real
// balance changes in the system.
func RecordBalanceChange(ctx context.Context, balanceHistoryRepo interfaces.BalanceHistoryRepository, eventPublisher interfaces.EventPublisher, history *entities.BalanceHistory) error {
	if err := balanceHistoryRepo.Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	event := events.BalanceChangeEvent{
		UserID:          history.UserID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		ChangeAmount:    history.ChangeAmount,
		TransactionType: history.TransactionType.String(),
	}
	log.WithFields(log.Fields{
		"userID":          event.UserID,
		"changeAmount":    event.ChangeAmount,
		"transactionType": event.TransactionType,
	}).Debug("Publishing BalanceChangeEvent")
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	return nil
}
