package utils

import (
	"context"
	"errors"
	"testing"

	"bicho/domain/entities"
	"bicho/domain/events"
	"bicho/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func payoutHistory() *entities.BalanceHistory {
	return &entities.BalanceHistory{
		UserID:          100,
		BalanceBefore:   5000,
		BalanceAfter:    26000,
		ChangeAmount:    21000,
		TransactionType: entities.TransactionTypeWagerPayout,
	}
}

func TestRecordBalanceChange(t *testing.T) {
	ctx := context.Background()
	historyRepo := new(testhelpers.MockBalanceHistoryRepository)
	publisher := new(testhelpers.MockEventPublisher)

	history := payoutHistory()
	historyRepo.On("Record", ctx, history).Return(nil)
	publisher.On("Publish", mock.MatchedBy(func(e events.BalanceChangeEvent) bool {
		return e.UserID == 100 && e.ChangeAmount == 21000 && e.NewBalance == 26000
	})).Return(nil)

	err := RecordBalanceChange(ctx, historyRepo, publisher, history)
	require.NoError(t, err)

	historyRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRecordBalanceChange_HistoryFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	historyRepo := new(testhelpers.MockBalanceHistoryRepository)
	publisher := new(testhelpers.MockEventPublisher)

	history := payoutHistory()
	historyRepo.On("Record", ctx, history).Return(errors.New("db down"))

	err := RecordBalanceChange(ctx, historyRepo, publisher, history)
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestRecordBalanceChange_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	historyRepo := new(testhelpers.MockBalanceHistoryRepository)
	publisher := new(testhelpers.MockEventPublisher)

	history := payoutHistory()
	historyRepo.On("Record", ctx, history).Return(nil)
	publisher.On("Publish", mock.Anything).Return(errors.New("nats down"))

	// The history row is the source of truth; a lost event is reconciled
	// elsewhere, not by failing the balance change.
	err := RecordBalanceChange(ctx, historyRepo, publisher, history)
	assert.NoError(t, err)
}
