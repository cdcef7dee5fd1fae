package services

import (
	"context"
	"testing"
	"time"

	"bicho/domain/entities"
	"bicho/domain/events"
	"bicho/domain/interfaces"
	"bicho/domain/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bonusMocks struct {
	bonusRepo          *testhelpers.MockBonusEntryRepository
	userRepo           *testhelpers.MockUserRepository
	balanceHistoryRepo *testhelpers.MockBalanceHistoryRepository
	eventPublisher     *testhelpers.MockEventPublisher
}

func newBonusMocks() *bonusMocks {
	return &bonusMocks{
		bonusRepo:          new(testhelpers.MockBonusEntryRepository),
		userRepo:           new(testhelpers.MockUserRepository),
		balanceHistoryRepo: new(testhelpers.MockBalanceHistoryRepository),
		eventPublisher:     new(testhelpers.MockEventPublisher),
	}
}

func (m *bonusMocks) service() interfaces.BonusService {
	return NewBonusService(m.bonusRepo, m.userRepo, m.balanceHistoryRepo, m.eventPublisher)
}

func TestGrant_CreatesNewEntry(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	m.bonusRepo.On("GetActiveByUserAndType", ctx, int64(100), entities.BonusTypeSignup).Return(nil, nil)
	m.bonusRepo.On("Create", ctx, mock.MatchedBy(func(e *entities.BonusEntry) bool {
		return e.UserID == 100 &&
			e.Amount == 1000 &&
			e.RemainingAmount == 1000 &&
			e.RolloverTarget == 3000 &&
			e.Status == entities.BonusStatusActive
	})).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	entry, err := m.service().Grant(ctx, 100, entities.BonusTypeSignup, 1000, decimal.NewFromInt(3), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), entry.RolloverTarget)

	m.bonusRepo.AssertExpectations(t)
}

func TestGrant_MergesIntoExistingEntry(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	// Existing entry: 50.00 at 2x, so target 100.00. Topping up 20.00 at
	// the same multiplier accumulates everything on the single row.
	existing := createTestBonusEntry(7, 100)
	m.bonusRepo.On("GetActiveByUserAndType", ctx, int64(100), entities.BonusTypeFirstDeposit).Return(existing, nil)
	m.bonusRepo.On("Update", ctx, existing).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	entry, err := m.service().Grant(ctx, 100, entities.BonusTypeFirstDeposit, 2000, decimal.NewFromInt(2), 30)
	require.NoError(t, err)

	assert.Equal(t, int64(7), entry.ID)
	assert.Equal(t, int64(7000), entry.Amount)
	assert.Equal(t, int64(7000), entry.RemainingAmount)
	assert.Equal(t, int64(14000), entry.RolloverTarget)

	m.bonusRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.eventPublisher.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.BonusGrantedEvent) bool {
		return e.Merged && e.EntryID == 7
	}))
}

func TestGrant_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	_, err := m.service().Grant(ctx, 100, entities.BonusTypeSignup, 0, decimal.NewFromInt(3), 7)
	require.Error(t, err)
	m.bonusRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordWagerActivity_AccruesWithoutCompleting(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	entry := createTestBonusEntry(7, 100)
	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{entry}, nil)
	m.bonusRepo.On("Update", ctx, entry).Return(nil)

	err := m.service().RecordWagerActivity(ctx, 100, 4000)
	require.NoError(t, err)

	assert.Equal(t, int64(4000), entry.RolledAmount)
	assert.Equal(t, entities.BonusStatusActive, entry.Status)
	m.userRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordWagerActivity_CompletesAndReleasesRemaining(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	// Target 100.00, already rolled 90.00: a 10.00 stake completes the
	// entry and releases the full remaining 50.00 exactly once.
	entry := createTestBonusEntry(7, 100)
	entry.RolledAmount = 9000

	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{entry}, nil)
	m.bonusRepo.On("Update", ctx, entry).Return(nil)
	m.userRepo.On("AdjustBalance", ctx, int64(100), int64(5000)).Return(int64(5000), nil).Once()
	m.balanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
		return h.TransactionType == entities.TransactionTypeBonusRelease && h.ChangeAmount == 5000
	})).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	err := m.service().RecordWagerActivity(ctx, 100, 1000)
	require.NoError(t, err)

	assert.Equal(t, entities.BonusStatusCompleted, entry.Status)
	require.NotNil(t, entry.CompletedAt)

	m.userRepo.AssertExpectations(t)
	m.balanceHistoryRepo.AssertExpectations(t)
	m.eventPublisher.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.BonusCompletedEvent) bool {
		return e.EntryID == 7 && e.ReleasedAmount == 5000
	}))
}

func TestRecordWagerActivity_NoActiveEntries(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{}, nil)

	err := m.service().RecordWagerActivity(ctx, 100, 1000)
	require.NoError(t, err)
	m.bonusRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecordWagerActivity_CreditsEarliestExpiringEntry(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	soon := createTestBonusEntry(1, 100, func(e *entities.BonusEntry) {
		e.ExpiresAt = time.Now().Add(24 * time.Hour)
	})
	later := createTestBonusEntry(2, 100)

	// The repository returns entries ordered by soonest expiration.
	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{soon, later}, nil)
	m.bonusRepo.On("Update", ctx, soon).Return(nil)

	err := m.service().RecordWagerActivity(ctx, 100, 500)
	require.NoError(t, err)

	assert.Equal(t, int64(500), soon.RolledAmount)
	assert.Equal(t, int64(0), later.RolledAmount)
}

func TestRecordWagerActivity_SkipsOverdueEntry(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	// The first entry is past its deadline but the sweep has not run yet.
	// The stake must not push it toward a release; the next live entry
	// takes the accrual instead.
	overdue := createTestBonusEntry(1, 100, func(e *entities.BonusEntry) {
		e.ExpiresAt = time.Now().Add(-time.Hour)
		e.RolledAmount = 9500
	})
	live := createTestBonusEntry(2, 100)

	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{overdue, live}, nil)
	m.bonusRepo.On("Update", ctx, live).Return(nil)

	err := m.service().RecordWagerActivity(ctx, 100, 1000)
	require.NoError(t, err)

	assert.Equal(t, int64(9500), overdue.RolledAmount)
	assert.Equal(t, int64(1000), live.RolledAmount)
	m.userRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeductForWager_SpendsEarliestExpiringFirst(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	first := createTestBonusEntry(1, 100, func(e *entities.BonusEntry) {
		e.RemainingAmount = 3000
	})
	second := createTestBonusEntry(2, 100)

	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{first, second}, nil)
	m.bonusRepo.On("Update", ctx, first).Return(nil)
	m.bonusRepo.On("Update", ctx, second).Return(nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	deductions, err := m.service().DeductForWager(ctx, 100, 4000)
	require.NoError(t, err)

	require.Len(t, deductions, 2)
	assert.Equal(t, interfaces.BonusDeduction{EntryID: 1, AmountUsed: 3000}, deductions[0])
	assert.Equal(t, interfaces.BonusDeduction{EntryID: 2, AmountUsed: 1000}, deductions[1])

	// The drained entry completes with nothing to release.
	assert.Equal(t, entities.BonusStatusCompleted, first.Status)
	assert.Equal(t, int64(0), first.RemainingAmount)
	assert.Equal(t, entities.BonusStatusActive, second.Status)
	assert.Equal(t, int64(4000), second.RemainingAmount)

	m.eventPublisher.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.BonusCompletedEvent) bool {
		return e.EntryID == 1 && e.ReleasedAmount == 0
	}))
	m.userRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeductForWager_InsufficientBalanceLeavesEntriesUntouched(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	entry := createTestBonusEntry(1, 100, func(e *entities.BonusEntry) {
		e.RemainingAmount = 3000
	})
	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{entry}, nil)

	deductions, err := m.service().DeductForWager(ctx, 100, 4000)
	assert.ErrorIs(t, err, entities.ErrInsufficientBonusBalance)
	assert.Nil(t, deductions)

	assert.Equal(t, int64(3000), entry.RemainingAmount)
	assert.Equal(t, entities.BonusStatusActive, entry.Status)
	m.bonusRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeductForWager_OverdueEntryNotSpendable(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	// The entry's value is forfeit as of its deadline, even before the
	// sweep marks it expired.
	overdue := createTestBonusEntry(1, 100, func(e *entities.BonusEntry) {
		e.ExpiresAt = time.Now().Add(-time.Hour)
	})
	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{overdue}, nil)

	deductions, err := m.service().DeductForWager(ctx, 100, 1000)
	assert.ErrorIs(t, err, entities.ErrInsufficientBonusBalance)
	assert.Nil(t, deductions)

	assert.Equal(t, int64(5000), overdue.RemainingAmount)
	m.bonusRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetBalance_SumsActiveRemainingAmounts(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	entries := []*entities.BonusEntry{
		createTestBonusEntry(1, 100, func(e *entities.BonusEntry) { e.RemainingAmount = 1500 }),
		createTestBonusEntry(2, 100),
	}
	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return(entries, nil)

	balance, err := m.service().GetBalance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(6500), balance)
}

func TestGetBalance_ExcludesOverdueEntries(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	entries := []*entities.BonusEntry{
		createTestBonusEntry(1, 100, func(e *entities.BonusEntry) {
			e.ExpiresAt = time.Now().Add(-time.Hour)
		}),
		createTestBonusEntry(2, 100, func(e *entities.BonusEntry) { e.RemainingAmount = 1500 }),
	}
	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return(entries, nil)

	balance, err := m.service().GetBalance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balance)
}

func TestSweepExpired_ForfeitsRemainingAmounts(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	now := time.Now().UTC()
	expired := []*entities.BonusEntry{
		createTestBonusEntry(1, 100, func(e *entities.BonusEntry) {
			e.Status = entities.BonusStatusExpired
			e.RemainingAmount = 2500
		}),
		createTestBonusEntry(2, 200, func(e *entities.BonusEntry) {
			e.Status = entities.BonusStatusExpired
		}),
	}
	m.bonusRepo.On("ExpireActiveBefore", ctx, now).Return(expired, nil)
	m.eventPublisher.On("Publish", mock.Anything).Return(nil)

	count, err := m.service().SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Forfeited amounts are reported, never credited.
	m.userRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	m.eventPublisher.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.BonusExpiredEvent) bool {
		return e.EntryID == 1 && e.ForfeitedAmount == 2500
	}))
}

func TestSweepExpired_ExcludedFromBalance(t *testing.T) {
	ctx := context.Background()
	m := newBonusMocks()

	// After the sweep only un-expired entries remain active; the balance
	// query never sees the forfeited entry again.
	m.bonusRepo.On("GetActiveByUser", ctx, int64(100)).Return([]*entities.BonusEntry{}, nil)

	balance, err := m.service().GetBalance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
