package interfaces

import (
	"context"
	"time"

	"bicho/domain/entities"
	"bicho/domain/events"

	"github.com/shopspring/decimal"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// SettlementReport summarizes the outcome of settling a draw.
type SettlementReport struct {
	DrawID          int64
	WagersProcessed int
	WagersWon       int
	WagersSkipped   int
	TotalPaidOut    int64
}

// SettlementService evaluates a draw's published results against every
// pending wager for that draw and pays out the winners.
type SettlementService interface {
	// SettleDraw settles every pending wager of the draw. It fails with
	// entities.ErrDrawAlreadySettled before touching any wager when the
	// draw was already completed. A wager that cannot be evaluated is
	// logged and left pending; settlement continues with the rest.
	SettleDraw(ctx context.Context, drawID int64, results []entities.PremioResult) (*SettlementReport, error)
}

// BonusDeduction reports how much of a deduction one entry covered.
type BonusDeduction struct {
	EntryID    int64
	AmountUsed int64
}

// BonusService owns the lifecycle of promotional bonus entries.
type BonusService interface {
	// Grant creates a bonus entry, or merges the grant into the user's
	// existing active entry of the same type.
	Grant(ctx context.Context, userID int64, bonusType entities.BonusType, amount int64, rolloverMultiplier decimal.Decimal, expirationDays int) (*entities.BonusEntry, error)

	// RecordWagerActivity credits wager stake toward the rollover of
	// the user's earliest-expiring active entry. Completing the
	// rollover releases the remaining amount to the real balance.
	// A user with no active entries is a no-op.
	RecordWagerActivity(ctx context.Context, userID int64, stake int64) error

	// DeductForWager spends bonus balance across the user's active
	// entries, earliest expiration first. Fails with
	// entities.ErrInsufficientBonusBalance without mutating anything
	// when the total remaining balance cannot cover the amount.
	DeductForWager(ctx context.Context, userID int64, amount int64) ([]BonusDeduction, error)

	// GetBalance returns the sum of remaining amounts over the user's
	// active entries.
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// SweepExpired expires every active entry whose deadline passed and
	// returns how many were expired.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
