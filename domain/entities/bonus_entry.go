package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// BonusType identifies how a bonus entry was earned.
type BonusType string

const (
	BonusTypeSignup       BonusType = "signup"
	BonusTypeFirstDeposit BonusType = "first_deposit"
	BonusTypePromotional  BonusType = "promotional"
)

// BonusStatus represents the lifecycle state of a bonus entry.
type BonusStatus string

const (
	BonusStatusActive    BonusStatus = "active"
	BonusStatusCompleted BonusStatus = "completed"
	BonusStatusExpired   BonusStatus = "expired"
)

var (
	// ErrBonusEntryNotFound is returned when an operation references a
	// bonus entry that does not exist.
	ErrBonusEntryNotFound = errors.New("bonus entry not found")

	// ErrBonusNotActive is returned when a terminal entry is mutated.
	ErrBonusNotActive = errors.New("bonus entry is not active")

	// ErrInsufficientBonusBalance is returned when a deduction exceeds
	// the user's total remaining bonus balance.
	ErrInsufficientBonusBalance = errors.New("insufficient bonus balance")
)

// BonusEntry represents promotional credit granted to a user. The
// remaining amount stays locked until the rollover target is met or the
// entry expires. All amounts are in centavos.
type BonusEntry struct {
	ID                   int64       `db:"id"`
	UserID               int64       `db:"user_id"`
	Type                 BonusType   `db:"bonus_type"`
	Amount               int64       `db:"amount"`
	RemainingAmount      int64       `db:"remaining_amount"`
	RolloverTarget       int64       `db:"rollover_target"`
	RolledAmount         int64       `db:"rolled_amount"`
	Status               BonusStatus `db:"status"`
	ExpiresAt            time.Time   `db:"expires_at"`
	CompletedAt          *time.Time  `db:"completed_at"`
	RelatedTransactionID *int64      `db:"related_transaction_id"`
	CreatedAt            time.Time   `db:"created_at"`
}

// NewBonusEntry creates an active entry with the rollover target derived
// from the amount and multiplier (floored to whole centavos).
func NewBonusEntry(userID int64, bonusType BonusType, amount int64, rolloverMultiplier decimal.Decimal, expiresAt time.Time) *BonusEntry {
	return &BonusEntry{
		UserID:          userID,
		Type:            bonusType,
		Amount:          amount,
		RemainingAmount: amount,
		RolloverTarget:  RolloverTarget(amount, rolloverMultiplier),
		RolledAmount:    0,
		Status:          BonusStatusActive,
		ExpiresAt:       expiresAt,
	}
}

// RolloverTarget computes the wagering stake required to unlock a grant.
func RolloverTarget(amount int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(multiplier).Floor().IntPart()
}

// IsActive reports whether the entry can still accrue rollover or be spent.
func (b *BonusEntry) IsActive() bool {
	return b.Status == BonusStatusActive
}

// IsExpiredAt reports whether the entry's deadline has passed.
func (b *BonusEntry) IsExpiredAt(now time.Time) bool {
	return b.ExpiresAt.Before(now)
}

// Merge tops up an active entry with a further grant of the same type.
// Amount, remaining amount and rollover target accumulate; the expiration
// clock restarts for the merged total.
func (b *BonusEntry) Merge(amount int64, rolloverMultiplier decimal.Decimal, expiresAt time.Time) error {
	if !b.IsActive() {
		return ErrBonusNotActive
	}
	b.Amount += amount
	b.RemainingAmount += amount
	b.RolloverTarget += RolloverTarget(amount, rolloverMultiplier)
	b.ExpiresAt = expiresAt
	return nil
}

// ApplyRollover credits wagering stake toward the rollover target and
// reports whether the target was reached. Reaching the target transitions
// the entry to completed; the caller releases the remaining amount.
func (b *BonusEntry) ApplyRollover(stake int64, now time.Time) (completed bool, err error) {
	if !b.IsActive() {
		return false, ErrBonusNotActive
	}
	if stake < 0 {
		return false, errors.New("stake must not be negative")
	}
	b.RolledAmount += stake
	if b.RolledAmount >= b.RolloverTarget {
		b.Status = BonusStatusCompleted
		b.CompletedAt = &now
		return true, nil
	}
	return false, nil
}

// Consume spends part of the entry's remaining amount. An entry drained
// to zero completes immediately: its value was consumed, not released, so
// the rollover requirement is waived.
func (b *BonusEntry) Consume(amount int64, now time.Time) (used int64, err error) {
	if !b.IsActive() {
		return 0, ErrBonusNotActive
	}
	if amount <= 0 {
		return 0, errors.New("deduction amount must be positive")
	}
	used = amount
	if used > b.RemainingAmount {
		used = b.RemainingAmount
	}
	b.RemainingAmount -= used
	if b.RemainingAmount == 0 {
		b.Status = BonusStatusCompleted
		b.CompletedAt = &now
	}
	return used, nil
}

// Expire forfeits the entry's remaining amount. Terminal.
func (b *BonusEntry) Expire() error {
	if !b.IsActive() {
		return ErrBonusNotActive
	}
	b.Status = BonusStatusExpired
	return nil
}
