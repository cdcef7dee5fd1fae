package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bicho/domain/entities"
	"bicho/domain/events"
	"bicho/domain/interfaces"
	"bicho/domain/utils"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// bonusService implements the bonus entry state machine
type bonusService struct {
	bonusRepo          interfaces.BonusEntryRepository
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
}

// NewBonusService creates a new bonus service
func NewBonusService(
	bonusRepo interfaces.BonusEntryRepository,
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.BonusService {
	return &bonusService{
		bonusRepo:          bonusRepo,
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
	}
}

// Grant creates a bonus entry, or merges the grant into the user's
// existing active entry of the same type so total-bonus accounting stays
// on a single row per type.
func (s *bonusService) Grant(ctx context.Context, userID int64, bonusType entities.BonusType, amount int64, rolloverMultiplier decimal.Decimal, expirationDays int) (*entities.BonusEntry, error) {
	if amount <= 0 {
		return nil, errors.New("bonus amount must be positive")
	}
	if expirationDays <= 0 {
		return nil, errors.New("expiration days must be positive")
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, expirationDays)

	existing, err := s.bonusRepo.GetActiveByUserAndType(ctx, userID, bonusType)
	if err != nil {
		return nil, fmt.Errorf("failed to look up active %s bonus: %w", bonusType, err)
	}

	var entry *entities.BonusEntry
	merged := false
	if existing != nil {
		if err := existing.Merge(amount, rolloverMultiplier, expiresAt); err != nil {
			return nil, fmt.Errorf("failed to merge bonus grant: %w", err)
		}
		if err := s.bonusRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update merged bonus entry: %w", err)
		}
		entry = existing
		merged = true
	} else {
		entry = entities.NewBonusEntry(userID, bonusType, amount, rolloverMultiplier, expiresAt)
		if err := s.bonusRepo.Create(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to create bonus entry: %w", err)
		}
	}

	if err := s.eventPublisher.Publish(events.BonusGrantedEvent{
		EntryID:        entry.ID,
		UserID:         userID,
		BonusType:      string(bonusType),
		Amount:         amount,
		RolloverTarget: entry.RolloverTarget,
		Merged:         merged,
	}); err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to publish bonus granted event")
	}

	log.WithFields(log.Fields{
		"userID":    userID,
		"bonusType": bonusType,
		"amount":    amount,
		"merged":    merged,
	}).Info("Bonus granted")

	return entry, nil
}

// RecordWagerActivity credits wager stake toward the rollover of the
// user's earliest-expiring active entry. Meeting the target completes
// the entry and releases its remaining amount to the real balance.
func (s *bonusService) RecordWagerActivity(ctx context.Context, userID int64, stake int64) error {
	if stake <= 0 {
		return nil
	}

	entries, err := s.bonusRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load active bonus entries: %w", err)
	}
	now := time.Now().UTC()
	entries = liveEntries(entries, now)
	if len(entries) == 0 {
		return nil
	}

	// Entries come ordered by soonest expiration; the stake credits the
	// one closest to its deadline.
	entry := entries[0]
	completed, err := entry.ApplyRollover(stake, now)
	if err != nil {
		return fmt.Errorf("failed to apply rollover to entry %d: %w", entry.ID, err)
	}
	if err := s.bonusRepo.Update(ctx, entry); err != nil {
		return fmt.Errorf("failed to update bonus entry %d: %w", entry.ID, err)
	}

	if completed {
		// The release is guarded by the active -> completed transition
		// above, so it can only ever happen once per entry.
		if err := s.releaseRemaining(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// DeductForWager spends bonus balance across the user's active entries,
// earliest expiration first.
func (s *bonusService) DeductForWager(ctx context.Context, userID int64, amount int64) ([]interfaces.BonusDeduction, error) {
	if amount <= 0 {
		return nil, errors.New("deduction amount must be positive")
	}

	entries, err := s.bonusRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active bonus entries: %w", err)
	}
	now := time.Now().UTC()
	entries = liveEntries(entries, now)

	var total int64
	for _, entry := range entries {
		total += entry.RemainingAmount
	}
	// All-or-nothing: check the total before touching any entry so a
	// failed deduction leaves the ledger unmodified.
	if total < amount {
		return nil, entities.ErrInsufficientBonusBalance
	}

	remaining := amount
	deductions := make([]interfaces.BonusDeduction, 0, len(entries))
	for _, entry := range entries {
		if remaining == 0 {
			break
		}
		used, err := entry.Consume(remaining, now)
		if err != nil {
			return nil, fmt.Errorf("failed to consume bonus entry %d: %w", entry.ID, err)
		}
		if used == 0 {
			continue
		}
		if err := s.bonusRepo.Update(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to update bonus entry %d: %w", entry.ID, err)
		}
		deductions = append(deductions, interfaces.BonusDeduction{EntryID: entry.ID, AmountUsed: used})
		remaining -= used

		// An entry drained by spending completes with its remaining
		// amount consumed, so there is nothing to release.
		if entry.Status == entities.BonusStatusCompleted {
			if err := s.eventPublisher.Publish(events.BonusCompletedEvent{
				EntryID:        entry.ID,
				UserID:         entry.UserID,
				ReleasedAmount: 0,
			}); err != nil {
				log.WithError(err).WithField("entryID", entry.ID).Error("Failed to publish bonus completed event")
			}
		}
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"amount":  amount,
		"entries": len(deductions),
	}).Info("Bonus balance deducted for wager")

	return deductions, nil
}

// GetBalance returns the sum of remaining amounts over active entries.
func (s *bonusService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	entries, err := s.bonusRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load active bonus entries: %w", err)
	}
	var total int64
	for _, entry := range liveEntries(entries, time.Now().UTC()) {
		total += entry.RemainingAmount
	}
	return total, nil
}

// liveEntries filters out entries whose deadline has passed but that the
// expiration sweep has not picked up yet. An overdue entry must not
// accrue rollover, be spent, or count toward the balance; its remaining
// amount is forfeit as of the deadline, not as of the sweep.
func liveEntries(entries []*entities.BonusEntry, now time.Time) []*entities.BonusEntry {
	live := make([]*entities.BonusEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsExpiredAt(now) {
			continue
		}
		live = append(live, entry)
	}
	return live
}

// SweepExpired expires every active entry whose deadline passed. The
// locked remaining amounts are forfeited, never credited.
func (s *bonusService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.bonusRepo.ExpireActiveBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire bonus entries: %w", err)
	}

	for _, entry := range expired {
		if err := s.eventPublisher.Publish(events.BonusExpiredEvent{
			EntryID:         entry.ID,
			UserID:          entry.UserID,
			ForfeitedAmount: entry.RemainingAmount,
		}); err != nil {
			log.WithError(err).WithField("entryID", entry.ID).Error("Failed to publish bonus expired event")
		}
	}

	if len(expired) > 0 {
		log.WithField("count", len(expired)).Info("Expired bonus entries swept")
	}
	return len(expired), nil
}

// releaseRemaining transfers a completed entry's remaining amount to the
// user's real balance and records the release.
func (s *bonusService) releaseRemaining(ctx context.Context, entry *entities.BonusEntry) error {
	if entry.RemainingAmount == 0 {
		return nil
	}

	newBalance, err := s.userRepo.AdjustBalance(ctx, entry.UserID, entry.RemainingAmount)
	if err != nil {
		return fmt.Errorf("failed to credit released bonus for entry %d: %w", entry.ID, err)
	}

	relatedType := entities.RelatedTypeBonusEntry
	history := &entities.BalanceHistory{
		UserID:          entry.UserID,
		BalanceBefore:   newBalance - entry.RemainingAmount,
		BalanceAfter:    newBalance,
		ChangeAmount:    entry.RemainingAmount,
		TransactionType: entities.TransactionTypeBonusRelease,
		TransactionMetadata: map[string]any{
			"bonus_entry_id":  entry.ID,
			"bonus_type":      string(entry.Type),
			"rollover_target": entry.RolloverTarget,
			"rolled_amount":   entry.RolledAmount,
		},
		RelatedID:   &entry.ID,
		RelatedType: &relatedType,
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return fmt.Errorf("failed to record bonus release: %w", err)
	}

	if err := s.eventPublisher.Publish(events.BonusCompletedEvent{
		EntryID:        entry.ID,
		UserID:         entry.UserID,
		ReleasedAmount: entry.RemainingAmount,
	}); err != nil {
		log.WithError(err).WithField("entryID", entry.ID).Error("Failed to publish bonus completed event")
	}

	log.WithFields(log.Fields{
		"userID":   entry.UserID,
		"entryID":  entry.ID,
		"released": entry.RemainingAmount,
	}).Info("Bonus rollover completed, remaining amount released")

	return nil
}
