package application

import (
	"context"
	"fmt"
	"time"

	"bicho/config"
	"bicho/domain/entities"
	"bicho/domain/interfaces"
	"bicho/domain/services"
)

// BonusHandler exposes the bonus ledger operations to the surrounding
// API layer, each wrapped in its own unit of work.
type BonusHandler struct {
	uowFactory UnitOfWorkFactory
	signup     config.BonusPolicy
	deposit    config.BonusPolicy
}

// NewBonusHandler creates a new bonus handler
func NewBonusHandler(uowFactory UnitOfWorkFactory, signup, deposit config.BonusPolicy) *BonusHandler {
	return &BonusHandler{
		uowFactory: uowFactory,
		signup:     signup,
		deposit:    deposit,
	}
}

// GrantSignupBonus grants the signup bonus to a freshly registered user.
func (h *BonusHandler) GrantSignupBonus(ctx context.Context, userID int64) (*entities.BonusEntry, error) {
	return h.grant(ctx, userID, entities.BonusTypeSignup, h.signup)
}

// GrantFirstDepositBonus grants the first-deposit bonus after a
// qualifying deposit is confirmed by the payment webhook.
func (h *BonusHandler) GrantFirstDepositBonus(ctx context.Context, userID int64) (*entities.BonusEntry, error) {
	return h.grant(ctx, userID, entities.BonusTypeFirstDeposit, h.deposit)
}

func (h *BonusHandler) grant(ctx context.Context, userID int64, bonusType entities.BonusType, policy config.BonusPolicy) (*entities.BonusEntry, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin grant transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := h.bonusService(uow).Grant(ctx, userID, bonusType, policy.Amount, policy.RolloverMultiplier, policy.ExpirationDays)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit grant: %w", err)
	}
	return entry, nil
}

// DeductForWager spends bonus balance for a wager that opted into bonus
// funding. An insufficient balance rolls the transaction back untouched.
func (h *BonusHandler) DeductForWager(ctx context.Context, userID int64, amount int64) ([]interfaces.BonusDeduction, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin deduction transaction: %w", err)
	}
	defer uow.Rollback()

	deductions, err := h.bonusService(uow).DeductForWager(ctx, userID, amount)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit deduction: %w", err)
	}
	return deductions, nil
}

// GetBalance returns the user's spendable bonus balance.
func (h *BonusHandler) GetBalance(ctx context.Context, userID int64) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin balance transaction: %w", err)
	}
	defer uow.Rollback()

	balance, err := h.bonusService(uow).GetBalance(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit balance read: %w", err)
	}
	return balance, nil
}

// SweepExpired expires overdue entries; invoked by the sweep worker.
func (h *BonusHandler) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin sweep transaction: %w", err)
	}
	defer uow.Rollback()

	count, err := h.bonusService(uow).SweepExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sweep: %w", err)
	}
	return count, nil
}

func (h *BonusHandler) bonusService(uow UnitOfWork) interfaces.BonusService {
	return services.NewBonusService(
		uow.BonusEntryRepository(),
		uow.UserRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventPublisher(),
	)
}
