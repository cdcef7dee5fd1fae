package application

import (
	"context"
	"fmt"

	"bicho/domain/entities"
	"bicho/domain/interfaces"
	"bicho/domain/services"
)

// SettlementHandler runs draw settlement inside a unit of work. The
// admin "publish result" surface calls this with the five premio
// outcomes once a draw closes.
type SettlementHandler struct {
	uowFactory UnitOfWorkFactory
	gameModes  entities.GameModeTable
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(uowFactory UnitOfWorkFactory, gameModes entities.GameModeTable) *SettlementHandler {
	return &SettlementHandler{
		uowFactory: uowFactory,
		gameModes:  gameModes,
	}
}

// SettleDraw settles the draw in a single transaction. All wager status
// writes, payout credits and bonus rollover updates commit together;
// buffered events flush only after the commit.
func (h *SettlementHandler) SettleDraw(ctx context.Context, drawID int64, results []entities.PremioResult) (*interfaces.SettlementReport, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer uow.Rollback()

	bonusService := services.NewBonusService(
		uow.BonusEntryRepository(),
		uow.UserRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventPublisher(),
	)
	settlementService := services.NewSettlementService(
		uow.DrawRepository(),
		uow.WagerRepository(),
		uow.UserRepository(),
		uow.BalanceHistoryRepository(),
		bonusService,
		uow.EventPublisher(),
		h.gameModes,
	)

	report, err := settlementService.SettleDraw(ctx, drawID, results)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return report, nil
}
