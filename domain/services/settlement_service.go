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

	log "github.com/sirupsen/logrus"
)

// ErrDrawNotFound is returned when settlement references an unknown draw.
var ErrDrawNotFound = errors.New("draw not found")

// settlementBatchSize bounds how many wagers are held in memory at once
// while paging through a draw's wager set.
const settlementBatchSize = 500

// settlementService implements business logic for draw settlement
type settlementService struct {
	drawRepo           interfaces.DrawRepository
	wagerRepo          interfaces.WagerRepository
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	bonusService       interfaces.BonusService
	eventPublisher     interfaces.EventPublisher
	gameModes          entities.GameModeTable
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	drawRepo interfaces.DrawRepository,
	wagerRepo interfaces.WagerRepository,
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	bonusService interfaces.BonusService,
	eventPublisher interfaces.EventPublisher,
	gameModes entities.GameModeTable,
) interfaces.SettlementService {
	return &settlementService{
		drawRepo:           drawRepo,
		wagerRepo:          wagerRepo,
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		bonusService:       bonusService,
		eventPublisher:     eventPublisher,
		gameModes:          gameModes,
	}
}

// SettleDraw settles every pending wager of the draw against the
// published results.
func (s *settlementService) SettleDraw(ctx context.Context, drawID int64, results []entities.PremioResult) (*interfaces.SettlementReport, error) {
	// Lock the draw row first: the pending check plus the completed
	// write below form the check-and-set that makes settlement run at
	// most once per draw.
	draw, err := s.drawRepo.GetByIDForUpdate(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock draw %d: %w", drawID, err)
	}
	if draw == nil {
		return nil, ErrDrawNotFound
	}
	if draw.IsCompleted() {
		return nil, entities.ErrDrawAlreadySettled
	}
	if err := entities.ValidateResults(results); err != nil {
		return nil, fmt.Errorf("invalid results for draw %d: %w", drawID, err)
	}

	now := time.Now().UTC()
	outcomes := buildOutcomes(results)
	report := &interfaces.SettlementReport{DrawID: drawID}

	var afterID int64
	for {
		wagers, err := s.wagerRepo.ListPendingByDraw(ctx, drawID, afterID, settlementBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list pending wagers for draw %d: %w", drawID, err)
		}
		if len(wagers) == 0 {
			break
		}
		for _, wager := range wagers {
			if err := s.settleWager(ctx, wager, outcomes, now, report); err != nil {
				// A single malformed wager must not block the rest of
				// the batch: leave it pending for reconciliation.
				report.WagersSkipped++
				log.WithError(err).WithFields(log.Fields{
					"wagerID": wager.ID,
					"drawID":  drawID,
				}).Error("Failed to settle wager, leaving pending")
			}
		}
		afterID = wagers[len(wagers)-1].ID
		if len(wagers) < settlementBatchSize {
			break
		}
	}

	if err := draw.Complete(results, now); err != nil {
		return nil, err
	}
	if err := s.drawRepo.Complete(ctx, draw); err != nil {
		return nil, fmt.Errorf("failed to complete draw %d: %w", drawID, err)
	}

	if err := s.eventPublisher.Publish(events.DrawSettledEvent{
		DrawID:          drawID,
		WagersProcessed: report.WagersProcessed,
		WagersWon:       report.WagersWon,
		WagersSkipped:   report.WagersSkipped,
		TotalPaidOut:    report.TotalPaidOut,
		SettledAt:       now,
	}); err != nil {
		log.WithError(err).WithField("drawID", drawID).Error("Failed to publish draw settled event")
	}

	log.WithFields(log.Fields{
		"drawID":    drawID,
		"processed": report.WagersProcessed,
		"won":       report.WagersWon,
		"skipped":   report.WagersSkipped,
		"paidOut":   report.TotalPaidOut,
	}).Info("Draw settled")

	return report, nil
}

// settleWager resolves one wager, writes its final status and credits the
// payout. The stake feeds the bonus rollover whether the wager won or not.
func (s *settlementService) settleWager(ctx context.Context, wager *entities.Wager, outcomes []premioOutcome, now time.Time, report *interfaces.SettlementReport) error {
	// A stored wager whose selections do not match its type cannot be
	// resolved; reject it here so it lands on the skip path instead of
	// blowing up a resolver.
	if err := wager.Validate(); err != nil {
		return fmt.Errorf("malformed wager: %w", err)
	}

	gameMode, err := s.gameModes.Get(wager.WagerType)
	if err != nil {
		return err
	}

	won, err := resolveWager(wager, outcomes)
	if err != nil {
		return err
	}

	if won {
		payout := gameMode.Payout(wager.Stake, wager.PremioSelection)
		resolved, err := s.wagerRepo.Resolve(ctx, wager.ID, entities.WagerStatusWon, &payout, now)
		if err != nil {
			return fmt.Errorf("failed to mark wager won: %w", err)
		}
		if !resolved {
			// Another settlement got here first; do not pay twice.
			return entities.ErrWagerAlreadyResolved
		}
		if err := s.creditPayout(ctx, wager, payout); err != nil {
			return err
		}
		report.WagersWon++
		report.TotalPaidOut += payout
	} else {
		resolved, err := s.wagerRepo.Resolve(ctx, wager.ID, entities.WagerStatusLost, nil, now)
		if err != nil {
			return fmt.Errorf("failed to mark wager lost: %w", err)
		}
		if !resolved {
			return entities.ErrWagerAlreadyResolved
		}
	}
	report.WagersProcessed++

	// The stake counts toward rollover regardless of win or loss. The
	// wager is already resolved at this point, so an accrual failure is
	// reconciled out of band rather than blocking the batch.
	if err := s.bonusService.RecordWagerActivity(ctx, wager.UserID, wager.Stake); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"wagerID": wager.ID,
			"userID":  wager.UserID,
		}).Error("Failed to record wager activity for bonus rollover")
	}

	return nil
}

// creditPayout applies the atomic balance credit and records history.
func (s *settlementService) creditPayout(ctx context.Context, wager *entities.Wager, payout int64) error {
	newBalance, err := s.userRepo.AdjustBalance(ctx, wager.UserID, payout)
	if err != nil {
		return fmt.Errorf("failed to credit payout for wager %d: %w", wager.ID, err)
	}

	relatedType := entities.RelatedTypeWager
	history := &entities.BalanceHistory{
		UserID:          wager.UserID,
		BalanceBefore:   newBalance - payout,
		BalanceAfter:    newBalance,
		ChangeAmount:    payout,
		TransactionType: entities.TransactionTypeWagerPayout,
		TransactionMetadata: map[string]any{
			"wager_id":         wager.ID,
			"draw_id":          wager.DrawID,
			"wager_type":       wager.WagerType.String(),
			"premio_selection": string(wager.PremioSelection),
			"stake":            wager.Stake,
		},
		RelatedID:   &wager.ID,
		RelatedType: &relatedType,
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return fmt.Errorf("failed to record payout balance change: %w", err)
	}
	return nil
}
