package services

import (
	"time"

	"bicho/domain/entities"

	"github.com/shopspring/decimal"
)

// intPtr returns a pointer to the given int.
func intPtr(v int) *int { return &v }

// strPtr returns a pointer to the given string.
func strPtr(v string) *string { return &v }

// premio builds a result carrying both the animal group and the milhar.
func premio(group int, milhar string) entities.PremioResult {
	return entities.PremioResult{AnimalGroup: intPtr(group), Milhar: strPtr(milhar)}
}

// premioGroupOnly builds a result carrying only the animal group.
func premioGroupOnly(group int) entities.PremioResult {
	return entities.PremioResult{AnimalGroup: intPtr(group)}
}

// createTestWager builds a pending wager with common defaults.
func createTestWager(id int64, wagerType entities.WagerType, opts ...func(*entities.Wager)) *entities.Wager {
	wager := &entities.Wager{
		ID:              id,
		UserID:          100,
		DrawID:          1,
		WagerType:       wagerType,
		PremioSelection: "1",
		Stake:           1000, // R$ 10.00
		Status:          entities.WagerStatusPending,
		CreatedAt:       time.Now(),
	}
	for _, opt := range opts {
		opt(wager)
	}
	return wager
}

func withAnimals(groups ...int) func(*entities.Wager) {
	return func(w *entities.Wager) { w.SelectedAnimals = groups }
}

func withNumbers(numbers ...string) func(*entities.Wager) {
	return func(w *entities.Wager) { w.SelectedNumbers = numbers }
}

func withSelection(selection entities.PremioSelection) func(*entities.Wager) {
	return func(w *entities.Wager) { w.PremioSelection = selection }
}

// createTestDraw builds an unsettled draw.
func createTestDraw(id int64) *entities.Draw {
	return &entities.Draw{
		ID:        id,
		Name:      "PT-Rio 19h",
		DrawTime:  time.Now().Add(-time.Hour),
		Status:    entities.DrawStatusClosed,
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
}

// createTestBonusEntry builds an active bonus entry.
func createTestBonusEntry(id, userID int64, opts ...func(*entities.BonusEntry)) *entities.BonusEntry {
	entry := entities.NewBonusEntry(userID, entities.BonusTypeFirstDeposit, 5000, decimal.NewFromInt(2), time.Now().Add(30*24*time.Hour))
	entry.ID = id
	for _, opt := range opts {
		opt(entry)
	}
	return entry
}
