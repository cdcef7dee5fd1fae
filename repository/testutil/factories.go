package testutil

import (
	"time"

	"bicho/domain/entities"

	"github.com/shopspring/decimal"
)

// CreateTestDraw creates a closed draw awaiting results
func CreateTestDraw(name string) *entities.Draw {
	return &entities.Draw{
		Name:     name,
		DrawTime: time.Now().Add(-time.Hour),
		Status:   entities.DrawStatusClosed,
	}
}

// CreateTestWager creates a pending group wager with default values
func CreateTestWager(userID, drawID int64) *entities.Wager {
	return &entities.Wager{
		UserID:          userID,
		DrawID:          drawID,
		WagerType:       entities.WagerTypeGroup,
		PremioSelection: "1",
		Stake:           1000,
		SelectedAnimals: []int{13},
		Status:          entities.WagerStatusPending,
	}
}

// CreateTestBonusEntry creates an active bonus entry with default values
func CreateTestBonusEntry(userID int64) *entities.BonusEntry {
	return entities.NewBonusEntry(
		userID,
		entities.BonusTypeFirstDeposit,
		5000,
		decimal.NewFromInt(2),
		time.Now().Add(30*24*time.Hour),
	)
}

// CreateTestBonusEntryExpiring creates an active bonus entry with a specific deadline
func CreateTestBonusEntryExpiring(userID int64, expiresAt time.Time) *entities.BonusEntry {
	entry := CreateTestBonusEntry(userID)
	entry.ExpiresAt = expiresAt
	return entry
}
