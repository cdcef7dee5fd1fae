package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameModePayout(t *testing.T) {
	gm := GameMode{WagerType: WagerTypeGroup, Odds: decimal.NewFromInt(21), Enabled: true}

	// Single premio: 10.00 x 21 = 210.00.
	assert.Equal(t, int64(21000), gm.Payout(1000, "1"))

	// All five premios: the odds split by five, floored to centavos.
	assert.Equal(t, int64(4200), gm.Payout(1000, PremioSelectionAll))
}

func TestGameModePayout_FloorsFractions(t *testing.T) {
	// 0.33 x 18.75 = 6.1875: the fraction is dropped, never rounded up.
	gm := GameMode{WagerType: WagerTypeDuqueGrupo, Odds: decimal.RequireFromString("18.75")}
	assert.Equal(t, int64(618), gm.Payout(33, "1"))

	// 1.01 x 18 / 5 = 3.636.
	gm = GameMode{WagerType: WagerTypeGroup, Odds: decimal.NewFromInt(18)}
	assert.Equal(t, int64(363), gm.Payout(101, PremioSelectionAll))
}

func TestDefaultGameModes(t *testing.T) {
	table := DefaultGameModes()

	for _, wt := range AllWagerTypes() {
		gm, err := table.Get(wt)
		require.NoError(t, err, "wager type %s", wt)
		assert.True(t, gm.Enabled)
		assert.True(t, gm.Odds.IsPositive())
	}

	_, err := table.Get(WagerType("jackpot"))
	assert.Error(t, err)
}
