package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// premioSpreadDivisor divides the odds when a wager plays all five premios:
// the same stake is deemed spread evenly across the slots.
var premioSpreadDivisor = decimal.NewFromInt(5)

// GameMode holds the payout configuration for a single wager type.
// Odds are a plain decimal multiplier (21 means a winning stake pays 21x);
// they are fixed at data-entry time and never rescaled during settlement.
type GameMode struct {
	WagerType WagerType       `db:"wager_type"`
	Odds      decimal.Decimal `db:"odds"`
	Enabled   bool            `db:"enabled"`
}

// EffectiveOdds returns the multiplier applied to the stake for the given
// premio selection. Playing all five premios divides the odds by five.
func (gm GameMode) EffectiveOdds(selection PremioSelection) decimal.Decimal {
	if selection.IsAll() {
		return gm.Odds.Div(premioSpreadDivisor)
	}
	return gm.Odds
}

// Payout computes the payout in centavos for a winning stake. The result
// is floored, never rounded, so repeated settlements cannot drift upward.
func (gm GameMode) Payout(stakeCentavos int64, selection PremioSelection) int64 {
	return decimal.NewFromInt(stakeCentavos).
		Mul(gm.EffectiveOdds(selection)).
		Floor().
		IntPart()
}

// GameModeTable maps every wager type to its payout configuration.
type GameModeTable map[WagerType]GameMode

// DefaultGameModes returns the standard banca odds table. Deployments
// override individual entries from configuration or the admin surface.
func DefaultGameModes() GameModeTable {
	odds := map[WagerType]string{
		WagerTypeGroup:         "18",
		WagerTypeDuqueGrupo:    "18.75",
		WagerTypeTernoGrupo:    "150",
		WagerTypeQuadraDuque:   "500",
		WagerTypeQuinaGrupo:    "1000",
		WagerTypeDozen:         "60",
		WagerTypeDuqueDezena:   "300",
		WagerTypeTernoDezena:   "3000",
		WagerTypeHundred:       "600",
		WagerTypeThousand:      "4000",
		WagerTypePasseIda:      "90",
		WagerTypePasseIdaVolta: "45",
	}
	table := make(GameModeTable, len(odds))
	for wt, o := range odds {
		table[wt] = GameMode{
			WagerType: wt,
			Odds:      decimal.RequireFromString(o),
			Enabled:   true,
		}
	}
	return table
}

// Get returns the game mode for a wager type.
func (t GameModeTable) Get(wt WagerType) (GameMode, error) {
	gm, ok := t[wt]
	if !ok {
		return GameMode{}, fmt.Errorf("no game mode configured for wager type %s", wt)
	}
	return gm, nil
}
