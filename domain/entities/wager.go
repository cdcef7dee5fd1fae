package entities

import (
	"errors"
	"time"
)

// WagerStatus represents the resolution state of a wager.
type WagerStatus string

const (
	WagerStatusPending WagerStatus = "pending"
	WagerStatusWon     WagerStatus = "won"
	WagerStatusLost    WagerStatus = "lost"
)

// ErrWagerAlreadyResolved is returned when a status transition is attempted
// on a wager that already left the pending state.
var ErrWagerAlreadyResolved = errors.New("wager already resolved")

// Wager represents a single bet placed by a user on an upcoming draw.
// Stake and payout are in centavos.
type Wager struct {
	ID               int64           `db:"id"`
	UserID           int64           `db:"user_id"`
	DrawID           int64           `db:"draw_id"`
	WagerType        WagerType       `db:"wager_type"`
	PremioSelection  PremioSelection `db:"premio_selection"`
	Stake            int64           `db:"stake"`
	SelectedAnimals  []int           `db:"selected_animals"`
	SelectedNumbers  []string        `db:"selected_numbers"`
	Status           WagerStatus     `db:"status"`
	Payout           *int64          `db:"payout"`
	UsesBonusBalance bool            `db:"uses_bonus_balance"`
	CreatedAt        time.Time       `db:"created_at"`
	ResolvedAt       *time.Time      `db:"resolved_at"`
}

// IsPending reports whether the wager is still awaiting settlement.
func (w *Wager) IsPending() bool {
	return w.Status == WagerStatusPending
}

// MarkWon transitions the wager to won with the computed payout.
// Only a pending wager may be resolved, and only once.
func (w *Wager) MarkWon(payout int64, at time.Time) error {
	if !w.IsPending() {
		return ErrWagerAlreadyResolved
	}
	w.Status = WagerStatusWon
	w.Payout = &payout
	w.ResolvedAt = &at
	return nil
}

// MarkLost transitions the wager to lost.
func (w *Wager) MarkLost(at time.Time) error {
	if !w.IsPending() {
		return ErrWagerAlreadyResolved
	}
	w.Status = WagerStatusLost
	w.ResolvedAt = &at
	return nil
}

// Validate performs shape checks on the wager's selections against its
// type. It does not touch persistence.
func (w *Wager) Validate() error {
	if !w.WagerType.IsValid() {
		return errors.New("unknown wager type")
	}
	if !w.PremioSelection.IsValid() {
		return errors.New("invalid premio selection")
	}
	if w.Stake <= 0 {
		return errors.New("stake must be positive")
	}
	if got, want := len(w.SelectedAnimals), w.WagerType.AnimalSlots(); got != want {
		return errors.New("wrong number of selected animals for wager type")
	}
	if got, want := len(w.SelectedNumbers), w.WagerType.NumberSlots(); got != want {
		return errors.New("wrong number of selected numbers for wager type")
	}
	if w.WagerType.IsGroupKind() {
		for _, g := range w.SelectedAnimals {
			if AnimalByGroup(g) == nil {
				return errors.New("selected animal group out of range")
			}
		}
	}
	if w.WagerType.IsNumberKind() {
		n := w.WagerType.NumberLength()
		for _, s := range w.SelectedNumbers {
			if len(s) != n {
				return errors.New("selected number has wrong digit count")
			}
			for i := 0; i < len(s); i++ {
				if s[i] < '0' || s[i] > '9' {
					return errors.New("selected number contains non-digit")
				}
			}
		}
	}
	return nil
}
