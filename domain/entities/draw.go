package entities

import (
	"errors"
	"time"
)

// DrawStatus represents the lifecycle state of a draw.
type DrawStatus string

const (
	// DrawStatusOpen accepts wagers.
	DrawStatusOpen DrawStatus = "open"
	// DrawStatusClosed no longer accepts wagers; awaiting results.
	DrawStatusClosed DrawStatus = "closed"
	// DrawStatusCompleted has published results and has been settled.
	DrawStatusCompleted DrawStatus = "completed"
)

// MaxPremios is the number of ranked result slots per draw.
const MaxPremios = 5

// ErrDrawAlreadySettled is returned when settlement is attempted on a
// draw that is already completed.
var ErrDrawAlreadySettled = errors.New("draw already settled")

// PremioResult is one ranked outcome of a draw. The milhar may be absent
// when only the animal group was published for that slot.
type PremioResult struct {
	AnimalGroup *int    `db:"animal_group"`
	Milhar      *string `db:"milhar"`
}

// HasAnimal reports whether the result carries an animal group.
func (p PremioResult) HasAnimal() bool {
	return p.AnimalGroup != nil
}

// HasMilhar reports whether the result carries a drawn 4-digit number.
func (p PremioResult) HasMilhar() bool {
	return p.Milhar != nil && *p.Milhar != ""
}

// Animal returns the animal for the result's group, resolving from the
// milhar's dezena when the group was not stored explicitly.
func (p PremioResult) Animal() *Animal {
	if p.AnimalGroup != nil {
		return AnimalByGroup(*p.AnimalGroup)
	}
	return nil
}

// Draw represents a single scheduled draw event with up to five results.
type Draw struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	DrawTime    time.Time      `db:"draw_time"`
	Status      DrawStatus     `db:"status"`
	Results     []PremioResult `db:"-"`
	CompletedAt *time.Time     `db:"completed_at"`
	CreatedAt   time.Time      `db:"created_at"`
}

// IsCompleted reports whether the draw has been settled.
func (d *Draw) IsCompleted() bool {
	return d.Status == DrawStatusCompleted
}

// Complete records the published results and marks the draw settled.
// Completion is terminal; results are immutable afterwards.
func (d *Draw) Complete(results []PremioResult, at time.Time) error {
	if d.IsCompleted() {
		return ErrDrawAlreadySettled
	}
	if err := ValidateResults(results); err != nil {
		return err
	}
	d.Results = results
	d.Status = DrawStatusCompleted
	d.CompletedAt = &at
	return nil
}

// ValidateResults checks the shape of a published result set: at least
// premio-1, at most five slots, each carrying an animal or a milhar.
func ValidateResults(results []PremioResult) error {
	if len(results) == 0 {
		return errors.New("results must contain at least premio-1")
	}
	if len(results) > MaxPremios {
		return errors.New("results exceed five premios")
	}
	for _, r := range results {
		if !r.HasAnimal() && !r.HasMilhar() {
			return errors.New("premio result carries neither animal nor milhar")
		}
		if r.HasAnimal() && AnimalByGroup(*r.AnimalGroup) == nil {
			return errors.New("premio result animal group out of range")
		}
		if r.HasMilhar() {
			m := *r.Milhar
			if len(m) > 4 || len(m) == 0 {
				return errors.New("premio milhar must have 1-4 digits")
			}
			for j := 0; j < len(m); j++ {
				if m[j] < '0' || m[j] > '9' {
					return errors.New("premio milhar contains non-digit")
				}
			}
		}
	}
	return nil
}
