package entities

import (
	"errors"
	"time"
)

// User represents a platform account. Balance is the withdrawable real
// balance in centavos; bonus credit lives in bonus entries, not here.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasSufficientBalance checks if the user can cover an amount from the
// real balance alone.
func (u *User) HasSufficientBalance(amount int64) bool {
	return u.Balance >= amount
}

// ValidateAmount checks if an amount is valid and affordable.
func (u *User) ValidateAmount(amount int64) error {
	if amount <= 0 {
		return errors.New("amount must be positive")
	}
	if !u.HasSufficientBalance(amount) {
		return errors.New("insufficient balance")
	}
	return nil
}
