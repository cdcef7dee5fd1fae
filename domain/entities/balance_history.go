package entities

import "time"

// RelatedType represents what type of entity the related_id refers to
type RelatedType string

const (
	RelatedTypeWager      RelatedType = "wager"
	RelatedTypeDraw       RelatedType = "draw"
	RelatedTypeBonusEntry RelatedType = "bonus_entry"
)

// BalanceHistory represents a historical balance change. Amounts are in
// centavos; BalanceAfter is the authoritative post-change balance.
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	UserID              int64           `db:"user_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	RelatedID           *int64          `db:"related_id"`
	RelatedType         *RelatedType    `db:"related_type"`
	CreatedAt           time.Time       `db:"created_at"`
}

// IsPositiveChange returns true if the change amount is positive
func (bh *BalanceHistory) IsPositiveChange() bool {
	return bh.ChangeAmount > 0
}

// IsNegativeChange returns true if the change amount is negative
func (bh *BalanceHistory) IsNegativeChange() bool {
	return bh.ChangeAmount < 0
}
