package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Wager-related transactions
	TransactionTypeWagerStake  TransactionType = "wager_stake"
	TransactionTypeWagerPayout TransactionType = "wager_payout"
	TransactionTypeWagerRefund TransactionType = "wager_refund"

	// Bonus transactions
	TransactionTypeBonusRelease TransactionType = "bonus_release"

	// Cashier transactions
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"

	// System transactions
	TransactionTypeInitial    TransactionType = "initial"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// IsCredit returns true if the transaction type increases the balance
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypeWagerPayout ||
		tt == TransactionTypeWagerRefund ||
		tt == TransactionTypeBonusRelease ||
		tt == TransactionTypeDeposit ||
		tt == TransactionTypeInitial
}

// IsWagerRelated returns true if the transaction stems from wagering
func (tt TransactionType) IsWagerRelated() bool {
	return tt == TransactionTypeWagerStake ||
		tt == TransactionTypeWagerPayout ||
		tt == TransactionTypeWagerRefund
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
