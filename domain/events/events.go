package events

import "time"

// EventType identifies the kind of domain event
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeDrawSettled    EventType = "draw_settled"
	EventTypeBonusGranted   EventType = "bonus_granted"
	EventTypeBonusCompleted EventType = "bonus_completed"
	EventTypeBonusExpired   EventType = "bonus_expired"
)

// Event is implemented by all domain events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent is emitted whenever a user's real balance changes.
type BalanceChangeEvent struct {
	UserID          int64  `json:"user_id"`
	OldBalance      int64  `json:"old_balance"`
	NewBalance      int64  `json:"new_balance"`
	ChangeAmount    int64  `json:"change_amount"`
	TransactionType string `json:"transaction_type"`
}

func (e BalanceChangeEvent) Type() EventType { return EventTypeBalanceChange }

// DrawSettledEvent is emitted after a draw's wagers have been settled.
type DrawSettledEvent struct {
	DrawID          int64     `json:"draw_id"`
	WagersProcessed int       `json:"wagers_processed"`
	WagersWon       int       `json:"wagers_won"`
	WagersSkipped   int       `json:"wagers_skipped"`
	TotalPaidOut    int64     `json:"total_paid_out"`
	SettledAt       time.Time `json:"settled_at"`
}

func (e DrawSettledEvent) Type() EventType { return EventTypeDrawSettled }

// BonusGrantedEvent is emitted when bonus credit is granted or topped up.
type BonusGrantedEvent struct {
	EntryID        int64  `json:"entry_id"`
	UserID         int64  `json:"user_id"`
	BonusType      string `json:"bonus_type"`
	Amount         int64  `json:"amount"`
	RolloverTarget int64  `json:"rollover_target"`
	Merged         bool   `json:"merged"`
}

func (e BonusGrantedEvent) Type() EventType { return EventTypeBonusGranted }

// BonusCompletedEvent is emitted when a bonus entry reaches its rollover
// target or is fully consumed.
type BonusCompletedEvent struct {
	EntryID        int64 `json:"entry_id"`
	UserID         int64 `json:"user_id"`
	ReleasedAmount int64 `json:"released_amount"`
}

func (e BonusCompletedEvent) Type() EventType { return EventTypeBonusCompleted }

// BonusExpiredEvent is emitted when an active entry passes its deadline.
type BonusExpiredEvent struct {
	EntryID         int64 `json:"entry_id"`
	UserID          int64 `json:"user_id"`
	ForfeitedAmount int64 `json:"forfeited_amount"`
}

func (e BonusExpiredEvent) Type() EventType { return EventTypeBonusExpired }
