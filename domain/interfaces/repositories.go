package interfaces

import (
	"context"
	"time"

	"bicho/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, username string, initialBalance int64) (*entities.User, error)

	// AdjustBalance applies an atomic balance increment (negative for a
	// debit) and returns the resulting balance. The update is a single
	// balance = balance + delta statement, never a read-modify-write.
	AdjustBalance(ctx context.Context, userID int64, delta int64) (int64, error)
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns balance history for a specific user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error)
}

// DrawRepository defines the interface for draw data access
type DrawRepository interface {
	// Create creates a new draw
	Create(ctx context.Context, draw *entities.Draw) error

	// GetByID retrieves a draw by its ID
	GetByID(ctx context.Context, id int64) (*entities.Draw, error)

	// GetByIDForUpdate retrieves a draw with a row lock so that two
	// concurrent settlements serialize on the status transition
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error)

	// Complete persists the draw's results and completed status
	Complete(ctx context.Context, draw *entities.Draw) error
}

// WagerRepository defines the interface for wager data access
type WagerRepository interface {
	// Create creates a new wager
	Create(ctx context.Context, wager *entities.Wager) error

	// GetByID retrieves a wager by its ID
	GetByID(ctx context.Context, id int64) (*entities.Wager, error)

	// ListPendingByDraw returns up to limit pending wagers for a draw
	// with id greater than afterID, ordered by id. Settlement pages
	// through the draw's wagers with this instead of loading them all.
	ListPendingByDraw(ctx context.Context, drawID, afterID int64, limit int) ([]*entities.Wager, error)

	// Resolve writes the wager's final status and payout. The update
	// only applies while the row is still pending; it returns false
	// when another settlement already resolved the wager.
	Resolve(ctx context.Context, wagerID int64, status entities.WagerStatus, payout *int64, resolvedAt time.Time) (bool, error)
}

// BonusEntryRepository defines the interface for bonus entry data access
type BonusEntryRepository interface {
	// Create creates a new bonus entry
	Create(ctx context.Context, entry *entities.BonusEntry) error

	// GetByID retrieves a bonus entry by its ID
	GetByID(ctx context.Context, id int64) (*entities.BonusEntry, error)

	// GetActiveByUser returns the user's active entries ordered by
	// soonest expiration first, locking the rows for update so that
	// concurrent rollover and deduction calls serialize per user.
	GetActiveByUser(ctx context.Context, userID int64) ([]*entities.BonusEntry, error)

	// GetActiveByUserAndType returns the user's active entry of the
	// given type, or nil if none exists.
	GetActiveByUserAndType(ctx context.Context, userID int64, bonusType entities.BonusType) (*entities.BonusEntry, error)

	// Update persists the mutable fields of an entry
	Update(ctx context.Context, entry *entities.BonusEntry) error

	// ExpireActiveBefore transitions every active entry whose deadline
	// passed to expired and returns the affected entries.
	ExpireActiveBefore(ctx context.Context, now time.Time) ([]*entities.BonusEntry, error)
}
