package repository

import (
	"context"
	"fmt"
	"time"

	"bicho/database"
	"bicho/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BonusEntryRepository implements bonus entry data access
type BonusEntryRepository struct {
	q Queryable
}

// NewBonusEntryRepository creates a new bonus entry repository
func NewBonusEntryRepository(db *database.DB) *BonusEntryRepository {
	return &BonusEntryRepository{q: db.Pool}
}

// newBonusEntryRepositoryWithTx creates a new bonus entry repository bound to a transaction
func newBonusEntryRepositoryWithTx(tx Queryable) *BonusEntryRepository {
	return &BonusEntryRepository{q: tx}
}

const bonusColumns = `
	id, user_id, bonus_type, amount, remaining_amount, rollover_target,
	rolled_amount, status, expires_at, completed_at,
	related_transaction_id, created_at
`

// Create creates a new bonus entry
func (r *BonusEntryRepository) Create(ctx context.Context, entry *entities.BonusEntry) error {
	query := `
		INSERT INTO bonus_entries (
			user_id, bonus_type, amount, remaining_amount, rollover_target,
			rolled_amount, status, expires_at, related_transaction_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.Type,
		entry.Amount,
		entry.RemainingAmount,
		entry.RolloverTarget,
		entry.RolledAmount,
		entry.Status,
		entry.ExpiresAt,
		entry.RelatedTransactionID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bonus entry: %w", err)
	}

	return nil
}

// GetByID retrieves a bonus entry by its ID
func (r *BonusEntryRepository) GetByID(ctx context.Context, id int64) (*entities.BonusEntry, error) {
	query := `
		SELECT ` + bonusColumns + `
		FROM bonus_entries
		WHERE id = $1
	`

	entry, err := scanBonusEntry(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, entities.ErrBonusEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bonus entry by ID %d: %w", id, err)
	}

	return entry, nil
}

// GetActiveByUser returns the user's active entries ordered by soonest
// expiration first. The rows are locked so concurrent rollover accrual
// and deductions for the same user serialize instead of losing updates.
func (r *BonusEntryRepository) GetActiveByUser(ctx context.Context, userID int64) ([]*entities.BonusEntry, error) {
	query := `
		SELECT ` + bonusColumns + `
		FROM bonus_entries
		WHERE user_id = $1 AND status = $2
		ORDER BY expires_at
		FOR UPDATE
	`

	rows, err := r.q.Query(ctx, query, userID, entities.BonusStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get active bonus entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*entities.BonusEntry
	for rows.Next() {
		entry, err := scanBonusEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonus entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bonus entries: %w", err)
	}

	return entries, nil
}

// GetActiveByUserAndType returns the user's active entry of the given
// type, or nil if none exists. The row is locked for the merge update.
func (r *BonusEntryRepository) GetActiveByUserAndType(ctx context.Context, userID int64, bonusType entities.BonusType) (*entities.BonusEntry, error) {
	query := `
		SELECT ` + bonusColumns + `
		FROM bonus_entries
		WHERE user_id = $1 AND bonus_type = $2 AND status = $3
		ORDER BY expires_at
		LIMIT 1
		FOR UPDATE
	`

	entry, err := scanBonusEntry(r.q.QueryRow(ctx, query, userID, bonusType, entities.BonusStatusActive))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active %s bonus for user %d: %w", bonusType, userID, err)
	}

	return entry, nil
}

// Update persists the mutable fields of an entry
func (r *BonusEntryRepository) Update(ctx context.Context, entry *entities.BonusEntry) error {
	query := `
		UPDATE bonus_entries
		SET amount = $2, remaining_amount = $3, rollover_target = $4,
			rolled_amount = $5, status = $6, expires_at = $7, completed_at = $8
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		entry.ID,
		entry.Amount,
		entry.RemainingAmount,
		entry.RolloverTarget,
		entry.RolledAmount,
		entry.Status,
		entry.ExpiresAt,
		entry.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update bonus entry %d: %w", entry.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrBonusEntryNotFound
	}

	return nil
}

// ExpireActiveBefore transitions every active entry whose deadline passed
// to expired in a single statement and returns the affected entries.
func (r *BonusEntryRepository) ExpireActiveBefore(ctx context.Context, now time.Time) ([]*entities.BonusEntry, error) {
	query := `
		UPDATE bonus_entries
		SET status = $1
		WHERE status = $2 AND expires_at < $3
		RETURNING ` + bonusColumns + `
	`

	rows, err := r.q.Query(ctx, query, entities.BonusStatusExpired, entities.BonusStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("failed to expire bonus entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.BonusEntry
	for rows.Next() {
		entry, err := scanBonusEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expired bonus entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expired bonus entries: %w", err)
	}

	return entries, nil
}

// scanBonusEntry reads one bonus entry row from a pgx.Row or pgx.Rows.
func scanBonusEntry(row pgx.Row) (*entities.BonusEntry, error) {
	var entry entities.BonusEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Type,
		&entry.Amount,
		&entry.RemainingAmount,
		&entry.RolloverTarget,
		&entry.RolledAmount,
		&entry.Status,
		&entry.ExpiresAt,
		&entry.CompletedAt,
		&entry.RelatedTransactionID,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
