package repository

import (
	"context"
	"fmt"
	"time"

	"bicho/database"
	"bicho/domain/entities"

	"github.com/jackc/pgx/v5"
)

// WagerRepository implements wager data access
type WagerRepository struct {
	q Queryable
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(db *database.DB) *WagerRepository {
	return &WagerRepository{q: db.Pool}
}

// newWagerRepositoryWithTx creates a new wager repository bound to a transaction
func newWagerRepositoryWithTx(tx Queryable) *WagerRepository {
	return &WagerRepository{q: tx}
}

const wagerColumns = `
	id, user_id, draw_id, wager_type, premio_selection, stake,
	selected_animals, selected_numbers, status, payout,
	uses_bonus_balance, created_at, resolved_at
`

// Create creates a new wager
func (r *WagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	if err := wager.Validate(); err != nil {
		return fmt.Errorf("invalid wager: %w", err)
	}

	query := `
		INSERT INTO wagers (
			user_id, draw_id, wager_type, premio_selection, stake,
			selected_animals, selected_numbers, status, uses_bonus_balance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	if wager.Status == "" {
		wager.Status = entities.WagerStatusPending
	}
	err := r.q.QueryRow(ctx, query,
		wager.UserID,
		wager.DrawID,
		wager.WagerType,
		wager.PremioSelection,
		wager.Stake,
		wager.SelectedAnimals,
		wager.SelectedNumbers,
		wager.Status,
		wager.UsesBonusBalance,
	).Scan(&wager.ID, &wager.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wager: %w", err)
	}

	return nil
}

// GetByID retrieves a wager by its ID
func (r *WagerRepository) GetByID(ctx context.Context, id int64) (*entities.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `
		FROM wagers
		WHERE id = $1
	`

	wager, err := scanWager(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wager by ID %d: %w", id, err)
	}

	return wager, nil
}

// ListPendingByDraw returns a page of pending wagers for a draw, ordered
// by id, starting after afterID. Settlement walks the draw's wager set
// with this keyset pagination instead of loading everything at once.
func (r *WagerRepository) ListPendingByDraw(ctx context.Context, drawID, afterID int64, limit int) ([]*entities.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `
		FROM wagers
		WHERE draw_id = $1 AND status = $2 AND id > $3
		ORDER BY id
		LIMIT $4
	`

	rows, err := r.q.Query(ctx, query, drawID, entities.WagerStatusPending, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending wagers for draw %d: %w", drawID, err)
	}
	defer rows.Close()

	var wagers []*entities.Wager
	for rows.Next() {
		wager, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, wager)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wagers: %w", err)
	}

	return wagers, nil
}

// Resolve writes the wager's final status and payout. The pending guard
// in the WHERE clause makes resolution idempotent under retry: a wager
// already resolved by another settlement reports false.
func (r *WagerRepository) Resolve(ctx context.Context, wagerID int64, status entities.WagerStatus, payout *int64, resolvedAt time.Time) (bool, error) {
	query := `
		UPDATE wagers
		SET status = $2, payout = $3, resolved_at = $4
		WHERE id = $1 AND status = $5
	`

	tag, err := r.q.Exec(ctx, query, wagerID, status, payout, resolvedAt, entities.WagerStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to resolve wager %d: %w", wagerID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// scanWager reads one wager row from a pgx.Row or pgx.Rows.
func scanWager(row pgx.Row) (*entities.Wager, error) {
	var wager entities.Wager
	err := row.Scan(
		&wager.ID,
		&wager.UserID,
		&wager.DrawID,
		&wager.WagerType,
		&wager.PremioSelection,
		&wager.Stake,
		&wager.SelectedAnimals,
		&wager.SelectedNumbers,
		&wager.Status,
		&wager.Payout,
		&wager.UsesBonusBalance,
		&wager.CreatedAt,
		&wager.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wager, nil
}
