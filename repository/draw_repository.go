package repository

import (
	"context"
	"fmt"

	"bicho/database"
	"bicho/domain/entities"

	"github.com/jackc/pgx/v5"
)

// DrawRepository implements the DrawRepository interface
type DrawRepository struct {
	q Queryable
}

// NewDrawRepository creates a new draw repository
func NewDrawRepository(db *database.DB) *DrawRepository {
	return &DrawRepository{q: db.Pool}
}

// newDrawRepositoryWithTx creates a new draw repository bound to a transaction
func newDrawRepositoryWithTx(tx Queryable) *DrawRepository {
	return &DrawRepository{q: tx}
}

const drawColumns = `
	d.id, d.name, d.draw_time, d.status, d.completed_at, d.created_at
`

// Create creates a new draw
func (r *DrawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	query := `
		INSERT INTO draws (name, draw_time, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if draw.Status == "" {
		draw.Status = entities.DrawStatusOpen
	}
	err := r.q.QueryRow(ctx, query,
		draw.Name,
		draw.DrawTime,
		draw.Status,
	).Scan(&draw.ID, &draw.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create draw: %w", err)
	}

	return nil
}

// GetByID retrieves a draw by its ID, including any published results
func (r *DrawRepository) GetByID(ctx context.Context, id int64) (*entities.Draw, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate retrieves a draw with a row lock. Settlement takes
// this lock first so concurrent calls serialize on the status check.
func (r *DrawRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error) {
	return r.getByID(ctx, id, true)
}

func (r *DrawRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*entities.Draw, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM draws d
		WHERE d.id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var draw entities.Draw
	err := r.q.QueryRow(ctx, query, id).Scan(
		&draw.ID,
		&draw.Name,
		&draw.DrawTime,
		&draw.Status,
		&draw.CompletedAt,
		&draw.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw by ID %d: %w", id, err)
	}

	results, err := r.getResults(ctx, id)
	if err != nil {
		return nil, err
	}
	draw.Results = results

	return &draw, nil
}

func (r *DrawRepository) getResults(ctx context.Context, drawID int64) ([]entities.PremioResult, error) {
	query := `
		SELECT position, animal_group, milhar
		FROM draw_results
		WHERE draw_id = $1
		ORDER BY position
	`

	rows, err := r.q.Query(ctx, query, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results for draw %d: %w", drawID, err)
	}
	defer rows.Close()

	var results []entities.PremioResult
	for rows.Next() {
		var position int
		var result entities.PremioResult
		if err := rows.Scan(&position, &result.AnimalGroup, &result.Milhar); err != nil {
			return nil, fmt.Errorf("failed to scan draw result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draw results: %w", err)
	}

	return results, nil
}

// Complete persists the draw's results and completed status. Results are
// written once; the status transition makes them immutable.
func (r *DrawRepository) Complete(ctx context.Context, draw *entities.Draw) error {
	query := `
		UPDATE draws
		SET status = $2, completed_at = $3
		WHERE id = $1 AND status <> $2
	`

	tag, err := r.q.Exec(ctx, query, draw.ID, entities.DrawStatusCompleted, draw.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to complete draw %d: %w", draw.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrDrawAlreadySettled
	}

	insert := `
		INSERT INTO draw_results (draw_id, position, animal_group, milhar)
		VALUES ($1, $2, $3, $4)
	`
	for i, result := range draw.Results {
		if _, err := r.q.Exec(ctx, insert, draw.ID, i+1, result.AnimalGroup, result.Milhar); err != nil {
			return fmt.Errorf("failed to store result %d for draw %d: %w", i+1, draw.ID, err)
		}
	}

	return nil
}
