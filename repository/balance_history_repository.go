package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bicho/database"
	"bicho/domain/entities"
)

// BalanceHistoryRepository implements balance history tracking
type BalanceHistoryRepository struct {
	q Queryable
}

// NewBalanceHistoryRepository creates a new balance history repository
func NewBalanceHistoryRepository(db *database.DB) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: db.Pool}
}

// newBalanceHistoryRepositoryWithTx creates a new balance history repository bound to a transaction
func newBalanceHistoryRepositoryWithTx(tx Queryable) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: tx}
}

// Record creates a new balance history entry
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	query := `
		INSERT INTO balance_history (
			user_id, balance_before, balance_after, change_amount,
			transaction_type, transaction_metadata, related_id, related_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	metadata, err := json.Marshal(history.TransactionMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	err = r.q.QueryRow(ctx, query,
		history.UserID,
		history.BalanceBefore,
		history.BalanceAfter,
		history.ChangeAmount,
		history.TransactionType,
		metadata,
		history.RelatedID,
		history.RelatedType,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	return nil
}

// GetByUser returns balance history for a specific user, newest first
func (r *BalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error) {
	query := `
		SELECT id, user_id, balance_before, balance_after, change_amount,
			transaction_type, transaction_metadata, related_id, related_type, created_at
		FROM balance_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var histories []*entities.BalanceHistory
	for rows.Next() {
		var history entities.BalanceHistory
		var metadata []byte
		err := rows.Scan(
			&history.ID,
			&history.UserID,
			&history.BalanceBefore,
			&history.BalanceAfter,
			&history.ChangeAmount,
			&history.TransactionType,
			&metadata,
			&history.RelatedID,
			&history.RelatedType,
			&history.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance history: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &history.TransactionMetadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}
		histories = append(histories, &history)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance history: %w", err)
	}

	return histories, nil
}
