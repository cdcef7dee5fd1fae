package repository

import (
	"context"
	"fmt"

	"bicho/database"
	"bicho/domain/entities"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository bound to a transaction
func newUserRepositoryWithTx(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByID retrieves a user by their ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query := `
		SELECT id, username, balance, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}

	return &user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, username string, initialBalance int64) (*entities.User, error) {
	query := `
		INSERT INTO users (username, balance)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	user := &entities.User{
		Username: username,
		Balance:  initialBalance,
	}
	err := r.q.QueryRow(ctx, query, username, initialBalance).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", username, err)
	}

	return user, nil
}

// AdjustBalance applies an atomic balance increment and returns the
// resulting balance. The delta is applied in SQL so concurrent credits
// never clobber each other with stale reads.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID int64, delta int64) (int64, error) {
	query := `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, userID, delta).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("user %d not found", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust balance for user %d: %w", userID, err)
	}

	return newBalance, nil
}
