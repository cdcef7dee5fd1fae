package repository

import (
	"context"
	"fmt"

	"bicho/application"
	"bicho/database"
	"bicho/domain/interfaces"
	"bicho/infrastructure"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db  *database.DB
	tx  pgx.Tx
	ctx context.Context

	publisher *infrastructure.TransactionalEventPublisher

	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	drawRepo           interfaces.DrawRepository
	wagerRepo          interfaces.WagerRepository
	bonusRepo          interfaces.BonusEntryRepository
}

type unitOfWorkFactory struct {
	db        *database.DB
	publisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Events
// published inside a unit of work are buffered and only forwarded to the
// given publisher after a successful commit.
func NewUnitOfWorkFactory(db *database.DB, publisher interfaces.EventPublisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:        db,
		publisher: publisher,
	}
}

// Create creates a new UnitOfWork
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:        f.db,
		publisher: infrastructure.NewTransactionalEventPublisher(f.publisher),
	}
}

// Begin starts a new transaction and binds the repositories to it
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepositoryWithTx(tx)
	u.balanceHistoryRepo = newBalanceHistoryRepositoryWithTx(tx)
	u.drawRepo = newDrawRepositoryWithTx(tx)
	u.wagerRepo = newWagerRepositoryWithTx(tx)
	u.bonusRepo = newBonusEntryRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes buffered events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	u.publisher.Flush()

	return nil
}

// Rollback rolls back the transaction and discards buffered events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.publisher.Discard()
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// BalanceHistoryRepository returns the balance history repository for this unit of work
func (u *unitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	if u.balanceHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceHistoryRepo
}

// DrawRepository returns the draw repository for this unit of work
func (u *unitOfWork) DrawRepository() interfaces.DrawRepository {
	if u.drawRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.drawRepo
}

// WagerRepository returns the wager repository for this unit of work
func (u *unitOfWork) WagerRepository() interfaces.WagerRepository {
	if u.wagerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.wagerRepo
}

// BonusEntryRepository returns the bonus entry repository for this unit of work
func (u *unitOfWork) BonusEntryRepository() interfaces.BonusEntryRepository {
	if u.bonusRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bonusRepo
}

// EventPublisher returns the transactional publisher for this unit of work
func (u *unitOfWork) EventPublisher() interfaces.EventPublisher {
	return u.publisher
}
