package application

import (
	"context"

	"bicho/domain/interfaces"
)

// UnitOfWork bundles the repositories behind a single database
// transaction so a settlement or ledger operation commits or rolls back
// as one unit.
type UnitOfWork interface {
	// Begin starts the transaction and binds the repositories to it
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback aborts the transaction and discards buffered events.
	// Safe to call after Commit; it is a no-op then.
	Rollback() error

	UserRepository() interfaces.UserRepository
	BalanceHistoryRepository() interfaces.BalanceHistoryRepository
	DrawRepository() interfaces.DrawRepository
	WagerRepository() interfaces.WagerRepository
	BonusEntryRepository() interfaces.BonusEntryRepository

	// EventPublisher returns the transactional publisher bound to this
	// unit of work: events buffer until Commit.
	EventPublisher() interfaces.EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
