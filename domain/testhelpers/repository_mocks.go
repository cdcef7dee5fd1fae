package testhelpers

import (
	"context"
	"time"

	"bicho/domain/entities"
	"bicho/domain/events"
	"bicho/domain/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username string, initialBalance int64) (*entities.User, error) {
	args := m.Called(ctx, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) AdjustBalance(ctx context.Context, userID int64, delta int64) (int64, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(int64), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BalanceHistory), args.Error(1)
}

// MockDrawRepository is a mock implementation of DrawRepository
type MockDrawRepository struct {
	mock.Mock
}

func (m *MockDrawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockDrawRepository) GetByID(ctx context.Context, id int64) (*entities.Draw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) Complete(ctx context.Context, draw *entities.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

// MockWagerRepository is a mock implementation of WagerRepository
type MockWagerRepository struct {
	mock.Mock
}

func (m *MockWagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockWagerRepository) GetByID(ctx context.Context, id int64) (*entities.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) ListPendingByDraw(ctx context.Context, drawID, afterID int64, limit int) ([]*entities.Wager, error) {
	args := m.Called(ctx, drawID, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) Resolve(ctx context.Context, wagerID int64, status entities.WagerStatus, payout *int64, resolvedAt time.Time) (bool, error) {
	args := m.Called(ctx, wagerID, status, payout, resolvedAt)
	return args.Bool(0), args.Error(1)
}

// MockBonusEntryRepository is a mock implementation of BonusEntryRepository
type MockBonusEntryRepository struct {
	mock.Mock
}

func (m *MockBonusEntryRepository) Create(ctx context.Context, entry *entities.BonusEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBonusEntryRepository) GetByID(ctx context.Context, id int64) (*entities.BonusEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BonusEntry), args.Error(1)
}

func (m *MockBonusEntryRepository) GetActiveByUser(ctx context.Context, userID int64) ([]*entities.BonusEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BonusEntry), args.Error(1)
}

func (m *MockBonusEntryRepository) GetActiveByUserAndType(ctx context.Context, userID int64, bonusType entities.BonusType) (*entities.BonusEntry, error) {
	args := m.Called(ctx, userID, bonusType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BonusEntry), args.Error(1)
}

func (m *MockBonusEntryRepository) Update(ctx context.Context, entry *entities.BonusEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBonusEntryRepository) ExpireActiveBefore(ctx context.Context, now time.Time) ([]*entities.BonusEntry, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BonusEntry), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockBonusService is a mock implementation of BonusService
type MockBonusService struct {
	mock.Mock
}

func (m *MockBonusService) Grant(ctx context.Context, userID int64, bonusType entities.BonusType, amount int64, rolloverMultiplier decimal.Decimal, expirationDays int) (*entities.BonusEntry, error) {
	args := m.Called(ctx, userID, bonusType, amount, rolloverMultiplier, expirationDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BonusEntry), args.Error(1)
}

func (m *MockBonusService) RecordWagerActivity(ctx context.Context, userID int64, stake int64) error {
	args := m.Called(ctx, userID, stake)
	return args.Error(0)
}

func (m *MockBonusService) DeductForWager(ctx context.Context, userID int64, amount int64) ([]interfaces.BonusDeduction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.BonusDeduction), args.Error(1)
}

func (m *MockBonusService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBonusService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
