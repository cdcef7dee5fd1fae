package repository

import (
	"context"
	"testing"
	"time"

	"bicho/domain/entities"
	"bicho/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBonusEntryRepository_CreateAndGetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBonusEntryRepository(testDB.DB)

	user, err := userRepo.Create(ctx, "ana", 0)
	require.NoError(t, err)

	entry := testutil.CreateTestBonusEntry(user.ID)
	require.NoError(t, repo.Create(ctx, entry))
	assert.NotZero(t, entry.ID)

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, entities.BonusTypeFirstDeposit, got.Type)
	assert.Equal(t, int64(5000), got.RemainingAmount)
	assert.Equal(t, int64(10000), got.RolloverTarget)
	assert.Equal(t, entities.BonusStatusActive, got.Status)
}

func TestBonusEntryRepository_GetByIDNotFound(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewBonusEntryRepository(testDB.DB)
	_, err := repo.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, entities.ErrBonusEntryNotFound)
}

func TestBonusEntryRepository_GetActiveByUserOrdersByExpiration(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBonusEntryRepository(testDB.DB)

	user, err := userRepo.Create(ctx, "carlos", 0)
	require.NoError(t, err)

	later := testutil.CreateTestBonusEntryExpiring(user.ID, time.Now().Add(30*24*time.Hour))
	require.NoError(t, repo.Create(ctx, later))
	soon := testutil.CreateTestBonusEntryExpiring(user.ID, time.Now().Add(24*time.Hour))
	soon.Type = entities.BonusTypeSignup
	require.NoError(t, repo.Create(ctx, soon))

	// A completed entry never shows up as active.
	done := testutil.CreateTestBonusEntry(user.ID)
	require.NoError(t, repo.Create(ctx, done))
	now := time.Now().UTC()
	_, err = done.Consume(5000, now)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, done))

	entries, err := repo.GetActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, soon.ID, entries[0].ID)
	assert.Equal(t, later.ID, entries[1].ID)
}

func TestBonusEntryRepository_GetActiveByUserAndType(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBonusEntryRepository(testDB.DB)

	user, err := userRepo.Create(ctx, "rita", 0)
	require.NoError(t, err)

	entry := testutil.CreateTestBonusEntry(user.ID)
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.GetActiveByUserAndType(ctx, user.ID, entities.BonusTypeFirstDeposit)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.ID, got.ID)

	got, err = repo.GetActiveByUserAndType(ctx, user.ID, entities.BonusTypeSignup)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBonusEntryRepository_UpdatePersistsStateTransition(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBonusEntryRepository(testDB.DB)

	user, err := userRepo.Create(ctx, "luiz", 0)
	require.NoError(t, err)

	entry := testutil.CreateTestBonusEntry(user.ID)
	require.NoError(t, repo.Create(ctx, entry))

	now := time.Now().UTC()
	completed, err := entry.ApplyRollover(10000, now)
	require.NoError(t, err)
	require.True(t, completed)
	require.NoError(t, repo.Update(ctx, entry))

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BonusStatusCompleted, got.Status)
	assert.Equal(t, int64(10000), got.RolledAmount)
	require.NotNil(t, got.CompletedAt)
}

func TestBonusEntryRepository_ExpireActiveBefore(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBonusEntryRepository(testDB.DB)

	user, err := userRepo.Create(ctx, "sofia", 0)
	require.NoError(t, err)

	stale := testutil.CreateTestBonusEntryExpiring(user.ID, time.Now().Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, stale))
	fresh := testutil.CreateTestBonusEntryExpiring(user.ID, time.Now().Add(24*time.Hour))
	fresh.Type = entities.BonusTypeSignup
	require.NoError(t, repo.Create(ctx, fresh))

	expired, err := repo.ExpireActiveBefore(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID, expired[0].ID)
	assert.Equal(t, entities.BonusStatusExpired, expired[0].Status)

	// The sweep is idempotent: the already-expired row is not touched again.
	expired, err = repo.ExpireActiveBefore(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, expired)

	entries, err := repo.GetActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, fresh.ID, entries[0].ID)
}
