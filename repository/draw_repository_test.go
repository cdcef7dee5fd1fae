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

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestDrawRepository_CreateAndGetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewDrawRepository(testDB.DB)

	draw := testutil.CreateTestDraw("PT-Rio 19h")
	require.NoError(t, repo.Create(ctx, draw))
	assert.NotZero(t, draw.ID)

	got, err := repo.GetByID(ctx, draw.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "PT-Rio 19h", got.Name)
	assert.Equal(t, entities.DrawStatusClosed, got.Status)
	assert.Empty(t, got.Results)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDrawRepository_CompleteStoresResultsOnce(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewDrawRepository(testDB.DB)

	draw := testutil.CreateTestDraw("PT-Rio 19h")
	require.NoError(t, repo.Create(ctx, draw))

	results := []entities.PremioResult{
		{AnimalGroup: intp(2), Milhar: strp("1407")},
		{AnimalGroup: intp(25), Milhar: strp("3400")},
		{AnimalGroup: intp(13)},
	}
	require.NoError(t, draw.Complete(results, time.Now().UTC()))
	require.NoError(t, repo.Complete(ctx, draw))

	got, err := repo.GetByID(ctx, draw.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DrawStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	require.Len(t, got.Results, 3)
	assert.Equal(t, "1407", *got.Results[0].Milhar)
	// Milhar "3400" keeps the wraparound dezena intact.
	assert.Equal(t, "3400", *got.Results[1].Milhar)
	assert.Nil(t, got.Results[2].Milhar)
	assert.Equal(t, 13, *got.Results[2].AnimalGroup)

	// The status guard makes completion run at most once.
	assert.ErrorIs(t, repo.Complete(ctx, draw), entities.ErrDrawAlreadySettled)
}
