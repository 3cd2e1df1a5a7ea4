package restaurant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
)

func TestMemoryRepository_CreateEnforcesUniqueSourceURL(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := &Restaurant{Name: "Pizza Palace", SourceURL: "https://pizza.palace.com/menu"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &Restaurant{Name: "Impostor", SourceURL: "https://pizza.palace.com/menu"}
	err := repo.Create(ctx, second)
	assert.True(t, errors.Is(err, errs.ErrConflict))

	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(1), count)
}

func TestMemoryRepository_FindBySourceURLMiss(t *testing.T) {
	repo := NewMemoryRepository()

	found, err := repo.FindBySourceURL(context.Background(), "https://unknown.test/menu")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryRepository_UpdateName(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	res := &Restaurant{Name: "Pizza Palace", SourceURL: "https://pizza.palace.com/menu"}
	require.NoError(t, repo.Create(ctx, res))

	require.NoError(t, repo.UpdateName(ctx, res.ID, "Pizza Palace Deluxe"))

	stored, err := repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Pizza Palace Deluxe", stored.Name)
}

func TestService_DeleteRestaurant(t *testing.T) {
	repo := NewMemoryRepository()
	service := NewService(repo)
	ctx := context.Background()

	res := &Restaurant{Name: "Pizza Palace", SourceURL: "https://pizza.palace.com/menu"}
	require.NoError(t, repo.Create(ctx, res))

	require.NoError(t, service.DeleteRestaurant(ctx, res.ID))

	stored, err := repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Deleting again reports not found.
	err = service.DeleteRestaurant(ctx, res.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
