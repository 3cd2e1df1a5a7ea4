package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/restaurant"
)

func newTestService() (*Service, *restaurant.MemoryRepository, *MemoryRepository) {
	restaurants := restaurant.NewMemoryRepository()
	items := NewMemoryRepository(restaurants)
	return NewService(restaurants, items), restaurants, items
}

func item(restaurantName, sourceURL, name, price, curr string) ItemRequest {
	return ItemRequest{
		RestaurantName: restaurantName,
		SourceURL:      sourceURL,
		Name:           name,
		Price:          json.Number(price),
		Currency:       curr,
	}
}

// --------------------------------------------------
// Batch save
// --------------------------------------------------

func TestSaveBatch_DeduplicatesRestaurantBySourceURL(t *testing.T) {
	service, restaurants, items := newTestService()
	ctx := context.Background()

	result, err := service.SaveBatch(ctx, []ItemRequest{
		item("Pizza Palace", "https://pizza.palace.com/menu", "Pepperoni Pizza", "16.99", "USD"),
		item("Pizza Palace", "https://pizza.palace.com/menu", "Margherita Pizza", "14.50", "USD"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SavedCount)

	restaurantCount, _ := restaurants.Count(ctx)
	assert.Equal(t, int64(1), restaurantCount)

	itemCount, _ := items.Count(ctx)
	assert.Equal(t, int64(2), itemCount)
}

func TestSaveBatch_UpdatesRestaurantNameForKnownURL(t *testing.T) {
	service, restaurants, _ := newTestService()
	ctx := context.Background()

	_, err := service.SaveBatch(ctx, []ItemRequest{
		item("Pizza Palace", "https://pizza.palace.com/menu", "Pepperoni Pizza", "16.99", "USD"),
	})
	require.NoError(t, err)

	_, err = service.SaveBatch(ctx, []ItemRequest{
		item("Pizza Palace Deluxe", "https://pizza.palace.com/menu", "Calzone", "12.00", "USD"),
	})
	require.NoError(t, err)

	stored, err := restaurants.FindBySourceURL(ctx, "https://pizza.palace.com/menu")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Pizza Palace Deluxe", stored.Name)

	count, _ := restaurants.Count(ctx)
	assert.Equal(t, int64(1), count)
}

func TestSaveBatch_BestEffortSkipsInvalidRecords(t *testing.T) {
	service, _, items := newTestService()
	ctx := context.Background()

	result, err := service.SaveBatch(ctx, []ItemRequest{
		item("Pizza Palace", "https://pizza.palace.com/menu", "Pepperoni Pizza", "16.99", "USD"),
		item("Pizza Palace", "https://pizza.palace.com/menu", "Broken Item", "-1.00", "USD"),
		item("Sushi Zen", "https://sushi.zen.jp/tokyo", "Salmon Nigiri", "6.50", "JPY"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SavedCount)
	require.Len(t, result.Results, 3)
	assert.Equal(t, StatusSaved, result.Results[0].Status)
	assert.Equal(t, StatusRejected, result.Results[1].Status)
	assert.Equal(t, "Price must be non-negative", result.Results[1].Error)
	assert.Equal(t, StatusSaved, result.Results[2].Status)

	count, _ := items.Count(ctx)
	assert.Equal(t, int64(2), count)
}

func TestSaveBatch_PersistsNormalizedCurrency(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.SaveBatch(ctx, []ItemRequest{
		item("Pizza Palace", "https://pizza.palace.com/menu", "Pepperoni Pizza", "16.99", "usd"),
	})
	require.NoError(t, err)

	responses, err := service.GetMenuItems(ctx, "", "https://pizza.palace.com/menu")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "USD", responses[0].Currency)
}

// --------------------------------------------------
// Find-or-create race
// --------------------------------------------------

// raceRepository simulates losing the creation race: the first lookup
// misses, Create hits the unique constraint, and the re-read finds
// the winner.
type raceRepository struct {
	*restaurant.MemoryRepository
	misses int
}

func (r *raceRepository) FindBySourceURL(
	ctx context.Context,
	sourceURL string,
) (*restaurant.Restaurant, error) {
	if r.misses > 0 {
		r.misses--
		return nil, nil
	}
	return r.MemoryRepository.FindBySourceURL(ctx, sourceURL)
}

func TestSaveBatch_RecoversFromCreationRace(t *testing.T) {
	ctx := context.Background()

	inner := restaurant.NewMemoryRepository()
	winner := &restaurant.Restaurant{
		Name:      "Pizza Palace",
		SourceURL: "https://pizza.palace.com/menu",
	}
	require.NoError(t, inner.Create(ctx, winner))

	race := &raceRepository{MemoryRepository: inner, misses: 1}
	items := NewMemoryRepository(inner)
	service := NewService(race, items)

	result, err := service.SaveBatch(ctx, []ItemRequest{
		item("Pizza Palace", "https://pizza.palace.com/menu", "Pepperoni Pizza", "16.99", "USD"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SavedCount)

	count, _ := inner.Count(ctx)
	assert.Equal(t, int64(1), count, "race must not duplicate the restaurant")
}

func TestSaveBatch_SurfacesUnresolvedConflict(t *testing.T) {
	ctx := context.Background()

	inner := restaurant.NewMemoryRepository()
	require.NoError(t, inner.Create(ctx, &restaurant.Restaurant{
		Name:      "Pizza Palace",
		SourceURL: "https://pizza.palace.com/menu",
	}))

	// Both the initial lookup and the post-conflict re-read miss.
	race := &raceRepository{MemoryRepository: inner, misses: 2}
	service := NewService(race, NewMemoryRepository(inner))

	_, err := service.SaveBatch(ctx, []ItemRequest{
		item("Pizza Palace", "https://pizza.palace.com/menu", "Pepperoni Pizza", "16.99", "USD"),
	})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

// --------------------------------------------------
// Read queries
// --------------------------------------------------

func seedThreeRestaurants(t *testing.T, service *Service) {
	t.Helper()

	_, err := service.SaveBatch(context.Background(), []ItemRequest{
		item("Pizza Palace", "https://pizza.palace.com/menu", "Pepperoni Pizza", "16.99", "USD"),
		item("Sushi Zen", "https://sushi.zen.jp/tokyo", "Salmon Nigiri", "6.50", "JPY"),
		item("Burger Barn", "https://burger.barn.com/menu", "Double Cheeseburger", "9.99", "USD"),
	})
	require.NoError(t, err)
}

func TestGetMenuItems_NameFilterIsCaseInsensitiveSubstring(t *testing.T) {
	service, _, _ := newTestService()
	seedThreeRestaurants(t, service)

	responses, err := service.GetMenuItems(context.Background(), "pIzZa", "")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Pizza Palace", responses[0].RestaurantName)
}

func TestGetMenuItems_BothFiltersReturnUnion(t *testing.T) {
	service, _, _ := newTestService()
	seedThreeRestaurants(t, service)

	responses, err := service.GetMenuItems(
		context.Background(),
		"Pizza",
		"https://sushi.zen.jp/tokyo",
	)
	require.NoError(t, err)
	require.Len(t, responses, 2)

	names := map[string]bool{}
	for _, r := range responses {
		names[r.RestaurantName] = true
	}
	assert.True(t, names["Pizza Palace"])
	assert.True(t, names["Sushi Zen"])
}

func TestGetMenuItems_URLFilterIsExactMatch(t *testing.T) {
	service, _, _ := newTestService()
	seedThreeRestaurants(t, service)

	responses, err := service.GetMenuItems(
		context.Background(),
		"",
		"https://sushi.zen.jp",
	)
	require.NoError(t, err)
	assert.Empty(t, responses, "URL prefix must not match")

	responses, err = service.GetMenuItems(
		context.Background(),
		"",
		"https://sushi.zen.jp/tokyo",
	)
	require.NoError(t, err)
	assert.Len(t, responses, 1)
}

func TestGetMenuItems_UnfilteredCapsAt100(t *testing.T) {
	service, restaurants, items := newTestService()
	ctx := context.Background()

	owner := &restaurant.Restaurant{
		Name:      "Pizza Palace",
		SourceURL: "https://pizza.palace.com/menu",
	}
	require.NoError(t, restaurants.Create(ctx, owner))

	for i := 0; i < 150; i++ {
		require.NoError(t, items.Insert(ctx, &MenuItem{
			RestaurantID: owner.ID,
			Name:         fmt.Sprintf("Item %d", i),
			Price:        "5.00",
			Currency:     "USD",
		}))
	}

	responses, err := service.GetMenuItems(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, responses, 100)
}

func TestGetMenuItems_OrderedByScrapedAtDescending(t *testing.T) {
	service, restaurants, items := newTestService()
	ctx := context.Background()

	owner := &restaurant.Restaurant{
		Name:      "Pizza Palace",
		SourceURL: "https://pizza.palace.com/menu",
	}
	require.NoError(t, restaurants.Create(ctx, owner))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"Oldest", "Middle", "Newest"} {
		require.NoError(t, items.Insert(ctx, &MenuItem{
			RestaurantID: owner.ID,
			Name:         name,
			Price:        "5.00",
			Currency:     "USD",
			ScrapedAt:    base.Add(time.Duration(i) * time.Hour),
		}))
	}

	responses, err := service.GetMenuItems(ctx, "Pizza", "")
	require.NoError(t, err)
	require.Len(t, responses, 3)
	assert.Equal(t, "Newest", responses[0].Name)
	assert.Equal(t, "Middle", responses[1].Name)
	assert.Equal(t, "Oldest", responses[2].Name)
	assert.Equal(t, "2026-03-01T14:00:00", responses[0].ScrapedAt)
}

func TestDeleteRestaurant_CascadesToQueries(t *testing.T) {
	service, restaurants, _ := newTestService()
	ctx := context.Background()

	seedThreeRestaurants(t, service)

	owner, err := restaurants.FindBySourceURL(ctx, "https://pizza.palace.com/menu")
	require.NoError(t, err)
	require.NotNil(t, owner)

	deleted, err := restaurants.DeleteByID(ctx, owner.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	responses, err := service.GetMenuItems(ctx, "Pizza", "")
	require.NoError(t, err)
	assert.Empty(t, responses, "deleted restaurant's items must not appear")
}
