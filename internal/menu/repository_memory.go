package menu

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/restaurant"
)

// MemoryRepository backs tests. It joins against the restaurant
// memory repository the way the SQL queries join the two tables.
type MemoryRepository struct {
	mu          sync.Mutex
	items       []*MenuItem
	restaurants *restaurant.MemoryRepository
}

func NewMemoryRepository(restaurants *restaurant.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{restaurants: restaurants}
}

func (m *MemoryRepository) Insert(ctx context.Context, item *MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = uuid.New().String()
	if item.ScrapedAt.IsZero() {
		item.ScrapedAt = time.Now()
	}

	stored := *item
	m.items = append(m.items, &stored)
	return nil
}

func (m *MemoryRepository) FindByRestaurantNameOrSourceURL(
	ctx context.Context,
	nameFilter string,
	sourceURL string,
) ([]ItemRow, error) {
	return m.filter(ctx, func(row ItemRow) bool {
		nameMatch := nameFilter != "" && strings.Contains(
			strings.ToLower(row.RestaurantName),
			strings.ToLower(nameFilter),
		)
		return nameMatch || row.SourceURL == sourceURL
	}, 0)
}

func (m *MemoryRepository) FindByRestaurantName(
	ctx context.Context,
	nameFilter string,
) ([]ItemRow, error) {
	return m.filter(ctx, func(row ItemRow) bool {
		return strings.Contains(
			strings.ToLower(row.RestaurantName),
			strings.ToLower(nameFilter),
		)
	}, 0)
}

func (m *MemoryRepository) ListRecent(
	ctx context.Context,
	limit int,
) ([]ItemRow, error) {
	return m.filter(ctx, func(ItemRow) bool { return true }, limit)
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

func (m *MemoryRepository) filter(
	ctx context.Context,
	keep func(ItemRow) bool,
	limit int,
) ([]ItemRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows []ItemRow
	for _, item := range m.items {
		owner, err := m.restaurants.FindByID(ctx, item.RestaurantID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			continue
		}

		row := ItemRow{
			ID:             item.ID,
			RestaurantName: owner.Name,
			SourceURL:      owner.SourceURL,
			Name:           item.Name,
			Description:    item.Description,
			Price:          item.Price,
			Currency:       item.Currency,
			ScrapedAt:      item.ScrapedAt,
		}
		if keep(row) {
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ScrapedAt.After(rows[j].ScrapedAt)
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
