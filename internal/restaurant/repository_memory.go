package restaurant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
)

// MemoryRepository backs tests; it mirrors the Postgres repository's
// contract including the unique source_url constraint.
type MemoryRepository struct {
	mu          sync.Mutex
	bySourceURL map[string]*Restaurant
	byID        map[string]*Restaurant
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		bySourceURL: make(map[string]*Restaurant),
		byID:        make(map[string]*Restaurant),
	}
}

func (m *MemoryRepository) FindBySourceURL(
	ctx context.Context,
	sourceURL string,
) (*Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res, ok := m.bySourceURL[sourceURL]; ok {
		copied := *res
		return &copied, nil
	}
	return nil, nil
}

func (m *MemoryRepository) FindByID(
	ctx context.Context,
	id string,
) (*Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res, ok := m.byID[id]; ok {
		copied := *res
		return &copied, nil
	}
	return nil, nil
}

func (m *MemoryRepository) Create(
	ctx context.Context,
	restaurant *Restaurant,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.bySourceURL[restaurant.SourceURL]; exists {
		return errs.ErrConflict
	}

	restaurant.ID = uuid.New().String()
	restaurant.CreatedAt = time.Now()

	stored := *restaurant
	m.bySourceURL[stored.SourceURL] = &stored
	m.byID[stored.ID] = &stored
	return nil
}

func (m *MemoryRepository) UpdateName(
	ctx context.Context,
	id string,
	name string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res, ok := m.byID[id]; ok {
		res.Name = name
	}
	return nil
}

func (m *MemoryRepository) DeleteByID(
	ctx context.Context,
	id string,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.byID[id]
	if !ok {
		return false, nil
	}

	delete(m.byID, id)
	delete(m.bySourceURL, res.SourceURL)
	return true, nil
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}
