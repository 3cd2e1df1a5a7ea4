package restaurant

import "context"

type Repository interface {
	// FindBySourceURL returns (nil, nil) when no restaurant exists
	// for the URL.
	FindBySourceURL(ctx context.Context, sourceURL string) (*Restaurant, error)

	// Create inserts a new restaurant. Returns errs.ErrConflict when
	// a concurrent writer already claimed the source URL.
	Create(ctx context.Context, restaurant *Restaurant) error

	UpdateName(ctx context.Context, id string, name string) error

	// DeleteByID removes the restaurant and all its menu items in one
	// transaction. Returns false when the id is unknown.
	DeleteByID(ctx context.Context, id string) (bool, error)

	Count(ctx context.Context) (int64, error)
}
