package menu

import "context"

// Repository defines all database operations for menu items.
type Repository interface {
	Insert(ctx context.Context, item *MenuItem) error

	// FindByRestaurantNameOrSourceURL returns items whose restaurant
	// name contains nameFilter case-insensitively OR whose restaurant
	// source URL equals sourceURL exactly. The union is deliberate.
	// An empty nameFilter matches nothing, so the URL-only query
	// reduces to the exact URL condition. Ordered by scraped_at
	// descending.
	FindByRestaurantNameOrSourceURL(
		ctx context.Context,
		nameFilter string,
		sourceURL string,
	) ([]ItemRow, error)

	// FindByRestaurantName matches on the name substring alone.
	FindByRestaurantName(
		ctx context.Context,
		nameFilter string,
	) ([]ItemRow, error)

	// ListRecent returns at most limit items, scraped_at descending.
	ListRecent(ctx context.Context, limit int) ([]ItemRow, error)

	Count(ctx context.Context) (int64, error)
}
