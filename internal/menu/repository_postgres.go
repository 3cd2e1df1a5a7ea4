package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Insert a menu item
// --------------------------------------------------
func (r *PostgresRepository) Insert(ctx context.Context, item *MenuItem) error {
	item.ID = uuid.New().String()

	query := `
		INSERT INTO menu_items (id, restaurant_id, name, description, price, currency)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5::numeric, $6)
		RETURNING scraped_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.Description,
		item.Price,
		item.Currency,
	).Scan(&item.ScrapedAt)

	return errors.Wrap(err, "insert menu item")
}

const itemColumns = `
	SELECT
		mi.id,
		r.name,
		r.source_url,
		mi.name,
		COALESCE(mi.description, ''),
		mi.price::text,
		mi.currency,
		mi.scraped_at
	FROM menu_items mi
	JOIN restaurants r ON r.id = mi.restaurant_id
`

// --------------------------------------------------
// Name-contains OR exact-URL union query
// --------------------------------------------------
func (r *PostgresRepository) FindByRestaurantNameOrSourceURL(
	ctx context.Context,
	nameFilter string,
	sourceURL string,
) ([]ItemRow, error) {

	query := itemColumns + `
		WHERE ($1 <> '' AND LOWER(r.name) LIKE '%' || LOWER($1) || '%')
		   OR r.source_url = $2
		ORDER BY mi.scraped_at DESC
	`

	rows, err := r.db.Query(ctx, query, nameFilter, sourceURL)
	if err != nil {
		return nil, errors.Wrap(err, "query by restaurant name or source url")
	}
	return scanItemRows(rows)
}

// --------------------------------------------------
// Name-contains query
// --------------------------------------------------
func (r *PostgresRepository) FindByRestaurantName(
	ctx context.Context,
	nameFilter string,
) ([]ItemRow, error) {

	query := itemColumns + `
		WHERE LOWER(r.name) LIKE '%' || LOWER($1) || '%'
		ORDER BY mi.scraped_at DESC
	`

	rows, err := r.db.Query(ctx, query, nameFilter)
	if err != nil {
		return nil, errors.Wrap(err, "query by restaurant name")
	}
	return scanItemRows(rows)
}

// --------------------------------------------------
// Bounded unfiltered listing
// --------------------------------------------------
func (r *PostgresRepository) ListRecent(
	ctx context.Context,
	limit int,
) ([]ItemRow, error) {

	query := itemColumns + `
		ORDER BY mi.scraped_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list recent menu items")
	}
	return scanItemRows(rows)
}

// --------------------------------------------------
// Count (health probe)
// --------------------------------------------------
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count)
	return count, errors.Wrap(err, "count menu items")
}

func scanItemRows(rows pgx.Rows) ([]ItemRow, error) {
	defer rows.Close()

	var items []ItemRow
	for rows.Next() {
		var row ItemRow
		if err := rows.Scan(
			&row.ID,
			&row.RestaurantName,
			&row.SourceURL,
			&row.Name,
			&row.Description,
			&row.Price,
			&row.Currency,
			&row.ScrapedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan menu item row")
		}
		items = append(items, row)
	}

	return items, errors.Wrap(rows.Err(), "iterate menu item rows")
}
