package restaurant

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Lookup by source URL (the de-duplication key)
// --------------------------------------------------
func (r *PostgresRepository) FindBySourceURL(
	ctx context.Context,
	sourceURL string,
) (*Restaurant, error) {

	query := `
		SELECT id, name, source_url, created_at
		FROM restaurants
		WHERE source_url = $1
	`

	var res Restaurant
	err := r.db.QueryRow(ctx, query, sourceURL).Scan(
		&res.ID,
		&res.Name,
		&res.SourceURL,
		&res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find restaurant by source url")
	}

	return &res, nil
}

// --------------------------------------------------
// Create a new restaurant
// --------------------------------------------------
// The UNIQUE constraint on source_url is the real guard against the
// find-or-create race; a unique violation here means another writer
// won and the caller should re-read.
func (r *PostgresRepository) Create(
	ctx context.Context,
	restaurant *Restaurant,
) error {

	restaurant.ID = uuid.New().String()

	query := `
		INSERT INTO restaurants (id, name, source_url)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		restaurant.ID,
		restaurant.Name,
		restaurant.SourceURL,
	).Scan(&restaurant.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.ErrConflict
	}
	if err != nil {
		return errors.Wrap(err, "create restaurant")
	}

	return nil
}

// --------------------------------------------------
// Update display name
// --------------------------------------------------
func (r *PostgresRepository) UpdateName(
	ctx context.Context,
	id string,
	name string,
) error {

	_, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET name = $2
		WHERE id = $1
	`, id, name)

	return errors.Wrap(err, "update restaurant name")
}

// --------------------------------------------------
// Explicit cascade delete
// --------------------------------------------------
func (r *PostgresRepository) DeleteByID(
	ctx context.Context,
	id string,
) (bool, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, errors.Wrap(err, "begin delete transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM menu_items
		WHERE restaurant_id = $1
	`, id); err != nil {
		return false, errors.Wrap(err, "delete owned menu items")
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM restaurants
		WHERE id = $1
	`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete restaurant")
	}

	if err := tx.Commit(ctx); err != nil {
		return false, errors.Wrap(err, "commit delete transaction")
	}

	return tag.RowsAffected() > 0, nil
}

// --------------------------------------------------
// Count (health probe)
// --------------------------------------------------
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count)
	return count, errors.Wrap(err, "count restaurants")
}
