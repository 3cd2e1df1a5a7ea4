package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/logger"
)

func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "invalid DATABASE_URL")
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "postgres connection failed")
	}

	logger.GetLogger().Info("connected to postgres")

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}

	return pool, nil
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, pool *pgxpool.Pool) error {

	// -------------------------------
	// RESTAURANTS
	// -------------------------------
	restaurantsSQL := `
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			source_url VARCHAR(500) NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, restaurantsSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU ITEMS
	// -------------------------------
	menuItemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DECIMAL(10,2) NOT NULL,
			currency CHAR(3) NOT NULL,
			scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_menu_items_scraped_at
		ON menu_items (scraped_at DESC)
	`
	if _, err := pool.Exec(ctx, indexSQL); err != nil {
		return err
	}

	logger.GetLogger().Info("schema initialized")
	return nil
}
