package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/archive"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/config"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/db"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/health"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/logger"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/menu"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/middleware"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/restaurant"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	log := logger.GetLogger()
	log.Infow("starting menu-scraper-api", "config", cfg.String())

	// ───────────────────────── DB ─────────────────────────
	ctx := context.Background()
	pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("database init failed", "error", err)
	}
	defer pool.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── ARCHIVE (OPTIONAL) ─────────────────────────
	var archiver menu.Archiver
	if cfg.Archive.Enabled() {
		client, err := archive.NewClient(ctx, cfg.Archive)
		if err != nil {
			log.Fatalw("archive init failed", "error", err)
		}
		archiver = client
		log.Info("batch payload archival enabled")
	}

	// ───────────────────────── REPOS & SERVICES ─────────────────────────
	restaurantRepo := restaurant.NewPostgresRepository(pool)
	menuRepo := menu.NewPostgresRepository(pool)

	menuService := menu.NewService(restaurantRepo, menuRepo)
	restaurantService := restaurant.NewService(restaurantRepo)

	menuHandler := menu.NewHandler(menuService, archiver)
	restaurantHandler := restaurant.NewHandler(restaurantService)
	healthHandler := health.NewHandler(menuService)

	// ───────────────────────── ROUTES ─────────────────────────
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)
		api.GET("/menu-items", menuHandler.GetMenuItems)

		writes := api.Group("")
		writes.Use(middleware.IngestAuth(cfg.IngestSecret))
		{
			writes.POST("/menu-items/batch", menuHandler.SaveBatch)
			writes.DELETE("/restaurants/:id", restaurantHandler.Delete)
		}
	}

	// ───────────────────────── START ─────────────────────────
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Infow("API listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
