package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/logger"
)

// Counter reports storage totals. Implemented by menu.Service.
type Counter interface {
	TotalRestaurants(ctx context.Context) (int64, error)
	TotalMenuItems(ctx context.Context) (int64, error)
}

type Handler struct {
	counter Counter
}

func NewHandler(counter Counter) *Handler {
	return &Handler{counter: counter}
}

// --------------------------------------------------
// GET /api/health
// --------------------------------------------------
// Always answers 200. A storage failure is downgraded to
// status=DEGRADED with the error reported in-band.
func (h *Handler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	status := "UP"
	database := gin.H{"status": "CONNECTED"}

	restaurants, err := h.counter.TotalRestaurants(ctx)
	if err == nil {
		var menuItems int64
		menuItems, err = h.counter.TotalMenuItems(ctx)
		if err == nil {
			database["restaurants"] = restaurants
			database["menu_items"] = menuItems
		}
	}

	if err != nil {
		logger.GetLogger().Warnw("health probe: storage unreachable", "error", err)
		status = "DEGRADED"
		database = gin.H{
			"status": "DISCONNECTED",
			"error":  err.Error(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().Format("2006-01-02T15:04:05"),
		"database":  database,
	})
}
