package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/logger"
)

// Archiver stores raw batch payloads for audit/replay. Optional; a
// nil Archiver disables archival.
type Archiver interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
}

type Handler struct {
	service  *Service
	archiver Archiver
}

func NewHandler(service *Service, archiver Archiver) *Handler {
	return &Handler{service: service, archiver: archiver}
}

// --------------------------------------------------
// POST /api/menu-items/batch
// --------------------------------------------------
func (h *Handler) SaveBatch(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"message": "unreadable request body",
		})
		return
	}

	var req BatchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		message := "invalid JSON payload"
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && strings.HasSuffix(typeErr.Field, "price") {
			message = "invalid JSON payload: price must be a JSON number, not a string"
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"message": message,
		})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"message": "Menu items list cannot be empty",
		})
		return
	}

	h.archive(c.Request.Context(), raw)

	result, err := h.service.SaveBatch(c.Request.Context(), req.Items)
	if errors.Is(err, errs.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Conflict",
			"message": "Concurrent write detected, retry the batch",
		})
		return
	}
	if err != nil {
		logger.GetLogger().Errorw("batch save failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to process batch request",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Batch processed successfully",
		"saved_count":     result.SavedCount,
		"total_requested": len(req.Items),
		"results":         result.Results,
	})
}

// --------------------------------------------------
// GET /api/menu-items?restaurant=&source_url=
// --------------------------------------------------
func (h *Handler) GetMenuItems(c *gin.Context) {
	items, err := h.service.GetMenuItems(
		c.Request.Context(),
		c.Query("restaurant"),
		c.Query("source_url"),
	)
	if err != nil {
		logger.GetLogger().Errorw("menu item query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to query menu items",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// archive is best-effort: failures are logged and never fail the
// request.
func (h *Handler) archive(ctx context.Context, raw []byte) {
	if h.archiver == nil {
		return
	}

	key := fmt.Sprintf("batches/%s.json", uuid.New().String())
	if _, err := h.archiver.Put(ctx, key, raw); err != nil {
		logger.GetLogger().Warnw("failed to archive batch payload",
			"key", key,
			"error", err,
		)
	}
}
