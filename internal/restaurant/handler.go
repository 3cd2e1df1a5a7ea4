package restaurant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/logger"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// DELETE /api/restaurants/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	err := h.service.DeleteRestaurant(c.Request.Context(), id)
	if errors.Is(err, errs.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}
	if err != nil {
		logger.GetLogger().Errorw("failed to delete restaurant",
			"restaurant_id", id,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
