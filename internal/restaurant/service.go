package restaurant

import (
	"context"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/logger"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Delete restaurant (cascades to its menu items)
// --------------------------------------------------
func (s *Service) DeleteRestaurant(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.ErrNotFound
	}

	logger.GetLogger().Infow("restaurant deleted", "restaurant_id", id)
	return nil
}
