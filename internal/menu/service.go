package menu

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/logger"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/restaurant"
)

// listLimit bounds the unfiltered query.
const listLimit = 100

type Service struct {
	restaurants restaurant.Repository
	items       Repository
}

func NewService(restaurants restaurant.Repository, items Repository) *Service {
	return &Service{restaurants: restaurants, items: items}
}

// --------------------------------------------------
// Batch save (BEST-EFFORT)
// --------------------------------------------------
// Records are processed sequentially in input order. A record that
// fails validation is skipped and reported in Results; already-saved
// records stay saved. Storage errors abort the whole call.
func (s *Service) SaveBatch(
	ctx context.Context,
	items []ItemRequest,
) (*BatchResult, error) {

	result := &BatchResult{
		Results: make([]ItemResult, 0, len(items)),
	}

	for i, req := range items {
		normalized, err := ValidateItem(req)
		if err != nil {
			if !errs.IsValidation(err) {
				return nil, err
			}
			logger.GetLogger().Warnw("rejected menu item",
				"index", i,
				"restaurant", req.RestaurantName,
				"item", req.Name,
				"reason", err.Error(),
			)
			result.Results = append(result.Results, ItemResult{
				Index:  i,
				Status: StatusRejected,
				Error:  err.Error(),
			})
			continue
		}

		if err := s.saveItem(ctx, normalized); err != nil {
			logger.GetLogger().Errorw("failed to save menu item",
				"index", i,
				"restaurant", normalized.RestaurantName,
				"item", normalized.Name,
				"error", err,
			)
			return nil, err
		}

		result.SavedCount++
		result.Results = append(result.Results, ItemResult{
			Index:  i,
			Status: StatusSaved,
		})
	}

	return result, nil
}

func (s *Service) saveItem(ctx context.Context, req ItemRequest) error {
	owner, err := s.resolveRestaurant(ctx, req.RestaurantName, req.SourceURL)
	if err != nil {
		return err
	}

	item := &MenuItem{
		RestaurantID: owner.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        string(req.Price),
		Currency:     req.Currency,
	}

	return s.items.Insert(ctx, item)
}

// resolveRestaurant finds or creates the restaurant owning sourceURL.
// Losing the creation race to a concurrent batch is recovered by
// re-reading the winner; a second miss surfaces errs.ErrConflict.
func (s *Service) resolveRestaurant(
	ctx context.Context,
	name string,
	sourceURL string,
) (*restaurant.Restaurant, error) {

	owner, err := s.restaurants.FindBySourceURL(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	if owner == nil {
		created := &restaurant.Restaurant{Name: name, SourceURL: sourceURL}
		err := s.restaurants.Create(ctx, created)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}

		owner, err = s.restaurants.FindBySourceURL(ctx, sourceURL)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, errs.ErrConflict
		}
	}

	if owner.Name != name {
		if err := s.restaurants.UpdateName(ctx, owner.ID, name); err != nil {
			return nil, err
		}
		owner.Name = name
	}

	return owner, nil
}

// --------------------------------------------------
// Read queries
// --------------------------------------------------
// With both filters present the conditions are OR-ed, not AND-ed:
// items match on either the name substring or the exact URL. The
// URL-only case reuses the same query with an empty name filter;
// the empty filter matches nothing, leaving only the URL condition.
func (s *Service) GetMenuItems(
	ctx context.Context,
	restaurantName string,
	sourceURL string,
) ([]ItemResponse, error) {

	hasName := strings.TrimSpace(restaurantName) != ""
	hasURL := strings.TrimSpace(sourceURL) != ""

	var (
		rows []ItemRow
		err  error
	)
	switch {
	case hasName && hasURL:
		rows, err = s.items.FindByRestaurantNameOrSourceURL(ctx, restaurantName, sourceURL)
	case hasName:
		rows, err = s.items.FindByRestaurantName(ctx, restaurantName)
	case hasURL:
		rows, err = s.items.FindByRestaurantNameOrSourceURL(ctx, "", sourceURL)
	default:
		rows, err = s.items.ListRecent(ctx, listLimit)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, row.toResponse())
	}
	return responses, nil
}

// --------------------------------------------------
// Totals (health probe)
// --------------------------------------------------
func (s *Service) TotalMenuItems(ctx context.Context) (int64, error) {
	return s.items.Count(ctx)
}

func (s *Service) TotalRestaurants(ctx context.Context) (int64, error) {
	return s.restaurants.Count(ctx)
}
