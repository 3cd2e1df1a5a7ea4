package menu

import (
	"strconv"
	"strings"

	"github.com/ChithoreTanay1/menu-scraper-api/internal/currency"
	"github.com/ChithoreTanay1/menu-scraper-api/internal/errs"
)

// ValidateItem checks one scraped record and returns a normalized
// copy (currency trimmed and upper-cased). The input is never
// mutated; callers must persist the returned copy.
func ValidateItem(req ItemRequest) (ItemRequest, error) {
	if strings.TrimSpace(req.Name) == "" {
		return req, errs.Validationf("Item name is required")
	}
	if strings.TrimSpace(req.RestaurantName) == "" {
		return req, errs.Validationf("Restaurant name is required")
	}
	if strings.TrimSpace(req.SourceURL) == "" {
		return req, errs.Validationf("Restaurant source URL is required")
	}

	price := string(req.Price)
	if price == "" {
		return req, errs.Validationf("Price is required")
	}
	value, err := strconv.ParseFloat(price, 64)
	if err != nil || strings.ContainsAny(price, "eE") {
		return req, errs.Validationf("Price must be a plain decimal number")
	}
	if value < 0 {
		return req, errs.Validationf("Price must be non-negative")
	}
	if priceScale(price) > 2 {
		return req, errs.Validationf("Price must have at most 2 decimal places")
	}

	if strings.TrimSpace(req.Currency) == "" {
		return req, errs.Validationf("Currency code is required")
	}
	code := currency.Normalize(req.Currency)
	if !currency.Valid(code) {
		return req, errs.Validationf("Invalid currency code: %s", code)
	}

	req.Currency = code
	return req, nil
}

func priceScale(literal string) int {
	dot := strings.IndexByte(literal, '.')
	if dot < 0 {
		return 0
	}
	return len(literal) - dot - 1
}
