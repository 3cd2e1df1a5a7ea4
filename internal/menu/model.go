package menu

import (
	"encoding/json"
	"time"
)

// BatchRequest is the envelope posted by scrapers.
type BatchRequest struct {
	Items []ItemRequest `json:"items"`
}

// ItemRequest is one scraped menu item. Price stays a json.Number so
// the wire literal keeps its exact decimal scale for validation.
type ItemRequest struct {
	RestaurantName string      `json:"restaurant_name"`
	SourceURL      string      `json:"source_url"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Price          json.Number `json:"price"`
	Currency       string      `json:"currency"`
}

// MenuItem is the persisted row. Items are written once and never
// updated; deletion only happens through the owning restaurant.
type MenuItem struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Price        string
	Currency     string
	ScrapedAt    time.Time
}

// ItemRow is a menu item joined with its owning restaurant, as read
// back from storage.
type ItemRow struct {
	ID             string
	RestaurantName string
	SourceURL      string
	Name           string
	Description    string
	Price          string
	Currency       string
	ScrapedAt      time.Time
}

// ItemResponse is the denormalized projection returned to callers.
type ItemResponse struct {
	ID             string      `json:"id"`
	RestaurantName string      `json:"restaurant_name"`
	SourceURL      string      `json:"source_url"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	Price          json.Number `json:"price"`
	Currency       string      `json:"currency"`
	ScrapedAt      string      `json:"scraped_at"`
}

const (
	StatusSaved    = "saved"
	StatusRejected = "rejected"
)

// ItemResult reports the outcome of a single record within a batch.
type ItemResult struct {
	Index  int    `json:"index"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BatchResult aggregates a best-effort batch: SavedCount only counts
// the records that made it to storage.
type BatchResult struct {
	SavedCount int
	Results    []ItemResult
}

const scrapedAtLayout = "2006-01-02T15:04:05"

func (r ItemRow) toResponse() ItemResponse {
	return ItemResponse{
		ID:             r.ID,
		RestaurantName: r.RestaurantName,
		SourceURL:      r.SourceURL,
		Name:           r.Name,
		Description:    r.Description,
		Price:          json.Number(r.Price),
		Currency:       r.Currency,
		ScrapedAt:      r.ScrapedAt.Format(scrapedAtLayout),
	}
}
