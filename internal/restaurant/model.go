package restaurant

import "time"

// Restaurant is de-duplicated by SourceURL: exactly one row exists
// per distinct source URL, and the name tracks the most recently
// scraped value.
type Restaurant struct {
	ID        string
	Name      string
	SourceURL string
	CreatedAt time.Time
}
