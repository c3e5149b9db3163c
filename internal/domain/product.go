package domain

import (
	"time"
)

// Sort keys accepted by the product listing.
const (
	SortKeyName      = "name"
	SortKeyCategory  = "category"
	SortKeyPrice     = "price"
	SortKeyRating    = "rating"
	SortKeyCreatedAt = "created_at"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Product represents a product in the catalog. Rating is the denormalized
// mean of the product's comment ratings, rounded to two decimals, and is
// resynced on every detail view.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category groups products. Categories are reference data here; they are
// created and maintained outside this service.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ValidSortKeys returns the set of sort keys the listing accepts.
func ValidSortKeys() []string {
	return []string{SortKeyName, SortKeyCategory, SortKeyPrice, SortKeyRating, SortKeyCreatedAt}
}

// IsValidSortKey checks whether the given key is an accepted listing sort key.
func IsValidSortKey(key string) bool {
	for _, k := range ValidSortKeys() {
		if k == key {
			return true
		}
	}
	return false
}
