package domain

import (
	"time"
)

// Comment represents a product comment with a rating, submitted by a user.
// Comments are never edited, only created and deleted.
type Comment struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingSummary contains aggregate comment statistics for a product.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int     `json:"total_count"`
}
