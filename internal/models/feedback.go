// internal/models/feedback.go
package models

import "time"

// Feedback is the feedback table row.
type Feedback struct {
	ID        int       `json:"id"`
	StoreID   int       `json:"store_id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	NPS       float64   `json:"nps"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
