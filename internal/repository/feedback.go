// internal/repository/feedback.go
package repository

import (
	"context"
	"strings"
	"time"

	"tuali-backend/internal/models"
)

const feedbackColumns = "id, store_id, user_id, rating, nps, comment, created_at"

// feedbackSortColumns is the closed allow-list for the one place a
// column name reaches the query text. Anything else falls back to the
// default ordering.
var feedbackSortColumns = map[string]bool{
	"nps":        true,
	"rating":     true,
	"created_at": true,
	"store_id":   true,
}

const defaultFeedbackOrder = "created_at DESC"

// feedbackOrder resolves the requested sort against the allow-list.
func feedbackOrder(sortBy, sortDir string) string {
	if !feedbackSortColumns[sortBy] {
		return defaultFeedbackOrder
	}
	dir := strings.ToUpper(sortDir)
	if dir != "ASC" && dir != "DESC" {
		return defaultFeedbackOrder
	}
	return sortBy + " " + dir
}

// GetFeedback returns feedback rows matching the filter, ordered per
// the validated sort specification.
func (r *Repository) GetFeedback(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error) {
	start := time.Now()
	defer r.observe("feedback", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b := &condBuilder{}
	if filter.StoreID != 0 {
		b.add("store_id = $%d", filter.StoreID)
	}
	if filter.UserID != 0 {
		b.add("user_id = $%d", filter.UserID)
	}
	if filter.RatingMin != 0 {
		b.add("rating >= $%d", filter.RatingMin)
	}
	if filter.RatingMax != 0 {
		b.add("rating <= $%d", filter.RatingMax)
	}
	if filter.NPSMin != 0 {
		b.add("nps >= $%d", filter.NPSMin)
	}
	if filter.NPSMax != 0 {
		b.add("nps <= $%d", filter.NPSMax)
	}
	if filter.DateFrom != "" {
		b.add("created_at >= $%d", filter.DateFrom)
	}
	if filter.DateTo != "" {
		b.add("created_at <= $%d", filter.DateTo)
	}

	query := "SELECT " + feedbackColumns + " FROM feedback" + b.where() +
		" ORDER BY " + feedbackOrder(filter.SortBy, filter.SortDir)
	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, r.dataError("get_feedback", err)
	}
	defer closeRows(rows, r.logger)

	feedback := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.StoreID, &f.UserID, &f.Rating,
			&f.NPS, &f.Comment, &f.CreatedAt); err != nil {
			return nil, r.dataError("get_feedback", err)
		}
		feedback = append(feedback, f)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dataError("get_feedback", err)
	}
	return feedback, nil
}
