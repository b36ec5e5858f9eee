package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuali-backend/internal/models"
)

func feedbackRows(entries ...models.Feedback) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "store_id", "user_id", "rating", "nps", "comment", "created_at"})
	for _, f := range entries {
		rows.AddRow(f.ID, f.StoreID, f.UserID, f.Rating, f.NPS, f.Comment, f.CreatedAt)
	}
	return rows
}

func TestFeedbackOrder_AllowList(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		sortDir string
		want    string
	}{
		{"allow-listed column and direction", "nps", "ASC", "nps ASC"},
		{"lowercase direction accepted", "rating", "desc", "rating DESC"},
		{"unknown column falls back", "password; DROP TABLE feedback", "ASC", "created_at DESC"},
		{"unknown direction falls back", "nps", "SIDEWAYS", "created_at DESC"},
		{"empty sort falls back", "", "", "created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feedbackOrder(tt.sortBy, tt.sortDir))
		})
	}
}

func TestGetFeedback_SortRoundTrip(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	// An allow-listed field + direction reproduces that exact ordering.
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY nps ASC")).
		WithArgs(5).
		WillReturnRows(feedbackRows(
			models.Feedback{ID: 1, StoreID: 5, NPS: 10, CreatedAt: testCreatedAt},
			models.Feedback{ID: 2, StoreID: 5, NPS: 90, CreatedAt: testCreatedAt},
		))

	out, err := repo.GetFeedback(context.Background(), models.FeedbackFilter{
		StoreID: 5, SortBy: "nps", SortDir: "ASC",
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFeedback_InjectionAttemptFallsBack(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(feedbackRows())

	_, err := repo.GetFeedback(context.Background(), models.FeedbackFilter{
		SortBy: "1; DELETE FROM feedback --", SortDir: "ASC",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFeedback_RangeBoundsAreInclusivePredicates(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE rating >= $1 AND rating <= $2 AND created_at >= $3")).
		WithArgs(2, 4, "2025-01-01").
		WillReturnRows(feedbackRows())

	_, err := repo.GetFeedback(context.Background(), models.FeedbackFilter{
		RatingMin: 2, RatingMax: 4, DateFrom: "2025-01-01",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
