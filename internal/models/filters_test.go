package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFilterFromParams_IgnoresUnknownKeys(t *testing.T) {
	f := UserFilterFromParams(map[string]string{
		"id":       "7",
		"username": "ana",
		"color":    "blue",
		"drop":     "users",
	})
	assert.Equal(t, 7, f.ID)
	assert.Equal(t, "ana", f.Username)
	assert.Empty(t, f.Email)
	assert.Empty(t, f.Role)
}

func TestUserFilterFromParams_BadIntFallsBackToZero(t *testing.T) {
	f := UserFilterFromParams(map[string]string{"id": "seven"})
	assert.Equal(t, 0, f.ID)
}

func TestStoreFilterFromParams_ParsesCoordinates(t *testing.T) {
	f := StoreFilterFromParams(map[string]string{
		"latitude":  "25.67",
		"longitude": "-100.31",
		"radius":    "10",
	})
	assert.Equal(t, 25.67, f.Latitude)
	assert.Equal(t, -100.31, f.Longitude)
	assert.Equal(t, 10.0, f.Radius)
	assert.True(t, f.HasRadius())
}

func TestStoreFilter_HasRadiusNeedsAllThree(t *testing.T) {
	assert.False(t, StoreFilter{Latitude: 25.67, Longitude: -100.31}.HasRadius())
	assert.False(t, StoreFilter{Latitude: 25.67, Radius: 10}.HasRadius())
	assert.False(t, StoreFilter{}.HasRadius())
}

func TestFeedbackFilterFromParams_CarriesSortKeys(t *testing.T) {
	f := FeedbackFilterFromParams(map[string]string{
		"store_id":       "5",
		"sort_by":        "nps",
		"sort_direction": "ASC",
		"date_from":      "2025-01-01",
	})
	assert.Equal(t, 5, f.StoreID)
	assert.Equal(t, "nps", f.SortBy)
	assert.Equal(t, "ASC", f.SortDir)
	assert.Equal(t, "2025-01-01", f.DateFrom)
}

func TestCitaFilterFromParams_BoolTristate(t *testing.T) {
	f := CitaFilterFromParams(map[string]string{"confirmed": "false"})
	require.NotNil(t, f.Confirmed)
	assert.False(t, *f.Confirmed)
	assert.Nil(t, f.Cancelled)

	f = CitaFilterFromParams(map[string]string{"confirmed": "true", "cancelled": "maybe"})
	require.NotNil(t, f.Confirmed)
	assert.True(t, *f.Confirmed)
	// unparseable bools mean "not filtered", same as absent
	assert.Nil(t, f.Cancelled)
}

func TestIntParam_TrimsWhitespace(t *testing.T) {
	f := CitaFilterFromParams(map[string]string{"store_id": " 3 "})
	assert.Equal(t, 3, f.StoreID)
}
