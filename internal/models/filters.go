// internal/models/filters.go
package models

import (
	"strconv"
	"strings"
)

// Per-entity filter structs. Each FromParams constructor is the single
// boundary where loosely-typed parameter bags (router output, query
// strings) are narrowed: recognized keys are parsed, everything else is
// ignored. Zero values mean "not filtered".

type UserFilter struct {
	ID       int
	Username string
	Email    string
	Role     string
}

func UserFilterFromParams(params map[string]string) UserFilter {
	return UserFilter{
		ID:       intParam(params, "id"),
		Username: params["username"],
		Email:    params["email"],
		Role:     params["role"],
	}
}

type StoreFilter struct {
	ID     int
	Nombre string
	NPSMin float64
	NPSMax float64

	// Radius search applies only when all three are set.
	Latitude  float64
	Longitude float64
	Radius    float64
}

// HasRadius reports whether the great-circle predicate applies.
func (f StoreFilter) HasRadius() bool {
	return f.Latitude != 0 && f.Longitude != 0 && f.Radius > 0
}

func StoreFilterFromParams(params map[string]string) StoreFilter {
	return StoreFilter{
		ID:        intParam(params, "id"),
		Nombre:    params["nombre"],
		NPSMin:    floatParam(params, "nps_min"),
		NPSMax:    floatParam(params, "nps_max"),
		Latitude:  floatParam(params, "latitude"),
		Longitude: floatParam(params, "longitude"),
		Radius:    floatParam(params, "radius"),
	}
}

type FeedbackFilter struct {
	StoreID   int
	UserID    int
	RatingMin int
	RatingMax int
	NPSMin    float64
	NPSMax    float64
	DateFrom  string
	DateTo    string
	SortBy    string
	SortDir   string
}

func FeedbackFilterFromParams(params map[string]string) FeedbackFilter {
	return FeedbackFilter{
		StoreID:   intParam(params, "store_id"),
		UserID:    intParam(params, "user_id"),
		RatingMin: intParam(params, "rating_min"),
		RatingMax: intParam(params, "rating_max"),
		NPSMin:    floatParam(params, "nps_min"),
		NPSMax:    floatParam(params, "nps_max"),
		DateFrom:  params["date_from"],
		DateTo:    params["date_to"],
		SortBy:    params["sort_by"],
		SortDir:   params["sort_direction"],
	}
}

type CitaFilter struct {
	ID       int
	StoreID  int
	UserID   int
	DateFrom string
	DateTo   string

	// Pointers because filtering on false is meaningful.
	Confirmed *bool
	Cancelled *bool
}

func CitaFilterFromParams(params map[string]string) CitaFilter {
	return CitaFilter{
		ID:        intParam(params, "id"),
		StoreID:   intParam(params, "store_id"),
		UserID:    intParam(params, "user_id"),
		DateFrom:  params["date_from"],
		DateTo:    params["date_to"],
		Confirmed: boolParam(params, "confirmed"),
		Cancelled: boolParam(params, "cancelled"),
	}
}

func intParam(params map[string]string, key string) int {
	if raw, ok := params[key]; ok {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return v
		}
	}
	return 0
}

func floatParam(params map[string]string, key string) float64 {
	if raw, ok := params[key]; ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return v
		}
	}
	return 0
}

func boolParam(params map[string]string, key string) *bool {
	raw, ok := params[key]
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}
