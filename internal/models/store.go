// internal/models/store.go
package models

// Store is the stores table row. Nombre keeps the domain's Spanish
// naming; the mobile app and the store dataset both use it.
type Store struct {
	ID        int     `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion string  `json:"direccion"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	NPS       float64 `json:"nps"`
}

// StoreVisits pairs a store with its appointment count for the
// least-visited ranking.
type StoreVisits struct {
	Store
	VisitCount int `json:"visit_count"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers  int     `json:"total_users"`
	TotalStores int     `json:"total_stores"`
	TotalCitas  int     `json:"total_citas"`
	AverageNPS  float64 `json:"average_nps"`
}
