// internal/models/cita.go
package models

// Cita is an appointment linking a store, a date/time and zero or more
// attending users. Users is always non-nil, in first-seen join order.
type Cita struct {
	ID        int       `json:"id"`
	StoreID   int       `json:"store_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Confirmed bool      `json:"confirmed"`
	Cancelled bool      `json:"cancelled"`
	Users     []UserRef `json:"users"`
}

// NewCita is the appointment creation payload.
type NewCita struct {
	StoreID int    `json:"store_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	UserIDs []int  `json:"user_ids"`
}
