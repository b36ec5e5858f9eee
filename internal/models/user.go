// internal/models/user.go
package models

import "time"

// User is the users table row. Password is never serialized.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser is the register payload. Role defaults to "user" when empty.
type NewUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// UserRef is the slim view embedded in a cita's attendee list.
type UserRef struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
