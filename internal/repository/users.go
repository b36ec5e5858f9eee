// internal/repository/users.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tuali-backend/internal/common/errors"
	"tuali-backend/internal/models"
)

const userColumns = "id, username, password, email, first_name, last_name, role, created_at"

// GetUsers returns the users matching the filter. Username matches are
// case-insensitive substrings; the rest are exact.
func (r *Repository) GetUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	start := time.Now()
	defer r.observe("users", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b := &condBuilder{}
	if filter.ID != 0 {
		b.add("id = $%d", filter.ID)
	}
	if filter.Username != "" {
		b.add("username ILIKE $%d", "%"+filter.Username+"%")
	}
	if filter.Email != "" {
		b.add("email = $%d", filter.Email)
	}
	if filter.Role != "" {
		b.add("role = $%d", filter.Role)
	}

	query := "SELECT " + userColumns + " FROM users" + b.where() + " ORDER BY id"
	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, r.dataError("get_users", err)
	}
	defer closeRows(rows, r.logger)

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Email,
			&u.FirstName, &u.LastName, &u.Role, &u.CreatedAt); err != nil {
			return nil, r.dataError("get_users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dataError("get_users", err)
	}
	return users, nil
}

// Login performs an exact credential match and returns the full row or
// nil when nothing matched. The comparison is plaintext equality, kept
// compatible with the existing user table; replacing it with a salted
// hash requires a credential migration (see DESIGN.md).
func (r *Repository) Login(ctx context.Context, username, password string) (*models.User, error) {
	start := time.Now()
	defer r.observe("users", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1 AND password = $2",
		username, password,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Email,
		&u.FirstName, &u.LastName, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, r.dataError("login", err)
	}
	return &u, nil
}

// Register inserts a new user after checking uniqueness on username OR
// email. Role defaults to "user" when unspecified.
func (r *Repository) Register(ctx context.Context, data models.NewUser) (*models.User, error) {
	start := time.Now()
	defer r.observe("users", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var existing int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE username = $1 OR email = $2",
		data.Username, data.Email,
	).Scan(&existing)
	if err != nil {
		return nil, r.dataError("register", err)
	}
	if existing > 0 {
		return nil, errors.NewDuplicateUserError(
			fmt.Sprintf("username %q or email %q already taken", data.Username, data.Email))
	}

	role := data.Role
	if role == "" {
		role = "user"
	}

	var u models.User
	err = r.db.QueryRow(ctx,
		`INSERT INTO users (username, password, email, first_name, last_name, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		data.Username, data.Password, data.Email, data.FirstName, data.LastName, role,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Email,
		&u.FirstName, &u.LastName, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, r.dataError("register", err)
	}

	r.logger.Info("user registered", map[string]interface{}{
		"userId":   u.ID,
		"username": u.Username,
		"role":     u.Role,
	})
	return &u, nil
}
