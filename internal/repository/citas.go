// internal/repository/citas.go
package repository

import (
	"context"
	"database/sql"
	"time"

	"tuali-backend/internal/models"
)

// GetCitas returns appointments matching the filter, each with its
// attendee list. The cita_users association is LEFT JOINed and rows are
// grouped client-side: the first row for an appointment id initializes
// the record, subsequent rows append a user when one is present. An
// appointment with no attendees gets an empty list, never nil.
func (r *Repository) GetCitas(ctx context.Context, filter models.CitaFilter) ([]models.Cita, error) {
	start := time.Now()
	defer r.observe("citas", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b := &condBuilder{}
	if filter.ID != 0 {
		b.add("c.id = $%d", filter.ID)
	}
	if filter.StoreID != 0 {
		b.add("c.store_id = $%d", filter.StoreID)
	}
	if filter.UserID != 0 {
		b.add("cu.user_id = $%d", filter.UserID)
	}
	if filter.DateFrom != "" {
		b.add("c.date >= $%d", filter.DateFrom)
	}
	if filter.DateTo != "" {
		b.add("c.date <= $%d", filter.DateTo)
	}
	if filter.Confirmed != nil {
		b.add("c.confirmed = $%d", *filter.Confirmed)
	}
	if filter.Cancelled != nil {
		b.add("c.cancelled = $%d", *filter.Cancelled)
	}

	query := `SELECT c.id, c.store_id, c.date, c.time, c.confirmed, c.cancelled,
	                 u.id, u.username
	            FROM citas c
	            LEFT JOIN cita_users cu ON cu.cita_id = c.id
	            LEFT JOIN users u ON u.id = cu.user_id` +
		b.where() + " ORDER BY c.id, cu.user_id"

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, r.dataError("get_citas", err)
	}
	defer closeRows(rows, r.logger)

	citas := []models.Cita{}
	index := map[int]int{} // cita id -> position in citas
	for rows.Next() {
		var c models.Cita
		var userID sql.NullInt64
		var username sql.NullString
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Date, &c.Time,
			&c.Confirmed, &c.Cancelled, &userID, &username); err != nil {
			return nil, r.dataError("get_citas", err)
		}

		pos, seen := index[c.ID]
		if !seen {
			c.Users = []models.UserRef{}
			citas = append(citas, c)
			pos = len(citas) - 1
			index[c.ID] = pos
		}
		if userID.Valid {
			citas[pos].Users = append(citas[pos].Users, models.UserRef{
				ID:       int(userID.Int64),
				Username: username.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, r.dataError("get_citas", err)
	}
	return citas, nil
}

// CreateCita inserts an appointment and links its attendees.
func (r *Repository) CreateCita(ctx context.Context, data models.NewCita) (*models.Cita, error) {
	start := time.Now()
	defer r.observe("citas", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.GetDB().BeginTx(ctx, nil)
	if err != nil {
		return nil, r.dataError("create_cita", err)
	}
	defer tx.Rollback()

	cita := models.Cita{
		StoreID: data.StoreID,
		Date:    data.Date,
		Time:    data.Time,
		Users:   []models.UserRef{},
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO citas (store_id, date, time, confirmed, cancelled)
		 VALUES ($1, $2, $3, false, false)
		 RETURNING id`,
		data.StoreID, data.Date, data.Time,
	).Scan(&cita.ID)
	if err != nil {
		return nil, r.dataError("create_cita", err)
	}

	for _, userID := range data.UserIDs {
		var ref models.UserRef
		err = tx.QueryRowContext(ctx,
			`INSERT INTO cita_users (cita_id, user_id)
			 SELECT $1, id FROM users WHERE id = $2
			 RETURNING user_id, (SELECT username FROM users WHERE id = $2)`,
			cita.ID, userID,
		).Scan(&ref.ID, &ref.Username)
		if err == sql.ErrNoRows {
			continue // unknown attendee ids are skipped, not errors
		}
		if err != nil {
			return nil, r.dataError("create_cita", err)
		}
		cita.Users = append(cita.Users, ref)
	}

	if err := tx.Commit(); err != nil {
		return nil, r.dataError("create_cita", err)
	}

	r.logger.Info("cita created", map[string]interface{}{
		"citaId":  cita.ID,
		"storeId": cita.StoreID,
		"users":   len(cita.Users),
	})
	return &cita, nil
}
