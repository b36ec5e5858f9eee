// internal/repository/stores.go
package repository

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"tuali-backend/internal/models"
)

const storeColumns = "id, nombre, direccion, latitude, longitude, nps"

// GetStores returns the stores matching the filter. Name matches are
// case-insensitive substrings. When latitude, longitude and radius are
// all present a Haversine great-circle predicate restricts results to
// stores within radius kilometers; the spherical-earth approximation is
// accepted for this use.
func (r *Repository) GetStores(ctx context.Context, filter models.StoreFilter) ([]models.Store, error) {
	start := time.Now()
	defer r.observe("stores", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b := &condBuilder{}
	if filter.ID != 0 {
		b.add("id = $%d", filter.ID)
	}
	if filter.Nombre != "" {
		b.add("nombre ILIKE $%d", "%"+filter.Nombre+"%")
	}
	if filter.NPSMin != 0 {
		b.add("nps >= $%d", filter.NPSMin)
	}
	if filter.NPSMax != 0 {
		b.add("nps <= $%d", filter.NPSMax)
	}
	if filter.HasRadius() {
		b.add(
			"6371 * acos(cos(radians($%d)) * cos(radians(latitude)) * cos(radians(longitude) - radians($%d)) + sin(radians($%d)) * sin(radians(latitude))) <= $%d",
			filter.Latitude, filter.Longitude, filter.Latitude, filter.Radius,
		)
	}

	query := "SELECT " + storeColumns + " FROM stores" + b.where() + " ORDER BY id"
	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, r.dataError("get_stores", err)
	}
	defer closeRows(rows, r.logger)

	stores := []models.Store{}
	for rows.Next() {
		var s models.Store
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Direccion, &s.Latitude, &s.Longitude, &s.NPS); err != nil {
			return nil, r.dataError("get_stores", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dataError("get_stores", err)
	}
	return stores, nil
}

// StoreByID returns a single store or nil when the id is unknown.
func (r *Repository) StoreByID(ctx context.Context, id int) (*models.Store, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var s models.Store
	err := r.db.QueryRow(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE id = $1", id,
	).Scan(&s.ID, &s.Nombre, &s.Direccion, &s.Latitude, &s.Longitude, &s.NPS)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, r.dataError("store_by_id", err)
	}
	return &s, nil
}

// LeastVisitedStores ranks stores by ascending appointment count.
func (r *Repository) LeastVisitedStores(ctx context.Context, limit int) ([]models.StoreVisits, error) {
	start := time.Now()
	defer r.observe("stores", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.nombre, s.direccion, s.latitude, s.longitude, s.nps,
		        COUNT(c.id) AS visit_count
		   FROM stores s
		   LEFT JOIN citas c ON c.store_id = s.id
		  GROUP BY s.id, s.nombre, s.direccion, s.latitude, s.longitude, s.nps
		  ORDER BY visit_count ASC, s.id ASC
		  LIMIT `+strconv.Itoa(limit))
	if err != nil {
		return nil, r.dataError("least_visited_stores", err)
	}
	defer closeRows(rows, r.logger)

	out := []models.StoreVisits{}
	for rows.Next() {
		var sv models.StoreVisits
		if err := rows.Scan(&sv.ID, &sv.Nombre, &sv.Direccion, &sv.Latitude,
			&sv.Longitude, &sv.NPS, &sv.VisitCount); err != nil {
			return nil, r.dataError("least_visited_stores", err)
		}
		out = append(out, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dataError("least_visited_stores", err)
	}
	return out, nil
}

// Stats returns the admin dashboard aggregate counts.
func (r *Repository) Stats(ctx context.Context) (*models.Stats, error) {
	start := time.Now()
	defer r.observe("stats", start)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var st models.Stats
	err := r.db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM stores),
		        (SELECT COUNT(*) FROM citas),
		        (SELECT COALESCE(AVG(nps), 0) FROM stores)`,
	).Scan(&st.TotalUsers, &st.TotalStores, &st.TotalCitas, &st.AverageNPS)
	if err != nil {
		return nil, r.dataError("stats", err)
	}
	return &st, nil
}
