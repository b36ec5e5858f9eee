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

func storeRows(stores ...models.Store) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "nombre", "direccion", "latitude", "longitude", "nps"})
	for _, s := range stores {
		rows.AddRow(s.ID, s.Nombre, s.Direccion, s.Latitude, s.Longitude, s.NPS)
	}
	return rows
}

func TestGetStores_NameAndNPSMin(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE nombre ILIKE $1 AND nps >= $2")).
		WithArgs("%oxxo%", 50.0).
		WillReturnRows(storeRows(
			models.Store{ID: 3, Nombre: "OXXO Paseo del Acueducto", NPS: 62},
		))

	stores, err := repo.GetStores(context.Background(), models.StoreFilter{
		Nombre: "oxxo", NPSMin: 50,
	})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "OXXO Paseo del Acueducto", stores[0].Nombre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStores_ByID(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(5).
		WillReturnRows(storeRows(models.Store{ID: 5, Nombre: "H-E-B Contry", NPS: 71}))

	stores, err := repo.GetStores(context.Background(), models.StoreFilter{ID: 5})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, 71.0, stores[0].NPS)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStores_RadiusAddsHaversinePredicate(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	// Haversine with 6371 km earth radius; lat binds twice.
	mock.ExpectQuery(regexp.QuoteMeta(
		"6371 * acos(cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2)) + sin(radians($3)) * sin(radians(latitude))) <= $4")).
		WithArgs(25.67, -100.31, 25.67, 10.0).
		WillReturnRows(storeRows())

	_, err := repo.GetStores(context.Background(), models.StoreFilter{
		Latitude: 25.67, Longitude: -100.31, Radius: 10,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStores_PartialCoordinatesSkipRadius(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	// Radius without longitude: plain unfiltered select.
	mock.ExpectQuery(regexp.QuoteMeta("FROM stores ORDER BY id")).
		WillReturnRows(storeRows())

	_, err := repo.GetStores(context.Background(), models.StoreFilter{
		Latitude: 25.67, Radius: 10,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreByID_Unknown(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery("FROM stores WHERE id").
		WithArgs(99).
		WillReturnRows(storeRows())

	store, err := repo.StoreByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeastVisitedStores(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"id", "nombre", "direccion", "latitude", "longitude", "nps", "visit_count"}).
		AddRow(2, "H-E-B Contry", "", 0.0, 0.0, 71.0, 0).
		AddRow(1, "OXXO Centro", "", 0.0, 0.0, 55.0, 3)
	mock.ExpectQuery("ORDER BY visit_count ASC").WillReturnRows(rows)

	out, err := repo.LeastVisitedStores(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].VisitCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"users", "stores", "citas", "avg_nps"}).
			AddRow(12, 4, 30, 61.5))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalUsers)
	assert.Equal(t, 61.5, stats.AverageNPS)
	assert.NoError(t, mock.ExpectationsWereMet())
}
