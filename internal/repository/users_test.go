package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuali-backend/internal/common/database"
	"tuali-backend/internal/common/errors"
	"tuali-backend/internal/common/logger"
	"tuali-backend/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := New(&database.PostgresClient{DB: db}, logger.NewTestLogger(t), 5*time.Second)
	return repo, mock, func() { db.Close() }
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "username", "password", "email", "first_name", "last_name", "role", "created_at",
	})
	for _, u := range users {
		rows.AddRow(u.ID, u.Username, u.Password, u.Email, u.FirstName, u.LastName, u.Role, u.CreatedAt)
	}
	return rows
}

var testCreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// ==========================
// GetUsers
// ==========================

func TestGetUsers_NoFilter(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, username, password, email, first_name, last_name, role, created_at FROM users ORDER BY id")).
		WillReturnRows(userRows(
			models.User{ID: 1, Username: "ana", Role: "admin", CreatedAt: testCreatedAt},
			models.User{ID: 2, Username: "bob", Role: "user", CreatedAt: testCreatedAt},
		))

	users, err := repo.GetUsers(context.Background(), models.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "ana", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUsers_UsernameSubstringCaseInsensitive(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("username ILIKE $1")).
		WithArgs("%Ana%").
		WillReturnRows(userRows(models.User{ID: 1, Username: "ana", CreatedAt: testCreatedAt}))

	users, err := repo.GetUsers(context.Background(), models.UserFilter{Username: "Ana"})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUsers_CombinedFiltersKeepPlaceholderOrder(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND username ILIKE $2 AND role = $3")).
		WithArgs(7, "%ana%", "admin").
		WillReturnRows(userRows())

	users, err := repo.GetUsers(context.Background(), models.UserFilter{
		ID: 7, Username: "ana", Role: "admin",
	})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUsers_QueryError(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

	_, err := repo.GetUsers(context.Background(), models.UserFilter{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDataAccessFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Idempotence: the same filter against unchanged data returns equal results.
func TestGetUsers_Idempotent(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT").WillReturnRows(userRows(
			models.User{ID: 1, Username: "ana", CreatedAt: testCreatedAt},
		))
	}

	first, err := repo.GetUsers(context.Background(), models.UserFilter{})
	require.NoError(t, err)
	second, err := repo.GetUsers(context.Background(), models.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Login
// ==========================

func TestLogin_Match(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 AND password = $2")).
		WithArgs("ana", "secret").
		WillReturnRows(userRows(models.User{
			ID: 1, Username: "ana", Password: "secret", Role: "admin", CreatedAt: testCreatedAt,
		}))

	user, err := repo.Login(context.Background(), "ana", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_NoMatchReturnsNil(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery("WHERE username").
		WithArgs("ana", "wrong").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.Login(context.Background(), "ana", "wrong")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Register
// ==========================

func TestRegister_DefaultsRole(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE username = $1 OR email = $2")).
		WithArgs("bob", "a@a.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("bob", "x", "a@a.com", "", "", "user").
		WillReturnRows(userRows(models.User{
			ID: 5, Username: "bob", Password: "x", Email: "a@a.com", Role: "user", CreatedAt: testCreatedAt,
		}))

	user, err := repo.Register(context.Background(), models.NewUser{
		Username: "bob", Password: "x", Email: "a@a.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateFails(t *testing.T) {
	repo, mock, done := newTestRepo(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("bob", "a@a.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.Register(context.Background(), models.NewUser{
		Username: "bob", Password: "x", Email: "a@a.com",
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDuplicateUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}
