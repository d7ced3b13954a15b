package userinfra

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/user"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresUserRepository(sqlx.NewDb(db, "postgres")), mock
}

var createdAt = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

var columns = []string{"id", "email", "full_name", "password_hash", "auth_provider", "google_id", "is_active", "is_verified", "created_at", "updated_at"}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	u := user.NewEmailUser("ada@example.com", "Ada", "hash", createdAt)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(u.ID, "ada@example.com", "Ada", "hash", "email", nil, true, false, createdAt, createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	u := user.NewEmailUser("ada@example.com", "Ada", "hash", createdAt)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), u)
	assert.True(t, errx.IsCode(err, user.CodeEmailAlreadyExists))
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("user-1", "ada@example.com", "Ada", nil, "google", "g-1", true, true, createdAt, createdAt))

	u, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, kernel.UserID("user-1"), u.ID)
	assert.Equal(t, user.AuthProviderGoogle, u.AuthProvider)
	assert.False(t, u.HasPassword())
	require.NotNil(t, u.GoogleID)
	assert.Equal(t, "g-1", *u.GoogleID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errx.IsCode(err, user.CodeUserNotFound))
}

func TestGetByID_DatabaseError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), "user-1")
	assert.True(t, errx.IsCode(err, user.CodeRepositoryFailed))
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)
	opts := kernel.PaginationOptions{Page: 2, PageSize: 1}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("user-2", "bob@example.com", "Bob", "hash", "email", nil, true, false, createdAt, createdAt))

	page, err := repo.List(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, kernel.Email("bob@example.com"), page.Items[0].Email)
	assert.Equal(t, 3, page.Page.Total)
	assert.Equal(t, 3, page.Page.Pages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
