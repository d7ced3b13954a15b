package userinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/user"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresUserRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*PostgresUserRepository)(nil)

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, full_name, password_hash, auth_provider, google_id, is_active, is_verified, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (:id, :email, :full_name, :password_hash, :auth_provider, :google_id, :is_active, :is_verified, :created_at, :updated_at)`, u)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return user.ErrEmailAlreadyExists().WithDetail("email", u.Email)
		}
		return user.ErrRegistry.NewWithCause(user.CodeRepositoryFailed, err).
			WithDetail("operation", "insert")
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return r.getOne(ctx, "get_by_id", `WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return r.getOne(ctx, "get_by_email", `WHERE email = $1`, email)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, op, where string, arg any) (*user.User, error) {
	var u user.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users `+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound()
		}
		return nil, user.ErrRegistry.NewWithCause(user.CodeRepositoryFailed, err).
			WithDetail("operation", op)
	}
	return &u, nil
}

// List returns one page of users, oldest first
func (r *PostgresUserRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, user.ErrRegistry.NewWithCause(user.CodeRepositoryFailed, err).
			WithDetail("operation", "count")
	}

	var users []user.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, user.ErrRegistry.NewWithCause(user.CodeRepositoryFailed, err).
			WithDetail("operation", "list")
	}

	page := kernel.NewPaginated(users, pagination, total)
	return &page, nil
}
