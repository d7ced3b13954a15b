package user

import (
	"context"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

type Repository interface {
	// Create inserts a new user. A duplicate email yields ErrEmailAlreadyExists.
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// List retrieves users ordered by creation time
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[User], error)
}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(u *User) (string, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
