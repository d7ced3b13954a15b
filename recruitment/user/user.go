package user

import (
	"time"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

// AuthProvider records how an account was created
type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	Email        kernel.Email  `db:"email" json:"email"`
	FullName     string        `db:"full_name" json:"full_name"`
	PasswordHash *string       `db:"password_hash" json:"-"`
	AuthProvider AuthProvider  `db:"auth_provider" json:"auth_provider"`
	GoogleID     *string       `db:"google_id" json:"-"`
	IsActive     bool          `db:"is_active" json:"is_active"`
	IsVerified   bool          `db:"is_verified" json:"is_verified"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasPassword reports whether the account can log in with a password
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// NewEmailUser builds an unverified password account
func NewEmailUser(email kernel.Email, fullName, passwordHash string, now time.Time) *User {
	return &User{
		ID:           kernel.NewUserID(kernel.GenerateID()),
		Email:        email,
		FullName:     fullName,
		PasswordHash: &passwordHash,
		AuthProvider: AuthProviderEmail,
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewGoogleUser builds a verified account from a Google sign-in
func NewGoogleUser(email kernel.Email, fullName, googleID string, now time.Time) *User {
	return &User{
		ID:           kernel.NewUserID(kernel.GenerateID()),
		Email:        email,
		FullName:     fullName,
		AuthProvider: AuthProviderGoogle,
		GoogleID:     &googleID,
		IsActive:     true,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
