package user

import (
	"time"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

// RegisterRequest - DTO for creating a password account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"max=200"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest - DTO for password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleCallbackRequest carries the identity returned by Google sign-in
type GoogleCallbackRequest struct {
	Email    string `json:"email"`
	GoogleID string `json:"google_id"`
	FullName string `json:"full_name"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// UserResponse - DTO for returning user data
type UserResponse struct {
	ID           kernel.UserID `json:"id"`
	Email        kernel.Email  `json:"email"`
	FullName     string        `json:"full_name"`
	AuthProvider AuthProvider  `json:"auth_provider"`
	IsActive     bool          `json:"is_active"`
	IsVerified   bool          `json:"is_verified"`
	CreatedAt    time.Time     `json:"created_at"`
}

type PaginatedUsersResponse = kernel.Paginated[UserResponse]

type LookupResponse struct {
	UserID kernel.UserID `json:"user_id"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		AuthProvider: u.AuthProvider,
		IsActive:     u.IsActive,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}
