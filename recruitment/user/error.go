package user

import (
	"net/http"

	"github.com/Abraxas-365/careerpal/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

var (
	CodeUserNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeEmailAlreadyExists = ErrRegistry.Register("EMAIL_EXISTS", errx.TypeConflict, http.StatusConflict, "Email already registered")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid credentials")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
	CodeInactiveUser       = ErrRegistry.Register("INACTIVE", errx.TypeAuthorization, http.StatusForbidden, "User account is disabled")
	CodeTokenFailed        = ErrRegistry.Register("TOKEN_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to issue access token")
	CodeRepositoryFailed   = ErrRegistry.Register("REPOSITORY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "User storage operation failed")
)

func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrEmailAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyExists)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInactiveUser() *errx.Error {
	return ErrRegistry.New(CodeInactiveUser)
}

func ErrTokenFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenFailed)
}

func ErrRepositoryFailed() *errx.Error {
	return ErrRegistry.New(CodeRepositoryFailed)
}
