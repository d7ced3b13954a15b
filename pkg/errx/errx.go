package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error independently of its domain code
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeUnauthorized  Type = "UNAUTHORIZED"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// defaultStatus is used when an error is built outside a registry
func (t Type) defaultStatus() int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error value shared by every domain package
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two errx errors by code so sentinel comparisons work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy of the error with one more detail entry
func (e *Error) WithDetail(key string, value any) *Error {
	c := e.clone()
	c.Details[key] = value
	return c
}

// WithDetails returns a copy of the error with the given detail entries merged in
func (e *Error) WithDetails(details map[string]any) *Error {
	c := e.clone()
	for k, v := range details {
		c.Details[k] = v
	}
	return c
}

// WithCause returns a copy of the error wrapping cause
func (e *Error) WithCause(cause error) *Error {
	c := e.clone()
	c.Cause = cause
	return c
}

// ToHTTPResponse renders the error body returned by the API
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

func (e *Error) clone() *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	return &Error{
		Code:       e.Code,
		Type:       e.Type,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		Details:    details,
		Cause:      e.Cause,
	}
}

// New builds an ad-hoc error that does not belong to a registry
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: t.defaultStatus(),
		Details:    map[string]any{},
	}
}

// Wrap attaches a message and type to err. An *Error passes through untouched
// so domain codes survive service layers.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(message, t).WithCause(err)
}

// As extracts an *Error from err
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err is an *Error with the given code
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == string(code)
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, t Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}
