package errx

import (
	"fmt"
	"sync"
)

// Code is a fully qualified error code, e.g. "RESUME.NOT_FOUND"
type Code string

type definition struct {
	errType Type
	status  int
	message string
}

// Registry namespaces error codes for one domain
type Registry struct {
	prefix string
	mu     sync.RWMutex
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. Registering the same code twice panics, it is a programming error.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(fmt.Sprintf("%s.%s", r.prefix, code))

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[full]; exists {
		panic(fmt.Sprintf("errx: duplicate code %s", full))
	}
	r.defs[full] = definition{errType: t, status: httpStatus, message: message}
	return full
}

// New creates an error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		return New(fmt.Sprintf("unregistered error code %s", code), TypeInternal)
	}
	return &Error{
		Code:       string(code),
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.status,
		Details:    map[string]any{},
	}
}

// NewWithCause creates an error for a registered code wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}

// NewWithMessage creates an error for a registered code with a custom message
func (r *Registry) NewWithMessage(code Code, message string) *Error {
	e := r.New(code)
	e.Message = message
	return e
}
