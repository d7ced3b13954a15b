package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_NewCarriesDefinition(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "thing not found")

	err := reg.New(code)

	assert.Equal(t, "TEST.NOT_FOUND", err.Code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "thing not found", err.Message)
}

func TestRegistry_DuplicateCodePanics(t *testing.T) {
	reg := NewRegistry("DUP")
	reg.Register("X", TypeInternal, http.StatusInternalServerError, "x")

	assert.Panics(t, func() {
		reg.Register("X", TypeInternal, http.StatusInternalServerError, "x again")
	})
}

func TestError_WithDetailDoesNotMutateOriginal(t *testing.T) {
	reg := NewRegistry("DETAIL")
	code := reg.Register("BAD", TypeValidation, http.StatusBadRequest, "bad input")
	base := reg.New(code)

	withDetail := base.WithDetail("field", "email")

	assert.Empty(t, base.Details)
	assert.Equal(t, "email", withDetail.Details["field"])
}

func TestError_IsAndUnwrap(t *testing.T) {
	reg := NewRegistry("WRAP")
	code := reg.Register("FAILED", TypeInternal, http.StatusInternalServerError, "failed")
	cause := errors.New("disk on fire")

	err := reg.NewWithCause(code, cause)
	wrapped := fmt.Errorf("outer: %w", err)

	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, reg.New(code))
	assert.True(t, IsCode(wrapped, code))
	assert.True(t, IsType(wrapped, TypeInternal))
}

func TestWrap(t *testing.T) {
	t.Run("plain error gets type and message", func(t *testing.T) {
		err := Wrap(errors.New("boom"), "saving failed", TypeInternal)
		require.NotNil(t, err)
		assert.Equal(t, TypeInternal, err.Type)
		assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("errx error passes through", func(t *testing.T) {
		reg := NewRegistry("PASS")
		code := reg.Register("GONE", TypeNotFound, http.StatusNotFound, "gone")
		original := reg.New(code)

		err := Wrap(original, "ignored", TypeInternal)
		assert.Equal(t, original, err)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "nothing", TypeInternal))
	})
}

func TestToHTTPResponse(t *testing.T) {
	err := New("limit reached", TypeBusiness).WithDetail("max", 3)

	resp := err.ToHTTPResponse()

	assert.Equal(t, "limit reached", resp["message"])
	assert.Equal(t, TypeBusiness, resp["type"])
	assert.Equal(t, map[string]any{"max": 3}, resp["details"])
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus)
}
