package fiberx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	reg := errx.NewRegistry("FIBERX_TEST")
	missing := reg.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "thing not found")

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusUnauthorized, "nope") })
	app.Get("/errx", func(c *fiber.Ctx) error { return fmt.Errorf("wrapped: %w", reg.New(missing)) })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("boom") })

	cases := []struct {
		path   string
		status int
		key    string
		want   any
	}{
		{"/fiber", http.StatusUnauthorized, "error", "nope"},
		{"/errx", http.StatusNotFound, "message", "thing not found"},
		{"/plain", http.StatusInternalServerError, "error", "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.want, body[tc.key])
		})
	}
}
