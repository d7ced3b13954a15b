package userapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/fiberx"
	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/user"
	"github.com/Abraxas-365/careerpal/recruitment/user/userauth"
	"github.com/Abraxas-365/careerpal/recruitment/user/usersrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu    sync.Mutex
	users []*user.User
}

func (m *memRepo) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists()
		}
	}
	m.users = append(m.users, u)
	return nil
}

func (m *memRepo) find(match func(*user.User) bool) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func (m *memRepo) GetByID(_ context.Context, id kernel.UserID) (*user.User, error) {
	return m.find(func(u *user.User) bool { return u.ID == id })
}

func (m *memRepo) GetByEmail(_ context.Context, email kernel.Email) (*user.User, error) {
	return m.find(func(u *user.User) bool { return u.Email == email })
}

func (m *memRepo) List(_ context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		items = append(items, *u)
	}
	page := kernel.NewPaginated(items, opts, len(items))
	return &page, nil
}

func newApp() *fiber.App {
	tokens := userauth.NewTokenService("handler-test-secret-value", "careerpal", time.Hour)
	svc := usersrv.NewService(&memRepo{}, tokens, userauth.NewBcryptHasher(4))

	app := fiber.New(fiber.Config{ErrorHandler: fiberx.ErrorHandler})
	RegisterRoutes(app, NewHandlers(svc), userauth.Middleware(tokens))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestAuthFlow(t *testing.T) {
	app := newApp()

	resp, body := do(t, app, http.MethodPost, "/api/v1/auth/register",
		`{"email":"ada@example.com","full_name":"Ada","password":"supersecret"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/auth/register",
		`{"email":"ada@example.com","password":"supersecret"}`, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/auth/login",
		`{"email":"ada@example.com","password":"wrongpassword"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = do(t, app, http.MethodPost, "/api/v1/auth/login",
		`{"email":"ada@example.com","password":"supersecret"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	userID := body["user"].(map[string]any)["id"].(string)

	resp, body = do(t, app, http.MethodGet, "/api/v1/users/lookup/email?email=ada@example.com", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, body["user_id"])

	resp, body = do(t, app, http.MethodGet, "/api/v1/users/"+userID, "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")

	resp, body = do(t, app, http.MethodGet, "/api/v1/users?page=1&limit=5", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)
}

func TestRegister_ValidationIs400(t *testing.T) {
	app := newApp()

	resp, _ := do(t, app, http.MethodPost, "/api/v1/auth/register", `{"email":"ada@example.com","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGoogleCallback_MissingGoogleID(t *testing.T) {
	app := newApp()

	resp, body := do(t, app, http.MethodPost, "/api/v1/auth/google/callback", `{"email":"g@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email and Google ID are required", body["message"])
}

func TestUsersRequireToken(t *testing.T) {
	app := newApp()

	resp, _ := do(t, app, http.MethodGet, "/api/v1/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
