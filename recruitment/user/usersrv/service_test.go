package usersrv

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/user"
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

func (m *memRepo) GetByID(_ context.Context, id kernel.UserID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func (m *memRepo) GetByEmail(_ context.Context, email kernel.Email) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func (m *memRepo) List(_ context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]user.User, len(m.users))
	for i, u := range m.users {
		all[i] = *u
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	start := min(opts.Offset(), len(all))
	end := min(start+opts.PageSize, len(all))
	page := kernel.NewPaginated(all[start:end], opts, len(all))
	return &page, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(u *user.User) (string, error) { return "token-" + u.ID.String(), nil }

// plainHasher keeps tests fast; bcrypt is covered in userauth
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(hash, p string) bool   { return hash == "hashed:"+p }

func newService() (*Service, *memRepo) {
	repo := &memRepo{}
	return NewService(repo, fakeTokens{}, plainHasher{}), repo
}

func register(t *testing.T, s *Service, email string) *user.TokenResponse {
	t.Helper()
	resp, err := s.Register(context.Background(), user.RegisterRequest{
		Email:    email,
		FullName: "Ada Lovelace",
		Password: "supersecret",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	s, repo := newService()

	resp := register(t, s, "  Ada@Example.com ")

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "token-"+resp.User.ID.String(), resp.AccessToken)
	assert.Equal(t, kernel.Email("ada@example.com"), resp.User.Email)
	assert.Equal(t, user.AuthProviderEmail, resp.User.AuthProvider)
	assert.True(t, resp.User.IsActive)
	assert.False(t, resp.User.IsVerified)

	require.Len(t, repo.users, 1)
	require.NotNil(t, repo.users[0].PasswordHash)
	assert.Equal(t, "hashed:supersecret", *repo.users[0].PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _ := newService()
	register(t, s, "ada@example.com")

	_, err := s.Register(context.Background(), user.RegisterRequest{
		Email:    "ADA@example.com",
		Password: "anotherpass",
	})
	assert.True(t, errx.IsCode(err, user.CodeEmailAlreadyExists))
}

func TestRegister_Validation(t *testing.T) {
	s, _ := newService()

	cases := map[string]user.RegisterRequest{
		"bad email":      {Email: "not-an-email", Password: "supersecret"},
		"short password": {Email: "ada@example.com", Password: "short"},
		"missing email":  {Password: "supersecret"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Register(context.Background(), req)
			assert.True(t, errx.IsCode(err, user.CodeInvalidRequest))
		})
	}
}

func TestLogin(t *testing.T) {
	s, _ := newService()
	registered := register(t, s, "ada@example.com")

	t.Run("valid", func(t *testing.T) {
		resp, err := s.Login(context.Background(), user.LoginRequest{Email: "ada@example.com", Password: "supersecret"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(context.Background(), user.LoginRequest{Email: "ada@example.com", Password: "nope-nope"})
		assert.True(t, errx.IsCode(err, user.CodeInvalidCredentials))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(context.Background(), user.LoginRequest{Email: "who@example.com", Password: "supersecret"})
		assert.True(t, errx.IsCode(err, user.CodeInvalidCredentials))
	})
}

func TestLogin_GoogleAccountHasNoPassword(t *testing.T) {
	s, _ := newService()
	_, err := s.GoogleCallback(context.Background(), user.GoogleCallbackRequest{Email: "g@example.com", GoogleID: "g-1"})
	require.NoError(t, err)

	_, err = s.Login(context.Background(), user.LoginRequest{Email: "g@example.com", Password: "anything"})
	assert.True(t, errx.IsCode(err, user.CodeInvalidCredentials))
}

func TestGoogleCallback(t *testing.T) {
	s, repo := newService()

	t.Run("missing fields", func(t *testing.T) {
		_, err := s.GoogleCallback(context.Background(), user.GoogleCallbackRequest{Email: "g@example.com"})
		assert.True(t, errx.IsCode(err, user.CodeInvalidRequest))
	})

	t.Run("new account is verified", func(t *testing.T) {
		resp, err := s.GoogleCallback(context.Background(), user.GoogleCallbackRequest{
			Email: "g@example.com", GoogleID: "g-1", FullName: "Grace",
		})
		require.NoError(t, err)
		assert.Equal(t, user.AuthProviderGoogle, resp.User.AuthProvider)
		assert.True(t, resp.User.IsVerified)
		assert.Len(t, repo.users, 1)
	})

	t.Run("existing email logs in", func(t *testing.T) {
		existing := register(t, s, "ada@example.com")

		resp, err := s.GoogleCallback(context.Background(), user.GoogleCallbackRequest{Email: "ada@example.com", GoogleID: "g-2"})
		require.NoError(t, err)
		assert.Equal(t, existing.User.ID, resp.User.ID)
		assert.Len(t, repo.users, 2)
	})
}

func TestListAndLookup(t *testing.T) {
	s, _ := newService()
	first := register(t, s, "a@example.com")
	register(t, s, "b@example.com")

	page, err := s.List(context.Background(), kernel.PaginationOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, page.Page.Size)
	assert.Equal(t, 2, page.Page.Total)
	assert.Len(t, page.Items, 2)

	got, err := s.Get(context.Background(), first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, kernel.Email("a@example.com"), got.Email)

	lookup, err := s.LookupByEmail(context.Background(), "A@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, lookup.UserID)

	_, err = s.LookupByEmail(context.Background(), "")
	assert.True(t, errx.IsCode(err, user.CodeInvalidRequest))

	_, err = s.Get(context.Background(), "missing")
	assert.True(t, errx.IsCode(err, user.CodeUserNotFound))
}
