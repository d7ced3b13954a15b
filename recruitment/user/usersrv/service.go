package usersrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/user"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	tokenType       = "bearer"
)

// Service handles registration, login and user lookups
type Service struct {
	repo     user.Repository
	tokens   user.TokenIssuer
	hasher   user.PasswordHasher
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo user.Repository, tokens user.TokenIssuer, hasher user.PasswordHasher) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		hasher:   hasher,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ============================================================================
// Authentication
// ============================================================================

// Register creates a password account and logs it in
func (s *Service) Register(ctx context.Context, req user.RegisterRequest) (*user.TokenResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, invalid(err)
	}

	email := kernel.NewEmail(req.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailAlreadyExists().WithDetail("email", email)
	} else if !errx.IsCode(err, user.CodeUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	u := user.NewEmailUser(email, strings.TrimSpace(req.FullName), hash, s.now().UTC())
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logx.Infof("registered user %s", u.ID)
	return s.tokenFor(u)
}

// Login checks a password. Unknown emails and accounts without a password
// fail the same way as a wrong password.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (*user.TokenResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, invalid(err)
	}

	u, err := s.repo.GetByEmail(ctx, kernel.NewEmail(req.Email))
	if err != nil {
		if errx.IsCode(err, user.CodeUserNotFound) {
			return nil, user.ErrInvalidCredentials()
		}
		return nil, err
	}
	if !u.HasPassword() || !s.hasher.Compare(*u.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials()
	}
	if !u.IsActive {
		return nil, user.ErrInactiveUser().WithDetail("user_id", u.ID)
	}

	return s.tokenFor(u)
}

// GoogleCallback logs in an existing account by email, or registers a
// verified Google account
func (s *Service) GoogleCallback(ctx context.Context, req user.GoogleCallbackRequest) (*user.TokenResponse, error) {
	email := kernel.NewEmail(req.Email)
	googleID := strings.TrimSpace(req.GoogleID)
	if email.IsEmpty() || googleID == "" {
		return nil, user.ErrRegistry.NewWithMessage(user.CodeInvalidRequest, "Email and Google ID are required")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsActive {
			return nil, user.ErrInactiveUser().WithDetail("user_id", existing.ID)
		}
		return s.tokenFor(existing)
	case !errx.IsCode(err, user.CodeUserNotFound):
		return nil, err
	}

	u := user.NewGoogleUser(email, strings.TrimSpace(req.FullName), googleID, s.now().UTC())
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logx.Infof("registered google user %s", u.ID)
	return s.tokenFor(u)
}

func (s *Service) tokenFor(u *user.User) (*user.TokenResponse, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, user.ErrRegistry.NewWithCause(user.CodeTokenFailed, err)
	}
	return &user.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		User:        u.ToResponse(),
	}, nil
}

// ============================================================================
// Lookups
// ============================================================================

func (s *Service) List(ctx context.Context, opts kernel.PaginationOptions) (*user.PaginatedUsersResponse, error) {
	opts = opts.Normalize(DefaultPageSize, MaxPageSize)

	page, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	items := make([]user.UserResponse, len(page.Items))
	for i := range page.Items {
		items[i] = page.Items[i].ToResponse()
	}
	out := kernel.NewPaginated(items, opts, page.Page.Total)
	return &out, nil
}

func (s *Service) Get(ctx context.Context, id kernel.UserID) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := u.ToResponse()
	return &resp, nil
}

// LookupByEmail resolves an email to a user id
func (s *Service) LookupByEmail(ctx context.Context, email string) (*user.LookupResponse, error) {
	normalized := kernel.NewEmail(email)
	if normalized.IsEmpty() {
		return nil, user.ErrRegistry.NewWithMessage(user.CodeInvalidRequest, "Email is required")
	}
	u, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return &user.LookupResponse{UserID: u.ID}, nil
}

func invalid(err error) *errx.Error {
	e := user.ErrInvalidRequest()
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			e = e.WithDetail(strings.ToLower(fe.Field()), fe.Tag())
		}
	}
	return e
}
