package userapi

import (
	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/user"
	"github.com/Abraxas-365/careerpal/recruitment/user/usersrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for authentication and user lookups
type Handlers struct {
	service *usersrv.Service
}

func NewHandlers(service *usersrv.Service) *Handlers {
	return &Handlers{service: service}
}

// Register creates a password account
// POST /api/v1/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login exchanges email and password for a token
// POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GoogleCallback
// POST /api/v1/auth/google/callback
func (h *Handlers) GoogleCallback(c *fiber.Ctx) error {
	var req user.GoogleCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.GoogleCallback(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListUsers
// GET /api/v1/users?page=&limit=
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	opts := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("limit", usersrv.DefaultPageSize),
	}

	resp, err := h.service.List(c.UserContext(), opts)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetUser
// GET /api/v1/users/:id
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	id := kernel.NewUserID(c.Params("id"))
	if id.IsEmpty() {
		return user.ErrUserNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// LookupByEmail resolves an email to a user id
// GET /api/v1/users/lookup/email?email=
func (h *Handlers) LookupByEmail(c *fiber.Ctx) error {
	resp, err := h.service.LookupByEmail(c.UserContext(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RegisterRoutes mounts the public auth routes and the protected user routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	auth := app.Group("/api/v1/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Post("/google/callback", handlers.GoogleCallback)

	users := app.Group("/api/v1/users", authMiddleware)
	users.Get("/", handlers.ListUsers)
	users.Get("/lookup/email", handlers.LookupByEmail)
	users.Get("/:id", handlers.GetUser)
}
