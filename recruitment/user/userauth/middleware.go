package userauth

import (
	"strings"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "user_id"
	localEmail  = "user_email"
)

// Middleware validates bearer access tokens
func Middleware(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
		}

		// "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(localUserID, claims.UserID())
		c.Locals(localEmail, kernel.NewEmail(claims.Email))

		return c.Next()
	}
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(c *fiber.Ctx) (kernel.UserID, bool) {
	id, ok := c.Locals(localUserID).(kernel.UserID)
	return id, ok && !id.IsEmpty()
}

// GetUserEmail extracts the authenticated email from context
func GetUserEmail(c *fiber.Ctx) (kernel.Email, bool) {
	email, ok := c.Locals(localEmail).(kernel.Email)
	return email, ok
}

// RequireUserID is GetUserID for handlers mounted behind Middleware
func RequireUserID(c *fiber.Ctx) (kernel.UserID, error) {
	id, ok := GetUserID(c)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}
