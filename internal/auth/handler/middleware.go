package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Nithish259/password-reset-backend/internal/auth/service"
	autherror "github.com/Nithish259/password-reset-backend/internal/errors"
)

const ContextUserIDKey = "userID"

// RequireAuth verifies the bearer session token and stashes the
// asserted user id in the request locals.
func RequireAuth(tokenService service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing Authorization header"})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid Authorization header"})
		}

		claims, err := tokenService.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.ErrInvalidToken.Error()})
		}

		c.Locals(ContextUserIDKey, claims.UserID)

		return c.Next()
	}
}
