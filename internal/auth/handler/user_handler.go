package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nithish259/password-reset-backend/internal/auth/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUserData returns the profile of the authenticated user. The user
// id comes from the session token via RequireAuth.
func (h *UserHandler) GetUserData(c *fiber.Ctx) error {
	userID, ok := c.Locals(ContextUserIDKey).(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "not authorized",
		})
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}
