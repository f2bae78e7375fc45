package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Nithish259/password-reset-backend/internal/auth/dto"
	"github.com/Nithish259/password-reset-backend/internal/auth/service"
	autherror "github.com/Nithish259/password-reset-backend/internal/errors"
)

type AuthHandler struct {
	userService  *service.UserService
	resetService *service.ResetService
	tokenService service.TokenGenerator
}

func NewAuthHandler(userService *service.UserService, resetService *service.ResetService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		resetService: resetService,
		tokenService: tokenService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	token, _, err := h.tokenService.Generate(user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	tokenResponse, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokenResponse)
}

// Logout is transport-only: sessions are stateless, so the token stays
// valid until expiry and the client simply discards it.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "logged out",
	})
}

func (h *AuthHandler) SendResetOtp(c *fiber.Ctx) error {
	var input dto.SendResetOtpInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	if err := h.resetService.IssueResetCode(c.Context(), input.Email); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "reset code sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if err := h.resetService.ResetPassword(c.Context(), input.Email, input.Otp, input.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "password reset successful",
	})
}

// respondError maps service errors onto HTTP statuses. Anything
// outside the known set is an infrastructure failure and is not
// echoed to the client.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, autherror.ErrMissingFields),
		errors.Is(err, autherror.ErrInvalidResetCode),
		errors.Is(err, autherror.ErrResetCodeExpired):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, autherror.ErrInvalidCredentials),
		errors.Is(err, autherror.ErrInvalidToken):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, autherror.ErrUserNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, autherror.ErrEmailAlreadyInUse):
		status = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, autherror.ErrDeliveryFailed):
		status = fiber.StatusBadGateway
		message = err.Error()
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
