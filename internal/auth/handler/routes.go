package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nithish259/password-reset-backend/internal/auth/service"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, uh *UserHandler, tokenService service.TokenGenerator) {
	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logOut", h.Logout)
	auth.Post("/sendResetOtp", h.SendResetOtp)
	auth.Post("/resetPassword", h.ResetPassword)

	user := app.Group("/api/user", RequireAuth(tokenService))
	user.Get("/data", uh.GetUserData)
}
