package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nithish259/password-reset-backend/internal/auth/domain"
	"github.com/Nithish259/password-reset-backend/internal/auth/dto"
	"github.com/Nithish259/password-reset-backend/internal/auth/handler"
	"github.com/Nithish259/password-reset-backend/internal/auth/service"
	autherror "github.com/Nithish259/password-reset-backend/internal/errors"
	"github.com/Nithish259/password-reset-backend/internal/logger"
	"github.com/Nithish259/password-reset-backend/internal/mocks"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, string) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	userService := service.NewUserService(mockRepo, mockTokenService)
	authHandler := handler.NewAuthHandler(userService, nil, mockTokenService)

	app := fiber.New()
	app.Post("/register", authHandler.Register)

	t.Run("success", func(t *testing.T) {
		input := dto.RegisterInput{Name: "Test", Email: "test@example.com", Password: "password"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		mockTokenService.EXPECT().Generate(gomock.Any()).Return("session-token", time.Now().Add(7*24*time.Hour), nil)

		status, body := postJSON(t, app, "/register", input)
		assert.Equal(t, fiber.StatusCreated, status)

		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &payload))
		assert.Equal(t, "session-token", payload["token"])
		assert.Equal(t, input.Email, payload["email"])
		assert.NotContains(t, body, "password")
	})

	t.Run("bad request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/register", bytes.NewReader([]byte("")))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		status, _ := postJSON(t, app, "/register", dto.RegisterInput{Email: "test@example.com"})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("conflict", func(t *testing.T) {
		input := dto.RegisterInput{Name: "Test", Email: "taken@example.com", Password: "password"}
		existing := &domain.User{ID: "user-1", Email: input.Email}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(existing, nil)

		status, _ := postJSON(t, app, "/register", input)
		assert.Equal(t, fiber.StatusConflict, status)
	})
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	userService := service.NewUserService(mockRepo, mockTokenService)
	authHandler := handler.NewAuthHandler(userService, nil, mockTokenService)

	app := fiber.New()
	app.Post("/login", authHandler.Login)

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-123", Email: "test@example.com", PasswordHash: string(hashed)}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockTokenService.EXPECT().Generate(user.ID).Return("session-token", time.Now().Add(7*24*time.Hour), nil)

		status, body := postJSON(t, app, "/login", dto.LoginInput{Email: user.Email, Password: "correct-password"})
		assert.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, body, "session-token")
		assert.NotContains(t, body, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		status, _ := postJSON(t, app, "/login", dto.LoginInput{Email: user.Email, Password: "wrong"})
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		status, body := postJSON(t, app, "/login", dto.LoginInput{Email: "nobody@example.com", Password: "whatever"})
		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Contains(t, body, autherror.ErrInvalidCredentials.Error())
	})
}

func TestLogout(t *testing.T) {
	authHandler := handler.NewAuthHandler(nil, nil, nil)

	app := fiber.New()
	app.Post("/logOut", authHandler.Logout)

	req := httptest.NewRequest("POST", "/logOut", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSendResetOtp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockNotifier := mocks.NewMockNotifier(ctrl)
	resetService := service.NewResetService(mockRepo, mockNotifier, logger.New(0))
	authHandler := handler.NewAuthHandler(nil, resetService, nil)

	app := fiber.New()
	app.Post("/sendResetOtp", authHandler.SendResetOtp)

	t.Run("success", func(t *testing.T) {
		user := &domain.User{ID: "user-123", Email: "test@example.com"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockRepo.EXPECT().SetResetCode(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).Return(nil)
		mockNotifier.EXPECT().Send(gomock.Any(), user.Email, gomock.Any(), gomock.Any()).Return(nil)

		status, _ := postJSON(t, app, "/sendResetOtp", dto.SendResetOtpInput{Email: user.Email})
		assert.Equal(t, fiber.StatusOK, status)
	})

	t.Run("missing email", func(t *testing.T) {
		status, _ := postJSON(t, app, "/sendResetOtp", dto.SendResetOtpInput{})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		status, _ := postJSON(t, app, "/sendResetOtp", dto.SendResetOtpInput{Email: "nobody@example.com"})
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("delivery failure", func(t *testing.T) {
		user := &domain.User{ID: "user-123", Email: "test@example.com"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockRepo.EXPECT().SetResetCode(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).Return(nil)
		mockNotifier.EXPECT().Send(gomock.Any(), user.Email, gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
		mockRepo.EXPECT().ClearResetCode(gomock.Any(), user.ID).Return(nil)

		status, _ := postJSON(t, app, "/sendResetOtp", dto.SendResetOtpInput{Email: user.Email})
		assert.Equal(t, fiber.StatusBadGateway, status)
	})
}

func TestResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockNotifier := mocks.NewMockNotifier(ctrl)
	resetService := service.NewResetService(mockRepo, mockNotifier, logger.New(0))
	authHandler := handler.NewAuthHandler(nil, resetService, nil)

	app := fiber.New()
	app.Post("/resetPassword", authHandler.ResetPassword)

	t.Run("invalid code", func(t *testing.T) {
		user := &domain.User{ID: "user-123", Email: "test@example.com"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		status, body := postJSON(t, app, "/resetPassword", dto.ResetPasswordInput{
			Email:       user.Email,
			Otp:         "123456",
			NewPassword: "new-password",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body, autherror.ErrInvalidResetCode.Error())
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		status, _ := postJSON(t, app, "/resetPassword", dto.ResetPasswordInput{
			Email:       "nobody@example.com",
			Otp:         "123456",
			NewPassword: "new-password",
		})
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
