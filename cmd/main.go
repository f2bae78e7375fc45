package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Nithish259/password-reset-backend/config"
	"github.com/Nithish259/password-reset-backend/db"
	"github.com/Nithish259/password-reset-backend/internal/auth/handler"
	repo "github.com/Nithish259/password-reset-backend/internal/auth/repository/postgres"
	"github.com/Nithish259/password-reset-backend/internal/auth/service"
	"github.com/Nithish259/password-reset-backend/internal/logger"
	"github.com/Nithish259/password-reset-backend/internal/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err.Error())
	}

	log := logger.New(cfg.LogLevel)

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to initialize database", "error", err.Error())
	}
	defer dbPool.Close()

	mailClient := mailer.NewClient(cfg.SMTP)

	verifyCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	if err := mailClient.Verify(verifyCtx); err != nil {
		// Reset emails will fail until the transport recovers, but the
		// rest of the service can still run.
		log.Error("smtp verification failed", "error", err.Error())
	}
	cancel()

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiryDays)
	userService := service.NewUserService(userRepo, tokenService)
	resetService := service.NewResetService(userRepo, mailClient, log)

	authHandler := handler.NewAuthHandler(userService, resetService, tokenService)
	userHandler := handler.NewUserHandler(userService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, userHandler, tokenService)

	log.Info("server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err.Error())
	}
}
