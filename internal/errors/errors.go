package errors

import (
	"errors"
)

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetCode   = errors.New("invalid reset code")
	ErrResetCodeExpired   = errors.New("reset code expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrDeliveryFailed     = errors.New("failed to deliver reset code")
)
