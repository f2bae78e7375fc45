package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	SetResetCode(ctx context.Context, userID, codeHash string, expiresAt time.Time) error
	ClearResetCode(ctx context.Context, userID string) error
	ConsumeResetCode(ctx context.Context, userID, codeHash, newPasswordHash string) (bool, error)
}

// Notifier delivers a message to a user out-of-band.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
