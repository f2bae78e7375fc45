package domain

import "time"

// User is a registered principal. ResetCodeHash and ResetCodeExpiresAt
// are set and cleared together; both nil means no reset is pending.
type User struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string
	ResetCodeHash      *string
	ResetCodeExpiresAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ResetPending reports whether the user has an outstanding reset code.
func (u *User) ResetPending() bool {
	return u.ResetCodeHash != nil && u.ResetCodeExpiresAt != nil
}
