package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Nithish259/password-reset-backend/internal/auth/domain"
	autherror "github.com/Nithish259/password-reset-backend/internal/errors"
	"github.com/Nithish259/password-reset-backend/internal/logger"
)

const resetCodeTTL = 15 * time.Minute

// ResetService owns the one-time reset code lifecycle: a 6-digit code
// drawn from crypto/rand, stored as a SHA-256 hash, valid for 15
// minutes, consumed at most once.
type ResetService struct {
	repo     domain.UserRepository
	notifier domain.Notifier
	logger   *logger.Logger
}

func NewResetService(repo domain.UserRepository, notifier domain.Notifier, logger *logger.Logger) *ResetService {
	return &ResetService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// IssueResetCode stores a fresh reset code for the user and mails it.
// Issuing again replaces any outstanding code. If delivery fails the
// stored code is rolled back so the record is not left pending a code
// the user never received.
func (s *ResetService) IssueResetCode(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(resetCodeTTL)
	if err := s.repo.SetResetCode(ctx, user.ID, hashResetCode(code), expiresAt); err != nil {
		return err
	}

	body := fmt.Sprintf("Your password reset code is %s.\nIt expires in 15 minutes.", code)
	if err := s.notifier.Send(ctx, user.Email, "Reset Password", body); err != nil {
		s.logger.Error("failed to send reset code", "email", user.Email, "error", err.Error())

		if clearErr := s.repo.ClearResetCode(ctx, user.ID); clearErr != nil {
			s.logger.Error("failed to roll back reset code", "user_id", user.ID, "error", clearErr.Error())
		}

		return autherror.ErrDeliveryFailed
	}

	return nil
}

// ResetPassword consumes a pending code and installs the new password.
// The final check-and-clear is a single conditional update in the
// store, so a code can never authorize two password changes.
func (s *ResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return autherror.ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	if !user.ResetPending() {
		return autherror.ErrInvalidResetCode
	}

	codeHash := hashResetCode(code)
	if codeHash != *user.ResetCodeHash {
		return autherror.ErrInvalidResetCode
	}

	// Lazy expiry: the record is only ever checked here, never swept.
	if time.Now().After(*user.ResetCodeExpiresAt) {
		return autherror.ErrResetCodeExpired
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	consumed, err := s.repo.ConsumeResetCode(ctx, user.ID, codeHash, string(newHash))
	if err != nil {
		return err
	}
	if !consumed {
		// Lost the race to a concurrent consume, or the code was
		// replaced between read and update.
		return autherror.ErrInvalidResetCode
	}

	return nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
