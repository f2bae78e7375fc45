package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Nithish259/password-reset-backend/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	autherror "github.com/Nithish259/password-reset-backend/internal/errors"
)

// TokenGenerator issues and verifies stateless session tokens. There
// is no server-side session table and no revocation list: a token
// stays valid until its natural expiry, logout included.
type TokenGenerator interface {
	Generate(userID string) (string, time.Time, error)
	Verify(tokenString string) (*SessionClaims, error)
}

type TokenService struct {
	Secret string
	Expiry time.Duration
}

type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func NewTokenService(secret string, expiryDays int) *TokenService {
	return &TokenService{
		Secret: secret,
		Expiry: time.Duration(expiryDays) * 24 * time.Hour,
	}
}

// Generate signs a session token asserting the given user id.
func (ts *TokenService) Generate(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.Expiry)

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Verify parses and validates the given session token string.
func (ts *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil || !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	return claims, nil
}
