package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/Nithish259/password-reset-backend/internal/auth/domain UserRepository,Notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nithish259/password-reset-backend/internal/auth/domain"
	"github.com/Nithish259/password-reset-backend/internal/auth/dto"
	autherror "github.com/Nithish259/password-reset-backend/internal/errors"
)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, autherror.ErrMissingFields
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index on email is the real duplicate guard; the
	// existence check above only gives a friendlier fast path.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credential and issues a session token. Unknown
// email and wrong password return the same error so callers cannot
// probe which addresses are registered.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	token, _, err := s.tokenService.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Token: token}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return &dto.UserOutput{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}
