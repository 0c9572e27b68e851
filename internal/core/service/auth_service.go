package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// AuthService implements registration, login and password reset by email.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle // nil disables throttling
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, throttle: throttle, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info().Int64("user_id", id).Msg("user registered")
	return user, nil
}

// Login returns ErrInvalidCredentials for unknown email and wrong password
// alike; the client must not be able to tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil && s.throttle.TooManyAttempts(ctx, email) {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, email)
	}

	return token, user, nil
}

// ChangePasswordByEmail re-hashes and persists a new credential. The endpoint
// serving it carries no authentication in the source system; see DESIGN.md.
func (s *AuthService) ChangePasswordByEmail(ctx context.Context, email, newPassword string) error {
	if email == "" || newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	updated, err := s.repo.UpdatePasswordByEmail(ctx, email, string(hash))
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrUserNotFound
	}

	s.logger.Info().Str("email", email).Msg("password changed")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle != nil {
		s.throttle.RecordFailure(ctx, email)
	}
}
