package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openlingu/lingua-server/internal/core/domain"
	"github.com/openlingu/lingua-server/internal/core/ports"
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

// AuthService implements registration and the two login paths. User and
// contributor authentication are deliberately independent: they query separate
// tables and embed different role claims.
type AuthService struct {
	creds  ports.CredentialRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(creds ports.CredentialRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{creds: creds, tokens: tokens, logger: logger}
}

// AuthenticateUser validates a user's credentials and issues a plain session
// token. Missing user and wrong password are indistinguishable to the caller.
func (s *AuthService) AuthenticateUser(ctx context.Context, username, password string) (string, error) {
	user, err := s.creds.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info().Str("username", username).Msg("login failed: unknown user")
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if user.Disabled {
		s.logger.Info().Str("username", username).Msg("login failed: account disabled")
		return "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		s.logger.Info().Str("username", username).Msg("login failed: wrong password")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, domain.Principal{Username: user.Username})
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Msg("user authenticated")
	return token, nil
}

// AuthenticateContributor validates against the contributor table and issues
// a token carrying the contributor and admin role claims.
func (s *AuthService) AuthenticateContributor(ctx context.Context, username, password string) (string, *domain.Contributor, error) {
	contributor, err := s.creds.FindContributor(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrContributorNotFound) {
			s.logger.Info().Str("username", username).Msg("contributor login failed: unknown contributor")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find contributor: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(contributor.HashedPassword), []byte(password)) != nil {
		s.logger.Info().Str("username", username).Msg("contributor login failed: wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, domain.Principal{
		Username:      contributor.Username,
		IsContributor: true,
		IsAdmin:       contributor.IsAdmin,
	})
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", username).Bool("is_admin", contributor.IsAdmin).Msg("contributor authenticated")
	return token, contributor, nil
}

// Register creates a new user account. Duplicate username and duplicate email
// are reported separately so the client knows which field collided.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if len(username) < minUsernameLength || len(password) < minPasswordLength {
		return nil, domain.ErrInvalidRegistration
	}

	if _, err := s.creds.FindUser(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.creds.FindUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hash),
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.creds.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("email", email).Msg("user registered")
	return created, nil
}
