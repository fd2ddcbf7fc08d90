package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openlingu/lingua-server/internal/core/domain"
	"github.com/openlingu/lingua-server/internal/core/ports"
)

// AccountService implements profile reads and admin user deletion.
type AccountService struct {
	creds  ports.CredentialRepository
	logger zerolog.Logger
}

func NewAccountService(creds ports.CredentialRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{creds: creds, logger: logger}
}

func (s *AccountService) Profile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.creds.FindUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the target user account. Admins cannot delete
// themselves, so the system can never lose its last admin session mid-flight.
func (s *AccountService) DeleteUser(ctx context.Context, username string, principal domain.Principal) error {
	if username == principal.Username {
		return domain.ErrSelfDeletion
	}

	if err := s.creds.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("delete user %q: %w", username, err)
	}

	s.logger.Info().Str("username", username).Str("deleted_by", principal.Username).Msg("user deleted")
	return nil
}
