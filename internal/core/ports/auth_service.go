package ports

import (
	"context"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// AuthService implements credential validation and registration. User and
// contributor login are two independent code paths against separate tables.
type AuthService interface {
	AuthenticateUser(ctx context.Context, username, password string) (string, error)
	AuthenticateContributor(ctx context.Context, username, password string) (string, *domain.Contributor, error)
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
}
