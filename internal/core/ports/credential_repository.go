package ports

import (
	"context"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// CredentialRepository defines persistence for the two principal tables.
// Users and contributors live in independent collections; a lookup in one
// never falls through to the other.
type CredentialRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUser(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	DeleteUser(ctx context.Context, username string) error

	FindContributor(ctx context.Context, username string) (*domain.Contributor, error)
}
