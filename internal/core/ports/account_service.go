package ports

import (
	"context"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// AccountService exposes profile reads and admin-only user deletion.
type AccountService interface {
	Profile(ctx context.Context, username string) (*domain.User, error)
	// DeleteUser removes the target user. Deleting the caller's own account
	// is rejected with ErrSelfDeletion.
	DeleteUser(ctx context.Context, username string, principal domain.Principal) error
}
