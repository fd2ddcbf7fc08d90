package ports

import (
	"context"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// TokenService owns the session token lifecycle: issuance, verification,
// revocation and expiry sweeps.
type TokenService interface {
	// Issue signs a token for the principal and persists its store row.
	Issue(ctx context.Context, principal domain.Principal) (string, error)
	// Verify checks signature, store presence, stored expiry and subject
	// existence, returning the principal embedded in the token.
	Verify(ctx context.Context, token string) (*domain.Principal, error)
	// Revoke deletes the store row and reports whether one existed.
	Revoke(ctx context.Context, token string) (bool, error)
	// SweepExpired removes all expired rows and returns the count.
	SweepExpired(ctx context.Context) (int64, error)
}
