package ports

import (
	"context"
	"time"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// TokenRepository persists one row per issued session token.
type TokenRepository interface {
	Insert(ctx context.Context, token *domain.Token) error
	Find(ctx context.Context, token string) (*domain.Token, error)
	// Delete removes the row if present and reports whether one was deleted.
	// Deleting an absent row is not an error.
	Delete(ctx context.Context, token string) (bool, error)
	// DeleteExpired removes every row whose expiry is before the given instant
	// and returns the number of rows removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
