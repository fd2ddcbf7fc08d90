package ports

import (
	"context"
	"encoding/json"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// ContentService defines the authorization-checked content registry. Every
// mutation requires that the verified principal's username equals the username
// the caller claims to act as; reads are unauthenticated.
type ContentService interface {
	AddLanguage(ctx context.Context, name, username string, principal domain.Principal) error
	DeleteLanguage(ctx context.Context, name, username string, principal domain.Principal) error
	ListLanguages(ctx context.Context) ([]string, error)

	AddLection(ctx context.Context, language, title, username string, content json.RawMessage, principal domain.Principal) (*domain.Lection, error)
	EditLection(ctx context.Context, language, title, username string, content json.RawMessage, principal domain.Principal) error
	DeleteLection(ctx context.Context, language, title, username string, principal domain.Principal) error

	ListLections(ctx context.Context, language string) ([]domain.LectionSummary, error)
	GetLectionByTitle(ctx context.Context, language, title string) (*domain.Lection, error)
	GetLectionByID(ctx context.Context, language, id string) (*domain.Lection, error)
}
