package ports

import (
	"context"
	"encoding/json"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// ContentRepository defines persistence for languages and lections. Lections
// reference languages by name only; referential integrity is checked at the
// service layer, not by the storage engine.
type ContentRepository interface {
	InsertLanguage(ctx context.Context, language *domain.Language) error
	FindLanguage(ctx context.Context, name string) (*domain.Language, error)
	DeleteLanguage(ctx context.Context, name string) error
	ListLanguages(ctx context.Context) ([]string, error)

	InsertLection(ctx context.Context, lection *domain.Lection) error
	FindLectionByTitle(ctx context.Context, language, title string) (*domain.Lection, error)
	FindLectionByID(ctx context.Context, language, id string) (*domain.Lection, error)
	// ReplaceLectionContent swaps the content blob in place, preserving
	// id, title and the created_* stamps.
	ReplaceLectionContent(ctx context.Context, language, title string, content json.RawMessage) error
	DeleteLection(ctx context.Context, language, title string) error
	ListLections(ctx context.Context, language string) ([]domain.LectionSummary, error)
}
