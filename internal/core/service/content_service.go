package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openlingu/lingua-server/internal/core/domain"
	"github.com/openlingu/lingua-server/internal/core/ports"
)

// ContentService is the authorization-checked registry for languages and
// lections. The auth middleware has already verified the token and attached a
// principal; every mutation here additionally requires that the principal's
// username equals the username the caller claims to act as. created_by is
// stamped but never consulted for authorization.
type ContentService struct {
	content ports.ContentRepository
	logger  zerolog.Logger
}

func NewContentService(content ports.ContentRepository, logger zerolog.Logger) *ContentService {
	return &ContentService{content: content, logger: logger}
}

// requireClaim enforces the principal-equals-claim check shared by all
// mutations. The mismatch is rejected before any existence check so probing
// with someone else's username leaks nothing about the resource.
func requireClaim(username string, principal domain.Principal) error {
	if username == "" || username != principal.Username {
		return domain.ErrForbidden
	}
	return nil
}

func (s *ContentService) AddLanguage(ctx context.Context, name, username string, principal domain.Principal) error {
	if err := requireClaim(username, principal); err != nil {
		return err
	}

	if _, err := s.content.FindLanguage(ctx, name); err == nil {
		return domain.ErrLanguageExists
	} else if !errors.Is(err, domain.ErrLanguageNotFound) {
		return fmt.Errorf("check language: %w", err)
	}

	language := &domain.Language{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		CreatedBy: username,
	}
	if err := s.content.InsertLanguage(ctx, language); err != nil {
		return err
	}

	s.logger.Info().Str("language", name).Str("created_by", username).Msg("language added")
	return nil
}

func (s *ContentService) DeleteLanguage(ctx context.Context, name, username string, principal domain.Principal) error {
	if err := requireClaim(username, principal); err != nil {
		return err
	}

	if err := s.content.DeleteLanguage(ctx, name); err != nil {
		return err
	}

	s.logger.Info().Str("language", name).Str("deleted_by", username).Msg("language deleted")
	return nil
}

func (s *ContentService) ListLanguages(ctx context.Context) ([]string, error) {
	return s.content.ListLanguages(ctx)
}

func (s *ContentService) AddLection(ctx context.Context, language, title, username string, content json.RawMessage, principal domain.Principal) (*domain.Lection, error) {
	if err := requireClaim(username, principal); err != nil {
		return nil, err
	}

	if _, err := s.content.FindLanguage(ctx, language); err != nil {
		return nil, err
	}

	// Title uniqueness is scoped per language; the compound unique index in
	// the store backstops the race between this check and the insert.
	if _, err := s.content.FindLectionByTitle(ctx, language, title); err == nil {
		return nil, domain.ErrLectionExists
	} else if !errors.Is(err, domain.ErrLectionNotFound) {
		return nil, fmt.Errorf("check lection: %w", err)
	}

	lection := &domain.Lection{
		ID:        uuid.NewString(),
		Title:     title,
		Language:  language,
		CreatedAt: time.Now().UTC(),
		CreatedBy: username,
		Content:   content,
	}
	if err := s.content.InsertLection(ctx, lection); err != nil {
		return nil, err
	}

	s.logger.Info().Str("language", language).Str("title", title).Str("created_by", username).Msg("lection added")
	return lection, nil
}

func (s *ContentService) EditLection(ctx context.Context, language, title, username string, content json.RawMessage, principal domain.Principal) error {
	if err := requireClaim(username, principal); err != nil {
		return err
	}

	if _, err := s.content.FindLanguage(ctx, language); err != nil {
		return err
	}

	if err := s.content.ReplaceLectionContent(ctx, language, title, content); err != nil {
		return err
	}

	s.logger.Info().Str("language", language).Str("title", title).Str("edited_by", username).Msg("lection content replaced")
	return nil
}

func (s *ContentService) DeleteLection(ctx context.Context, language, title, username string, principal domain.Principal) error {
	if err := requireClaim(username, principal); err != nil {
		return err
	}

	if _, err := s.content.FindLanguage(ctx, language); err != nil {
		return err
	}

	if err := s.content.DeleteLection(ctx, language, title); err != nil {
		return err
	}

	s.logger.Info().Str("language", language).Str("title", title).Str("deleted_by", username).Msg("lection deleted")
	return nil
}

func (s *ContentService) ListLections(ctx context.Context, language string) ([]domain.LectionSummary, error) {
	if _, err := s.content.FindLanguage(ctx, language); err != nil {
		return nil, err
	}
	return s.content.ListLections(ctx, language)
}

func (s *ContentService) GetLectionByTitle(ctx context.Context, language, title string) (*domain.Lection, error) {
	return s.content.FindLectionByTitle(ctx, language, title)
}

func (s *ContentService) GetLectionByID(ctx context.Context, language, id string) (*domain.Lection, error) {
	return s.content.FindLectionByID(ctx, language, id)
}
