package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// Function-field stubs for the service ports.

type stubAuthService struct {
	AuthenticateUserFn        func(ctx context.Context, username, password string) (string, error)
	AuthenticateContributorFn func(ctx context.Context, username, password string) (string, *domain.Contributor, error)
	RegisterFn                func(ctx context.Context, username, email, password string) (*domain.User, error)
}

func (s *stubAuthService) AuthenticateUser(ctx context.Context, username, password string) (string, error) {
	return s.AuthenticateUserFn(ctx, username, password)
}

func (s *stubAuthService) AuthenticateContributor(ctx context.Context, username, password string) (string, *domain.Contributor, error) {
	return s.AuthenticateContributorFn(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.RegisterFn(ctx, username, email, password)
}

type stubTokenService struct {
	RevokeFn func(ctx context.Context, token string) (bool, error)
}

func (s *stubTokenService) Issue(context.Context, domain.Principal) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubTokenService) Verify(context.Context, string) (*domain.Principal, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTokenService) Revoke(ctx context.Context, token string) (bool, error) {
	return s.RevokeFn(ctx, token)
}

func (s *stubTokenService) SweepExpired(context.Context) (int64, error) {
	return 0, nil
}

type stubContentService struct {
	AddLanguageFn    func(ctx context.Context, name, username string, principal domain.Principal) error
	DeleteLanguageFn func(ctx context.Context, name, username string, principal domain.Principal) error
	ListLanguagesFn  func(ctx context.Context) ([]string, error)

	AddLectionFn    func(ctx context.Context, language, title, username string, content json.RawMessage, principal domain.Principal) (*domain.Lection, error)
	EditLectionFn   func(ctx context.Context, language, title, username string, content json.RawMessage, principal domain.Principal) error
	DeleteLectionFn func(ctx context.Context, language, title, username string, principal domain.Principal) error

	ListLectionsFn      func(ctx context.Context, language string) ([]domain.LectionSummary, error)
	GetLectionByTitleFn func(ctx context.Context, language, title string) (*domain.Lection, error)
	GetLectionByIDFn    func(ctx context.Context, language, id string) (*domain.Lection, error)
}

func (s *stubContentService) AddLanguage(ctx context.Context, name, username string, principal domain.Principal) error {
	return s.AddLanguageFn(ctx, name, username, principal)
}

func (s *stubContentService) DeleteLanguage(ctx context.Context, name, username string, principal domain.Principal) error {
	return s.DeleteLanguageFn(ctx, name, username, principal)
}

func (s *stubContentService) ListLanguages(ctx context.Context) ([]string, error) {
	return s.ListLanguagesFn(ctx)
}

func (s *stubContentService) AddLection(ctx context.Context, language, title, username string, content json.RawMessage, principal domain.Principal) (*domain.Lection, error) {
	return s.AddLectionFn(ctx, language, title, username, content, principal)
}

func (s *stubContentService) EditLection(ctx context.Context, language, title, username string, content json.RawMessage, principal domain.Principal) error {
	return s.EditLectionFn(ctx, language, title, username, content, principal)
}

func (s *stubContentService) DeleteLection(ctx context.Context, language, title, username string, principal domain.Principal) error {
	return s.DeleteLectionFn(ctx, language, title, username, principal)
}

func (s *stubContentService) ListLections(ctx context.Context, language string) ([]domain.LectionSummary, error) {
	return s.ListLectionsFn(ctx, language)
}

func (s *stubContentService) GetLectionByTitle(ctx context.Context, language, title string) (*domain.Lection, error) {
	return s.GetLectionByTitleFn(ctx, language, title)
}

func (s *stubContentService) GetLectionByID(ctx context.Context, language, id string) (*domain.Lection, error) {
	return s.GetLectionByIDFn(ctx, language, id)
}

// newTestContext builds an echo context with the validator wired, mirroring
// what the router sets up.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
}
