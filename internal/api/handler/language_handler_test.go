package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/api/middleware"
	"github.com/openlingu/lingua-server/internal/core/domain"
)

func setPrincipal(c echo.Context, principal domain.Principal) {
	c.Set(middleware.PrincipalKey, principal)
}

func TestLanguageHandler_Add(t *testing.T) {
	content := &stubContentService{
		AddLanguageFn: func(_ context.Context, name, username string, principal domain.Principal) error {
			if name != "german" || username != "carol" || principal.Username != "carol" {
				t.Fatalf("unexpected call: name=%s username=%s principal=%+v", name, username, principal)
			}
			return nil
		},
	}
	h := NewLanguageHandler(content)

	c, rec := newTestContext(http.MethodPost, "/add_language/german", `{"username":"carol"}`)
	c.SetParamNames("name")
	c.SetParamValues("german")
	setPrincipal(c, domain.Principal{Username: "carol", IsContributor: true})

	if err := h.Add(c); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestLanguageHandler_Add_ClaimMismatch(t *testing.T) {
	content := &stubContentService{
		AddLanguageFn: func(context.Context, string, string, domain.Principal) error {
			return domain.ErrForbidden
		},
	}
	h := NewLanguageHandler(content)

	c, _ := newTestContext(http.MethodPost, "/add_language/german", `{"username":"carol"}`)
	c.SetParamNames("name")
	c.SetParamValues("german")
	setPrincipal(c, domain.Principal{Username: "dave", IsContributor: true})

	if err := h.Add(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestLanguageHandler_Add_NoPrincipal(t *testing.T) {
	h := NewLanguageHandler(&stubContentService{
		AddLanguageFn: func(context.Context, string, string, domain.Principal) error {
			t.Fatal("service must not be called without a principal")
			return nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/add_language/german", `{"username":"carol"}`)
	c.SetParamNames("name")
	c.SetParamValues("german")

	err := h.Add(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestLanguageHandler_Delete(t *testing.T) {
	content := &stubContentService{
		DeleteLanguageFn: func(_ context.Context, name, username string, principal domain.Principal) error {
			if name != "german" || username != "carol" {
				t.Fatalf("unexpected call: name=%s username=%s", name, username)
			}
			return nil
		},
	}
	h := NewLanguageHandler(content)

	c, rec := newTestContext(http.MethodDelete, "/delete_language/german?username=carol", "")
	c.SetParamNames("name")
	c.SetParamValues("german")
	setPrincipal(c, domain.Principal{Username: "carol", IsContributor: true})

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLanguageHandler_List(t *testing.T) {
	content := &stubContentService{
		ListLanguagesFn: func(context.Context) ([]string, error) {
			return []string{"german", "french"}, nil
		},
	}
	h := NewLanguageHandler(content)

	c, rec := newTestContext(http.MethodGet, "/languages", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var names []string
	decodeBody(t, rec, &names)
	if len(names) != 2 {
		t.Fatalf("unexpected names: %v", names)
	}
}
