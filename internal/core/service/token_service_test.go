package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

func newTokenFixture(t *testing.T, ttl time.Duration) (*TokenService, *memCredentialRepo, *memTokenRepo, *time.Time) {
	t.Helper()
	creds := newMemCredentialRepo()
	tokens := newMemTokenRepo()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(creds, tokens, "secret", ttl, zerolog.Nop()).
		WithClock(func() time.Time { return now })
	return svc, creds, tokens, &now
}

func addUser(creds *memCredentialRepo, username string) {
	creds.users[username] = &domain.User{Username: username, Email: username + "@example.com"}
}

func addContributor(creds *memCredentialRepo, username string, isAdmin bool) {
	creds.contributors[username] = &domain.Contributor{Username: username, IsAdmin: isAdmin}
}

func TestTokenService_IssueVerifyRoundtrip(t *testing.T) {
	svc, creds, tokens, _ := newTokenFixture(t, time.Hour)
	addUser(creds, "alice")

	token, err := svc.Issue(context.Background(), domain.Principal{Username: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if tokens.size() != 1 {
		t.Fatalf("expected 1 token row, got %d", tokens.size())
	}

	principal, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if principal.Username != "alice" || principal.IsContributor || principal.IsAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestTokenService_VerifyCarriesRoleClaims(t *testing.T) {
	svc, creds, _, _ := newTokenFixture(t, time.Hour)
	addContributor(creds, "carol", true)

	token, err := svc.Issue(context.Background(), domain.Principal{Username: "carol", IsContributor: true, IsAdmin: true})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	principal, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !principal.IsContributor || !principal.IsAdmin {
		t.Fatalf("role claims lost: %+v", principal)
	}
}

func TestTokenService_VerifyGarbage(t *testing.T) {
	svc, _, _, _ := newTokenFixture(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	svc, creds, tokens, _ := newTokenFixture(t, time.Hour)
	addUser(creds, "alice")

	token, err := svc.Issue(context.Background(), domain.Principal{Username: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	other := NewTokenService(creds, tokens, "other-secret", time.Hour, zerolog.Nop())
	if _, err := other.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenService_VerifyRevoked(t *testing.T) {
	svc, creds, _, _ := newTokenFixture(t, time.Hour)
	addUser(creds, "alice")

	token, err := svc.Issue(context.Background(), domain.Principal{Username: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	found, err := svc.Revoke(context.Background(), token)
	if err != nil || !found {
		t.Fatalf("first Revoke = (%v, %v), want (true, nil)", found, err)
	}

	// The signature is still mathematically valid, but the row is gone.
	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after revocation, got %v", err)
	}
}

func TestTokenService_RevokeIdempotent(t *testing.T) {
	svc, creds, _, _ := newTokenFixture(t, time.Hour)
	addUser(creds, "alice")

	token, err := svc.Issue(context.Background(), domain.Principal{Username: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	found, err := svc.Revoke(context.Background(), token)
	if err != nil || !found {
		t.Fatalf("first Revoke = (%v, %v), want (true, nil)", found, err)
	}
	for i := 0; i < 3; i++ {
		found, err = svc.Revoke(context.Background(), token)
		if err != nil || found {
			t.Fatalf("repeat Revoke = (%v, %v), want (false, nil)", found, err)
		}
	}
}

func TestTokenService_VerifyExpiredEvictsRow(t *testing.T) {
	svc, creds, tokens, now := newTokenFixture(t, time.Second)
	addContributor(creds, "carol", false)

	token, err := svc.Issue(context.Background(), domain.Principal{Username: "carol", IsContributor: true})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	*now = now.Add(2 * time.Second)

	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if tokens.size() != 0 {
		t.Fatalf("expired row not evicted, %d rows remain", tokens.size())
	}

	// The lazy path already removed the row, so the sweep finds nothing.
	count, err := svc.SweepExpired(context.Background())
	if err != nil {
		t.Fatalf("SweepExpired returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 swept after lazy eviction, got %d", count)
	}

	// The token never verifies again, regardless of path.
	if _, err := svc.Verify(context.Background(), token); err == nil {
		t.Fatal("expired token verified successfully")
	}
}

func TestTokenService_SweepExpired(t *testing.T) {
	svc, creds, tokens, now := newTokenFixture(t, time.Second)
	addUser(creds, "alice")
	addUser(creds, "bob")

	if _, err := svc.Issue(context.Background(), domain.Principal{Username: "alice"}); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Issue(context.Background(), domain.Principal{Username: "bob"}); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	*now = now.Add(2 * time.Second)

	count, err := svc.SweepExpired(context.Background())
	if err != nil {
		t.Fatalf("SweepExpired returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 swept, got %d", count)
	}
	if tokens.size() != 0 {
		t.Fatalf("expected empty store, %d rows remain", tokens.size())
	}
}

func TestTokenService_VerifyUnknownSubject(t *testing.T) {
	svc, _, _, _ := newTokenFixture(t, time.Hour)

	// No user or contributor named "ghost" exists.
	token, err := svc.Issue(context.Background(), domain.Principal{Username: "ghost"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown subject, got %v", err)
	}
}

func TestTokenService_VerifySubjectMayBeContributor(t *testing.T) {
	svc, creds, _, _ := newTokenFixture(t, time.Hour)
	addContributor(creds, "dave", false)

	token, err := svc.Issue(context.Background(), domain.Principal{Username: "dave", IsContributor: true})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := svc.Verify(context.Background(), token); err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
}

func TestTokenService_IssueRetriesStoreFailure(t *testing.T) {
	svc, creds, tokens, _ := newTokenFixture(t, time.Hour)
	addUser(creds, "alice")

	tokens.insertFailures = 2
	tokens.insertErr = errors.New("write failed")

	token, err := svc.Issue(context.Background(), domain.Principal{Username: "alice"})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if token == "" {
		t.Fatal("expected token, got empty string")
	}
}

func TestTokenService_IssueGivesUpAfterRetries(t *testing.T) {
	svc, creds, tokens, _ := newTokenFixture(t, time.Hour)
	addUser(creds, "alice")

	tokens.insertFailures = 3
	tokens.insertErr = errors.New("write failed")

	if _, err := svc.Issue(context.Background(), domain.Principal{Username: "alice"}); !errors.Is(err, domain.ErrTokenIssuance) {
		t.Fatalf("expected ErrTokenIssuance, got %v", err)
	}
}
