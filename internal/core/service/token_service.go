package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openlingu/lingua-server/internal/core/domain"
	"github.com/openlingu/lingua-server/internal/core/ports"
)

// issueAttempts bounds the retry loop in Issue. Each attempt regenerates the
// token id, so a theoretical jti collision in the store cannot wedge issuance.
const issueAttempts = 3

// tokenClaims is the signed payload. Role flags are copied from the principal
// at issue time and trusted at verify time only after the store lookup passed.
type tokenClaims struct {
	IsContributor bool `json:"is_contributor"`
	IsAdmin       bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenService issues, verifies, revokes and sweeps session tokens. Validity
// is store-backed: the signature alone is never sufficient.
type TokenService struct {
	creds  ports.CredentialRepository
	tokens ports.TokenRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

func NewTokenService(creds ports.CredentialRepository, tokens ports.TokenRepository, secret string, ttl time.Duration, logger zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		creds:  creds,
		tokens: tokens,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a token for the principal and persists its store row with the
// same expiry. Signing or store failures are retried with a fresh token id.
func (s *TokenService) Issue(ctx context.Context, principal domain.Principal) (string, error) {
	var lastErr error

	for attempt := 0; attempt < issueAttempts; attempt++ {
		now := s.now().UTC()
		expires := now.Add(s.ttl)

		claims := tokenClaims{
			IsContributor: principal.IsContributor,
			IsAdmin:       principal.IsAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   principal.Username,
				IssuedAt:  jwt.NewNumericDate(now),
				NotBefore: jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expires),
				ID:        uuid.NewString(),
			},
		}

		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
		if err != nil {
			lastErr = err
			continue
		}

		if err := s.tokens.Insert(ctx, &domain.Token{Token: signed, Expires: expires}); err != nil {
			lastErr = err
			continue
		}

		s.logger.Info().Str("subject", principal.Username).Bool("is_contributor", principal.IsContributor).Msg("token issued")
		return signed, nil
	}

	s.logger.Error().Err(lastErr).Str("subject", principal.Username).Msg("token issuance failed")
	return "", fmt.Errorf("%w: %v", domain.ErrTokenIssuance, lastErr)
}

// Verify validates a presented bearer token:
//  1. signature and format,
//  2. non-empty subject,
//  3. presence in the token store (revocation check),
//  4. stored expiry, evicting the row lazily when passed,
//  5. subject resolves to a known user or contributor.
func (s *TokenService) Verify(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// The embedded expiry already passed; drop the stale row too.
			_, _ = s.tokens.Delete(ctx, token)
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	stored, err := s.tokens.Find(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("token lookup: %w", err)
	}

	if stored.Expired(s.now().UTC()) {
		if _, err := s.tokens.Delete(ctx, token); err != nil {
			s.logger.Warn().Err(err).Msg("failed to evict expired token")
		}
		return nil, domain.ErrTokenExpired
	}

	if err := s.subjectExists(ctx, claims.Subject); err != nil {
		return nil, err
	}

	return &domain.Principal{
		Username:      claims.Subject,
		IsContributor: claims.IsContributor,
		IsAdmin:       claims.IsAdmin,
	}, nil
}

// subjectExists confirms the subject is still a known user or contributor.
// A deleted account invalidates every token it ever held.
func (s *TokenService) subjectExists(ctx context.Context, username string) error {
	_, err := s.creds.FindUser(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("subject lookup: %w", err)
	}

	_, err = s.creds.FindContributor(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrContributorNotFound) {
		return fmt.Errorf("subject lookup: %w", err)
	}
	return domain.ErrInvalidToken
}

// Revoke deletes the token row if present. Idempotent: revoking twice reports
// true then false, never an error.
func (s *TokenService) Revoke(ctx context.Context, token string) (bool, error) {
	found, err := s.tokens.Delete(ctx, token)
	if err != nil {
		return false, fmt.Errorf("revoke token: %w", err)
	}
	if found {
		s.logger.Info().Msg("token revoked")
	}
	return found, nil
}

// SweepExpired removes every row whose expiry has passed and returns the
// count. Callers invoke it per request, at startup and at shutdown; there is
// no background timer.
func (s *TokenService) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.tokens.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("sweep expired tokens: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int64("count", count).Msg("expired tokens swept")
	}
	return count, nil
}
