package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// In-memory repositories shared by the service tests.

type memCredentialRepo struct {
	mu           sync.Mutex
	users        map[string]*domain.User
	contributors map[string]*domain.Contributor
}

func newMemCredentialRepo() *memCredentialRepo {
	return &memCredentialRepo{
		users:        make(map[string]*domain.User),
		contributors: make(map[string]*domain.Contributor),
	}
}

func (r *memCredentialRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.users[user.Username] = &clone
	return &clone, nil
}

func (r *memCredentialRepo) FindUser(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memCredentialRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memCredentialRepo) DeleteUser(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *memCredentialRepo) FindContributor(_ context.Context, username string) (*domain.Contributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contributor, ok := r.contributors[username]
	if !ok {
		return nil, domain.ErrContributorNotFound
	}
	clone := *contributor
	return &clone, nil
}

type memTokenRepo struct {
	mu   sync.Mutex
	rows map[string]domain.Token
	// insertFailures makes the next n Insert calls fail, for retry tests.
	insertFailures int
	insertErr      error
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{rows: make(map[string]domain.Token)}
}

func (r *memTokenRepo) Insert(_ context.Context, token *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertFailures > 0 {
		r.insertFailures--
		return r.insertErr
	}
	r.rows[token.Token] = *token
	return nil
}

func (r *memTokenRepo) Find(_ context.Context, token string) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[token]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := row
	return &clone, nil
}

func (r *memTokenRepo) Delete(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[token]; !ok {
		return false, nil
	}
	delete(r.rows, token)
	return true, nil
}

func (r *memTokenRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key, row := range r.rows {
		if row.Expires.Before(before) {
			delete(r.rows, key)
			count++
		}
	}
	return count, nil
}

func (r *memTokenRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type memContentRepo struct {
	mu        sync.Mutex
	languages map[string]*domain.Language
	lections  map[string]*domain.Lection // key: language + "\x00" + title
}

func newMemContentRepo() *memContentRepo {
	return &memContentRepo{
		languages: make(map[string]*domain.Language),
		lections:  make(map[string]*domain.Lection),
	}
}

func lectionKey(language, title string) string {
	return language + "\x00" + title
}

func (r *memContentRepo) InsertLanguage(_ context.Context, language *domain.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.languages[language.Name]; exists {
		return domain.ErrLanguageExists
	}
	clone := *language
	r.languages[language.Name] = &clone
	return nil
}

func (r *memContentRepo) FindLanguage(_ context.Context, name string) (*domain.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	language, ok := r.languages[name]
	if !ok {
		return nil, domain.ErrLanguageNotFound
	}
	clone := *language
	return &clone, nil
}

func (r *memContentRepo) DeleteLanguage(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.languages[name]; !ok {
		return domain.ErrLanguageNotFound
	}
	delete(r.languages, name)
	return nil
}

func (r *memContentRepo) ListLanguages(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := []string{}
	for name := range r.languages {
		names = append(names, name)
	}
	return names, nil
}

func (r *memContentRepo) InsertLection(_ context.Context, lection *domain.Lection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := lectionKey(lection.Language, lection.Title)
	if _, exists := r.lections[key]; exists {
		return domain.ErrLectionExists
	}
	clone := *lection
	r.lections[key] = &clone
	return nil
}

func (r *memContentRepo) FindLectionByTitle(_ context.Context, language, title string) (*domain.Lection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lection, ok := r.lections[lectionKey(language, title)]
	if !ok {
		return nil, domain.ErrLectionNotFound
	}
	clone := *lection
	return &clone, nil
}

func (r *memContentRepo) FindLectionByID(_ context.Context, language, id string) (*domain.Lection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lection := range r.lections {
		if lection.Language == language && lection.ID == id {
			clone := *lection
			return &clone, nil
		}
	}
	return nil, domain.ErrLectionNotFound
}

func (r *memContentRepo) ReplaceLectionContent(_ context.Context, language, title string, content json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lection, ok := r.lections[lectionKey(language, title)]
	if !ok {
		return domain.ErrLectionNotFound
	}
	lection.Content = content
	return nil
}

func (r *memContentRepo) DeleteLection(_ context.Context, language, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := lectionKey(language, title)
	if _, ok := r.lections[key]; !ok {
		return domain.ErrLectionNotFound
	}
	delete(r.lections, key)
	return nil
}

func (r *memContentRepo) ListLections(_ context.Context, language string) ([]domain.LectionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summaries := []domain.LectionSummary{}
	for _, lection := range r.lections {
		if lection.Language == language {
			summaries = append(summaries, domain.LectionSummary{ID: lection.ID, Title: lection.Title})
		}
	}
	return summaries, nil
}
