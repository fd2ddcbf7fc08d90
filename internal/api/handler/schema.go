package handler

import (
	"encoding/json"
	"time"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// claimRequest carries the username the caller claims to be acting as.
// Services compare it against the verified token subject.
type claimRequest struct {
	Username string `json:"username" validate:"required"`
}

type lectionRequest struct {
	Username    string          `json:"username"     validate:"required"`
	LectionName string          `json:"lection_name" validate:"required"`
	Content     json.RawMessage `json:"content"      validate:"required"`
}

// --- Response types ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type contributorLoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        domain.Principal `json:"user"`
}

type logoutResponse struct {
	TokenRemoved bool `json:"token_removed"`
}

type profileResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Disabled bool   `json:"disabled"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type lectionResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Language    string          `json:"language"`
	Difficulty  string          `json:"difficulty,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by"`
	Content     json.RawMessage `json:"content"`
}

func toLectionResponse(l *domain.Lection) lectionResponse {
	return lectionResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Language:    l.Language,
		Difficulty:  l.Difficulty,
		CreatedAt:   l.CreatedAt,
		CreatedBy:   l.CreatedBy,
		Content:     l.Content,
	}
}
