package domain

import (
	"encoding/json"
	"time"
)

// Language groups lections. CreatedBy is informational only; it is never
// consulted for authorization.
type Language struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// Lection is a single lesson unit. Content is an opaque structured blob owned
// by the editor front-ends; it is stored and returned verbatim.
type Lection struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Language    string          `json:"language"`
	Difficulty  string          `json:"difficulty,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by"`
	Content     json.RawMessage `json:"content"`
}

// LectionSummary is the lightweight view used in per-language listings.
type LectionSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
