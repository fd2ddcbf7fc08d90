package domain

import "time"

// User models an ordinary learner account. Users can authenticate and read
// content but never mutate it.
type User struct {
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	HashedPassword string    `json:"-"`
	Disabled       bool      `json:"disabled"`
	CreatedAt      time.Time `json:"created_at"`
}

// Contributor is a privileged account permitted to author languages and
// lections. A contributor is a separate principal class: a User and a
// Contributor with the same username are unrelated identities.
type Contributor struct {
	Username       string `json:"username"`
	HashedPassword string `json:"-"`
	IsAdmin        bool   `json:"is_admin"`
}

// Principal is the authenticated identity attached to a request after a
// successful token verification.
type Principal struct {
	Username      string `json:"username"`
	IsContributor bool   `json:"is_contributor"`
	IsAdmin       bool   `json:"is_admin"`
}
