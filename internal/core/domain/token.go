package domain

import "time"

// Token is one issued session. The signed string itself is the key; a token
// absent from the store is invalid regardless of its signature, which is what
// makes logout effective before the embedded expiry is reached.
type Token struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Expired reports whether the stored expiry has passed at the given instant.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.Expires)
}
