package domain

import "errors"

// Authentication and token lifecycle.
var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenIssuance      = errors.New("token issuance failed")
	ErrForbidden          = errors.New("access forbidden")
)

// Accounts.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("username already registered")
	ErrEmailExists         = errors.New("email already registered")
	ErrContributorNotFound = errors.New("contributor not found")
	ErrInvalidRegistration = errors.New("invalid registration data")
	ErrSelfDeletion        = errors.New("cannot delete own account")
)

// Content registry.
var (
	ErrLanguageNotFound = errors.New("language not found")
	ErrLanguageExists   = errors.New("language already exists")
	ErrLectionNotFound  = errors.New("lection not found")
	ErrLectionExists    = errors.New("lection already exists")
)
