// Package domain holds the session entity: one row per authenticated login.
package domain

import (
	"errors"
	"time"
)

// MaxTokenLength bounds the stored access and refresh token strings.
const MaxTokenLength = 2048

// Validation errors for session fields.
var (
	ErrUserIDRequired = errors.New("session user id is required")
	ErrTokenRequired  = errors.New("session tokens must be non-empty")
	ErrTokenTooLong   = errors.New("session token exceeds the maximum length")
	ErrExpiresInPast  = errors.New("session expiration must be in the future")
)

// Session represents one authenticated login instance. The id is assigned by
// the store at persistence, not at construction, and is embedded in both
// tokens as the session-id claim.
type Session struct {
	ID           string
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// Validate checks the session invariants: owning user set, both tokens
// non-empty and within the length bound, expiration strictly in the future.
func (s *Session) Validate() error {
	if s.UserID == "" {
		return ErrUserIDRequired
	}
	if s.AccessToken == "" || s.RefreshToken == "" {
		return ErrTokenRequired
	}
	if len(s.AccessToken) > MaxTokenLength || len(s.RefreshToken) > MaxTokenLength {
		return ErrTokenTooLong
	}
	if !s.ExpiresAt.After(time.Now()) {
		return ErrExpiresInPast
	}
	return nil
}
