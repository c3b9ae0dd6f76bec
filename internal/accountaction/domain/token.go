package domain

import (
	"errors"
	"time"
)

// Purpose identifies what an account-action token authorizes. A token is
// valid for exactly one purpose and one use.
type Purpose string

const (
	PurposeConfirmEmail  Purpose = "confirm_email"
	PurposeResetPassword Purpose = "reset_password"
	PurposeManageAccount Purpose = "manage_account"
)

// Valid reports whether p is one of the known purposes.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeConfirmEmail, PurposeResetPassword, PurposeManageAccount:
		return true
	}
	return false
}

// TTL returns how long a token of this purpose stays redeemable.
func (p Purpose) TTL() time.Duration {
	switch p {
	case PurposeConfirmEmail:
		return 48 * time.Hour
	default:
		return 1 * time.Hour
	}
}

var (
	ErrUserIDRequired = errors.New("account action token user id is required")
	ErrHashRequired   = errors.New("account action token hash is required")
	ErrBadPurpose     = errors.New("unknown account action purpose")
	ErrExpiresInPast  = errors.New("account action token expiration must be in the future")
)

// Token is a single-use, server-side record of an emailed action link. Only
// the SHA-256 hash of the secret is stored; the raw value travels in the
// email and is never persisted.
type Token struct {
	ID        string
	UserID    string
	Purpose   Purpose
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Validate checks the structural invariants of the token record.
func (t *Token) Validate() error {
	if t.UserID == "" {
		return ErrUserIDRequired
	}
	if t.TokenHash == "" {
		return ErrHashRequired
	}
	if !t.Purpose.Valid() {
		return ErrBadPurpose
	}
	if !t.ExpiresAt.After(time.Now()) {
		return ErrExpiresInPast
	}
	return nil
}

// Expired reports whether the token is past its redeem-by time.
func (t *Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
