package security

import "time"

// NewTestTokenCodec returns a TokenCodec with a fixed key for unit tests only.
// Callers must not use in production.
func NewTestTokenCodec() *TokenCodec {
	return NewTokenCodec([]byte("test-secret-key-0123456789abcdef"), "test-issuer", "test-audience", 15*time.Minute)
}
