package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateActionToken returns a random one-time token for emailed account
// actions (confirm email, reset password, manage account state). The plaintext
// goes into the email link; only its hash is stored.
func GenerateActionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashActionToken returns a SHA-256 hash of the token string, hex-encoded.
// Used for storing and comparing action tokens without storing the raw token.
func HashActionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
