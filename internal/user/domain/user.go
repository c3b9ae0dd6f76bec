// Package domain holds the user entity and its validation invariants.
package domain

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxEmailLength bounds the stored email address.
	MaxEmailLength = 320
	// MaxDisplayNameLength bounds the user-facing display name.
	MaxDisplayNameLength = 50
	// MaxAvatarBytes bounds the stored avatar image (2 MB).
	MaxAvatarBytes = 2 << 20
	// MinAvatarSide is the minimum avatar width and height in pixels.
	MinAvatarSide = 32
)

// Validation errors for user fields. The auth service maps these to
// bad-request responses.
var (
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTooLong       = fmt.Errorf("email must be at most %d characters", MaxEmailLength)
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrDisplayNameTooLong = fmt.Errorf("display name must be at most %d characters", MaxDisplayNameLength)
	ErrAvatarTooLarge     = errors.New("avatar must be at most 2MB")
	ErrAvatarType         = errors.New("avatar must be a jpeg or png image")
	ErrAvatarNotSquare    = errors.New("avatar must be square")
	ErrAvatarTooSmall     = fmt.Errorf("avatar must be at least %dpx per side", MinAvatarSide)
	ErrInvalidRole        = errors.New("unknown role")
)

// Role is a user's platform role carried in token claims.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// View selects how much of a user is projected to a caller. It replaces the
// per-shape DTO classes of earlier iterations with a single tagged variant.
type View int

const (
	// ViewBasic projects identity and profile fields only.
	ViewBasic View = iota
	// ViewWithRole additionally projects the role.
	ViewWithRole
)

// User is the account entity. PasswordHash is a bcrypt hash; Avatar holds the
// raw image bytes or nil. Soft-deleted users keep their row with IsDeleted set
// and the avatar cleared.
type User struct {
	ID             string
	Email          string
	Username       string
	DisplayName    string
	PasswordHash   string
	Role           Role
	Phone          string
	Avatar         []byte
	EmailConfirmed bool
	IsDeleted      bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Projection returns a copy of u trimmed to the given view. ViewBasic drops
// the role so lower-privileged callers see profile fields only; the password
// hash never leaves the domain in either view.
func (u *User) Projection(v View) *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	if v == ViewBasic {
		out.Role = ""
	}
	return &out
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks format and length.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidateDisplayName checks length. An empty display name is allowed; the
// username stands in for it.
func ValidateDisplayName(name string) error {
	if utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return ErrDisplayNameTooLong
	}
	return nil
}

// ValidateAvatar checks size, MIME type (jpeg or png), squareness, and the
// minimum side length. A nil or empty avatar is valid (no avatar).
func ValidateAvatar(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if len(data) > MaxAvatarBytes {
		return ErrAvatarTooLarge
	}
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png":
	default:
		return ErrAvatarType
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ErrAvatarType
	}
	if cfg.Width != cfg.Height {
		return ErrAvatarNotSquare
	}
	if cfg.Width < MinAvatarSide {
		return ErrAvatarTooSmall
	}
	return nil
}

// Validate validates the user for persistence. Returns an error describing the
// first validation failure.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if err := ValidateDisplayName(u.DisplayName); err != nil {
		return err
	}
	if err := ValidateAvatar(u.Avatar); err != nil {
		return err
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// GenerateUsername derives a username from the email's local part and the
// user id, used when registration does not supply one. The id suffix keeps
// usernames unique across accounts sharing a local part.
func GenerateUsername(email, id string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	local = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, local)
	suffix := strings.ReplaceAll(id, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if local == "" {
		return suffix
	}
	return local + "-" + suffix
}
