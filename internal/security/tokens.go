package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a token is malformed, has a bad signature,
// is expired, or is missing a required claim.
var ErrInvalidToken = errors.New("invalid token")

// RefreshTTL is the fixed refresh token lifetime. Rotation never extends it.
const RefreshTTL = 30 * 24 * time.Hour

// UserInfo is the identity payload carried by both access and refresh tokens
// and reconstructed from them on decode.
type UserInfo struct {
	Name      string
	UserID    string
	Role      string
	SessionID string
}

// Claims holds the JWT claim set for access and refresh tokens. Both token
// kinds carry the same custom claims; only the expiry differs.
type Claims struct {
	jwt.RegisteredClaims
	Name      string `json:"name"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
}

// TokenCodec issues and validates JWTs signed with a single symmetric
// HMAC-SHA256 key. There is no key rotation and no asymmetric option.
type TokenCodec struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
}

// NewTokenCodec returns a TokenCodec signing with secret. issuer and audience
// are set on claims and, when non-empty, validated on decode. accessTTL
// defaults to 10 minutes when non-positive.
func NewTokenCodec(secret []byte, issuer, audience string, accessTTL time.Duration) *TokenCodec {
	if accessTTL <= 0 {
		accessTTL = 10 * time.Minute
	}
	return &TokenCodec{
		secret:    secret,
		issuer:    issuer,
		audience:  audience,
		accessTTL: accessTTL,
	}
}

// CreateAccessToken signs a short-lived access token carrying info.
// Returns the token string and its absolute expiration time.
func (c *TokenCodec) CreateAccessToken(info UserInfo) (string, time.Time, error) {
	return c.create(info, c.accessTTL)
}

// CreateRefreshToken signs a long-lived refresh token carrying the same claim
// set as the access token, with the fixed one-month expiration.
func (c *TokenCodec) CreateRefreshToken(info UserInfo) (string, time.Time, error) {
	return c.create(info, RefreshTTL)
}

func (c *TokenCodec) create(info UserInfo, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Name:      info.Name,
		UserID:    info.UserID,
		Role:      info.Role,
		SessionID: info.SessionID,
	}
	if c.issuer != "" {
		claims.Issuer = c.issuer
	}
	if c.audience != "" {
		claims.Audience = jwt.ClaimStrings{c.audience}
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Decode verifies the token's signature and expiry and returns the identity it
// carries. It fails with ErrInvalidToken when any required claim is absent or
// empty, or when user id / session id do not parse as UUIDs.
func (c *TokenCodec) Decode(tokenString string) (*UserInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if c.issuer != "" && claims.Issuer != c.issuer {
		return nil, ErrInvalidToken
	}
	if c.audience != "" {
		audOk := false
		for _, a := range claims.Audience {
			if a == c.audience {
				audOk = true
				break
			}
		}
		if !audOk {
			return nil, ErrInvalidToken
		}
	}
	if claims.Name == "" || claims.UserID == "" || claims.Role == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return nil, ErrInvalidToken
	}
	return &UserInfo{
		Name:      claims.Name,
		UserID:    claims.UserID,
		Role:      claims.Role,
		SessionID: claims.SessionID,
	}, nil
}
