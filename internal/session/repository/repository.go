package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/session/domain"
)

// ErrNotFound is returned by Delete when no session matches the refresh token.
var ErrNotFound = errors.New("session not found")

// Repository defines persistence for sessions.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	Create(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error)
	Update(ctx context.Context, id, accessToken, refreshToken string, expiresAt time.Time) error
	Delete(ctx context.Context, refreshToken string) error
	DeleteByUser(ctx context.Context, userID string) error
}
