package repository

import (
	"context"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/accountaction/domain"
)

// Repository persists account-action tokens. Lookups are by hash; missing
// rows surface as a nil token rather than an error.
type Repository interface {
	Create(ctx context.Context, t *domain.Token) (*domain.Token, error)
	GetByHash(ctx context.Context, hash string, purpose domain.Purpose) (*domain.Token, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string, purpose domain.Purpose) error
	DeleteExpired(ctx context.Context) (int64, error)
}
