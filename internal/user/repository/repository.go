package repository

import (
	"context"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
)

// Repository persists user accounts. Single-row lookups return a nil user
// when no matching row exists; errors are reserved for database failures.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string, includeDeleted bool) (*domain.User, error)
	GetByEmail(ctx context.Context, email string, includeDeleted bool) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []string, includeDeleted bool) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, displayName, phone string, avatar []byte) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	ConfirmEmail(ctx context.Context, id string) error
	AssignRole(ctx context.Context, id string, role domain.Role) error
	SoftDelete(ctx context.Context, id string) error
	Recover(ctx context.Context, id string) error
}
