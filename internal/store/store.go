// Package store provides the unit-of-work boundary used by the service
// layer. Every business operation runs inside exactly one database
// transaction; InTx opens it, hands the callback a set of repositories bound
// to that transaction, and commits or rolls back based on the returned error.
package store

import (
	"context"
	"database/sql"

	actionrepo "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/accountaction/repository"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/db"
	sessionrepo "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/session/repository"
	userrepo "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/repository"
)

// Repos bundles the repositories visible inside one transaction.
type Repos struct {
	Users        userrepo.Repository
	Sessions     sessionrepo.Repository
	ActionTokens actionrepo.Repository
}

// Store runs callbacks inside a database transaction.
type Store interface {
	InTx(ctx context.Context, fn func(r Repos) error) error
}

// SQLStore is the production Store over a *sql.DB pool.
type SQLStore struct {
	pool *sql.DB
}

// New returns a Store over pool.
func New(pool *sql.DB) *SQLStore {
	return &SQLStore{pool: pool}
}

// InTx begins a transaction, builds transaction-scoped repositories and runs
// fn with them. The transaction commits when fn returns nil and rolls back
// otherwise.
func (s *SQLStore) InTx(ctx context.Context, fn func(r Repos) error) error {
	return db.WithTx(ctx, s.pool, func(tx *sql.Tx) error {
		return fn(Repos{
			Users:        userrepo.NewPostgresRepository(tx),
			Sessions:     sessionrepo.NewPostgresRepository(tx),
			ActionTokens: actionrepo.NewPostgresRepository(tx),
		})
	})
}
