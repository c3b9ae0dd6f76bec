package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/accountaction/domain"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/db"
)

// PostgresRepository persists account-action tokens in the
// account_action_tokens table.
type PostgresRepository struct {
	q db.Querier
}

func NewPostgresRepository(q db.Querier) *PostgresRepository {
	return &PostgresRepository{q: q}
}

const tokenColumns = `id, user_id, purpose, token_hash, expires_at, created_at`

// Create inserts the token record and returns the persisted projection.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.Token) (*domain.Token, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	row := r.q.QueryRowContext(ctx,
		`INSERT INTO account_action_tokens (user_id, purpose, token_hash, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+tokenColumns,
		t.UserID, string(t.Purpose), t.TokenHash, t.ExpiresAt)
	return scanToken(row)
}

// GetByHash returns the token with the given hash and purpose, or nil if no
// such token exists.
func (r *PostgresRepository) GetByHash(ctx context.Context, hash string, purpose domain.Purpose) (*domain.Token, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM account_action_tokens WHERE token_hash = $1 AND purpose = $2`,
		hash, string(purpose))
	return scanToken(row)
}

// Delete removes a single token by id. Deleting an already-consumed token is
// not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM account_action_tokens WHERE id = $1`, id)
	return err
}

// DeleteByUser removes every outstanding token of one purpose for a user, so
// that issuing a new link invalidates older ones.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string, purpose domain.Purpose) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM account_action_tokens WHERE user_id = $1 AND purpose = $2`,
		userID, string(purpose))
	return err
}

// DeleteExpired sweeps tokens past their redeem-by time and returns how many
// were removed.
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM account_action_tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanToken(row *sql.Row) (*domain.Token, error) {
	var t domain.Token
	var purpose string
	err := row.Scan(&t.ID, &t.UserID, &purpose, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.Purpose = domain.Purpose(purpose)
	return &t, nil
}
