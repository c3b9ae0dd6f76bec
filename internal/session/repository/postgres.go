package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/db"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/session/domain"
)

// PostgresRepository persists sessions in the sessions table. It accepts a
// db.Querier so the same repository runs against the pool or inside a
// transaction.
type PostgresRepository struct {
	q db.Querier
}

// NewPostgresRepository returns a session repository over q.
func NewPostgresRepository(q db.Querier) *PostgresRepository {
	return &PostgresRepository{q: q}
}

const sessionColumns = `id, user_id, access_token, refresh_token, expires_at, created_at`

// GetByID returns the session for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

// GetByRefreshToken returns the session holding the given refresh token, or
// nil if not found.
func (r *PostgresRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE refresh_token = $1`, refreshToken)
	return scanSession(row)
}

// Create inserts a session row for the user and returns the persisted
// projection. The id is assigned here by the store; the caller embeds it in
// the token pair and sets the tokens with Update before committing.
func (r *PostgresRepository) Create(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	row := r.q.QueryRowContext(ctx,
		`INSERT INTO sessions (user_id, expires_at) VALUES ($1, $2)
		 RETURNING `+sessionColumns, userID, expiresAt)
	return scanSession(row)
}

// Update overwrites the session's mutable fields (tokens and expiration)
// matched by id.
func (r *PostgresRepository) Update(ctx context.Context, id, accessToken, refreshToken string, expiresAt time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET access_token = $2, refresh_token = $3, expires_at = $4 WHERE id = $1`,
		id, accessToken, refreshToken, expiresAt)
	return err
}

// Delete removes the session holding the given refresh token. Returns
// ErrNotFound when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, refreshToken string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE refresh_token = $1`, refreshToken)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser removes every session belonging to the user. Zero rows to
// delete is success.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.UserID, &s.AccessToken, &s.RefreshToken, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
