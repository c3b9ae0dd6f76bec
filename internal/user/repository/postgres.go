package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/db"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
)

// PostgresRepository persists users in the users table.
type PostgresRepository struct {
	q db.Querier
}

func NewPostgresRepository(q db.Querier) *PostgresRepository {
	return &PostgresRepository{q: q}
}

const userColumns = `id, email, username, display_name, password_hash, role, phone, avatar,
	email_confirmed, is_deleted, deleted_at, created_at, updated_at`

// Create inserts the user and returns the persisted projection with
// store-assigned timestamps.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	row := r.q.QueryRowContext(ctx,
		`INSERT INTO users (id, email, username, display_name, password_hash, role, phone, avatar, email_confirmed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+userColumns,
		u.ID, u.Email, u.Username, u.DisplayName, u.PasswordHash, string(u.Role),
		u.Phone, u.Avatar, u.EmailConfirmed)
	return scanUser(row)
}

// GetByID returns the user with the given id, or nil if not found.
// Soft-deleted accounts are excluded unless includeDeleted is set.
func (r *PostgresRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	return scanUser(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail returns the user with the given email, matched
// case-insensitively, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string, includeDeleted bool) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	return scanUser(r.q.QueryRowContext(ctx, query, email))
}

// GetByIDs returns the users matching ids, in no particular order. Ids with
// no matching row are silently absent from the result.
func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string, includeDeleted bool) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.DisplayName, &u.PasswordHash,
			&role, &u.Phone, &u.Avatar, &u.EmailConfirmed, &u.IsDeleted,
			&u.DeletedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Role = domain.Role(role)
		users = append(users, &u)
	}
	return users, rows.Err()
}

// UpdateProfile overwrites the user's mutable profile fields.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, displayName, phone string, avatar []byte) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET display_name = $2, phone = $3, avatar = $4, updated_at = now() WHERE id = $1`,
		id, displayName, phone, avatar)
	return err
}

// UpdatePassword stores a new password hash for the user.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash)
	return err
}

// ConfirmEmail marks the user's email address as verified.
func (r *PostgresRepository) ConfirmEmail(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET email_confirmed = TRUE, updated_at = now() WHERE id = $1`, id)
	return err
}

// AssignRole changes the user's role.
func (r *PostgresRepository) AssignRole(ctx context.Context, id string, role domain.Role) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, string(role))
	return err
}

// SoftDelete marks the account deleted and drops the stored avatar. The row
// itself survives so historical references keep resolving when callers ask
// for deleted accounts.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET is_deleted = TRUE, deleted_at = now(), avatar = NULL, updated_at = now() WHERE id = $1`,
		id)
	return err
}

// Recover reverses a soft delete.
func (r *PostgresRepository) Recover(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET is_deleted = FALSE, deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	return err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.DisplayName, &u.PasswordHash,
		&role, &u.Phone, &u.Avatar, &u.EmailConfirmed, &u.IsDeleted,
		&u.DeletedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}
