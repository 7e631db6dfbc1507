package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/shared"
)

// Repository defines persistence operations for accounts. Every mutation is a
// single conditional statement so invariants hold without in-process locking.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	SetToken(ctx context.Context, id uuid.UUID, token *string) error
	UpdateSubscription(ctx context.Context, id uuid.UUID, subscription Subscription) (*User, error)
	VerifyByToken(ctx context.Context, verificationToken string) error
}

const userColumns = `id, email, password_hash, avatar_url, subscription, verified, verification_token, token, created_at, updated_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new account. A duplicate email maps to shared.ErrEmailInUse.
func (r *PGRepository) Create(ctx context.Context, user *User) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, email, password_hash, avatar_url, subscription, verified, verification_token)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.PasswordHash, user.AvatarURL, user.Subscription, user.Verified, user.VerificationToken)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key" {
			return shared.ErrEmailInUse
		}
		return err
	}
	return nil
}

// FindByEmail fetches an account by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// FindByID fetches an account by id.
func (r *PGRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// SetToken stores the account's current session token; nil clears it.
func (r *PGRepository) SetToken(ctx context.Context, id uuid.UUID, token *string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET token = $2, updated_at = now() WHERE id = $1`, id, token)
	return err
}

// UpdateSubscription persists a new tier and returns the updated account.
func (r *PGRepository) UpdateSubscription(ctx context.Context, id uuid.UUID, subscription Subscription) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `UPDATE users SET subscription = $2, updated_at = now()
WHERE id = $1 RETURNING `+userColumns, id, subscription))
}

// VerifyByToken marks the matching account verified and consumes the token in
// one statement. When two verifications race the loser sees no matching row.
func (r *PGRepository) VerifyByToken(ctx context.Context, verificationToken string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET verified = TRUE, verification_token = NULL, updated_at = now()
WHERE verification_token = $1 AND NOT verified`, verificationToken)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.AvatarURL, &user.Subscription,
		&user.Verified, &user.VerificationToken, &user.Token, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
