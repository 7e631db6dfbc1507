package contacts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/shared"
)

// Repository defines persistence operations for contacts. Every method is
// scoped to the owning account.
type Repository interface {
	List(ctx context.Context, owner uuid.UUID) ([]Contact, error)
	Get(ctx context.Context, owner, id uuid.UUID) (*Contact, error)
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, owner, id uuid.UUID, req UpdateContactRequest) (*Contact, error)
	SetFavorite(ctx context.Context, owner, id uuid.UUID, favorite bool) (*Contact, error)
	Delete(ctx context.Context, owner, id uuid.UUID) (*Contact, error)
}

const contactColumns = `id, owner, name, email, phone, favorite, created_at, updated_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns the owner's contacts.
func (r *PGRepository) List(ctx context.Context, owner uuid.UUID) ([]Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE owner = $1 ORDER BY created_at`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		var c Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Get fetches one contact.
func (r *PGRepository) Get(ctx context.Context, owner, id uuid.UUID) (*Contact, error) {
	return r.one(r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE owner = $1 AND id = $2`, owner, id))
}

// Create inserts a new contact.
func (r *PGRepository) Create(ctx context.Context, contact *Contact) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO contacts (id, owner, name, email, phone, favorite)
VALUES ($1, $2, $3, $4, $5, $6)`,
		contact.ID, contact.Owner, contact.Name, contact.Email, contact.Phone, contact.Favorite)
	return err
}

// Update applies a partial update in one statement and returns the new row.
func (r *PGRepository) Update(ctx context.Context, owner, id uuid.UUID, req UpdateContactRequest) (*Contact, error) {
	return r.one(r.pool.QueryRow(ctx, `UPDATE contacts SET
name = COALESCE($3, name), email = COALESCE($4, email), phone = COALESCE($5, phone), updated_at = now()
WHERE owner = $1 AND id = $2 RETURNING `+contactColumns, owner, id, req.Name, req.Email, req.Phone))
}

// SetFavorite updates the favorite flag and returns the new row.
func (r *PGRepository) SetFavorite(ctx context.Context, owner, id uuid.UUID, favorite bool) (*Contact, error) {
	return r.one(r.pool.QueryRow(ctx, `UPDATE contacts SET favorite = $3, updated_at = now()
WHERE owner = $1 AND id = $2 RETURNING `+contactColumns, owner, id, favorite))
}

// Delete removes a contact and returns the removed row.
func (r *PGRepository) Delete(ctx context.Context, owner, id uuid.UUID) (*Contact, error) {
	return r.one(r.pool.QueryRow(ctx, `DELETE FROM contacts WHERE owner = $1 AND id = $2 RETURNING `+contactColumns, owner, id))
}

func (r *PGRepository) one(row pgx.Row) (*Contact, error) {
	var c Contact
	if err := scanContact(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanContact(row pgx.Row, c *Contact) error {
	return row.Scan(&c.ID, &c.Owner, &c.Name, &c.Email, &c.Phone, &c.Favorite, &c.CreatedAt, &c.UpdatedAt)
}

var _ Repository = (*PGRepository)(nil)
