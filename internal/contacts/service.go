package contacts

import (
	"context"

	"github.com/google/uuid"
)

// Service handles contact business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all of the owner's contacts.
func (s *Service) List(ctx context.Context, owner uuid.UUID) ([]Contact, error) {
	return s.repo.List(ctx, owner)
}

// Get returns one contact.
func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*Contact, error) {
	return s.repo.Get(ctx, owner, id)
}

// Create stores a new contact for the owner.
func (s *Service) Create(ctx context.Context, owner uuid.UUID, req CreateContactRequest) (*Contact, error) {
	contact := &Contact{
		ID:    uuid.New(),
		Owner: owner,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, owner, id uuid.UUID, req UpdateContactRequest) (*Contact, error) {
	return s.repo.Update(ctx, owner, id, req)
}

// SetFavorite toggles the favorite flag.
func (s *Service) SetFavorite(ctx context.Context, owner, id uuid.UUID, favorite bool) (*Contact, error) {
	return s.repo.SetFavorite(ctx, owner, id, favorite)
}

// Delete removes a contact and returns the removed entry.
func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) (*Contact, error) {
	return s.repo.Delete(ctx, owner, id)
}
