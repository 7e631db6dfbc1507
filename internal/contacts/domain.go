package contacts

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an address-book entry owned by one account.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Favorite  bool      `json:"favorite"`
	Owner     uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CreateContactRequest is the POST body.
type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=5,max=30"`
}

// UpdateContactRequest is the PUT body; absent fields keep their stored value.
type UpdateContactRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
}

// Empty reports whether no field was provided.
func (r UpdateContactRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil
}

// FavoriteRequest is the PATCH body for toggling favorite status.
type FavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}
