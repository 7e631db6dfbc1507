package users

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a user's plan tier.
type Subscription string

const (
	SubscriptionStarter  Subscription = "starter"
	SubscriptionPro      Subscription = "pro"
	SubscriptionBusiness Subscription = "business"
)

// Valid reports whether s is a known tier.
func (s Subscription) Valid() bool {
	switch s {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}

// User represents a registered account. PasswordHash never leaves this package;
// outward responses are built through Projection.
type User struct {
	ID                uuid.UUID
	Email             string
	PasswordHash      string
	AvatarURL         string
	Subscription      Subscription
	Verified          bool
	VerificationToken *string
	Token             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Projection is the subset of account fields safe to return to a client.
type Projection struct {
	Email        string       `json:"email"`
	Subscription Subscription `json:"subscription"`
	AvatarURL    string       `json:"avatarURL"`
}

// Project builds the client-safe view of the user.
func (u *User) Project() Projection {
	return Projection{Email: u.Email, Subscription: u.Subscription, AvatarURL: u.AvatarURL}
}

// RegisteredUser is the registration response payload. It additionally exposes
// the verification token so the initial confirmation flow can be exercised
// without intercepting mail.
type RegisteredUser struct {
	Projection
	VerificationToken string `json:"verificationToken"`
}

// LoginResult is the login response payload.
type LoginResult struct {
	Token string     `json:"token"`
	User  Projection `json:"user"`
}
