package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/shared"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/token"
)

// Mailer delivers a verification message for an address. Delivery happens
// outside the request cycle; callers only hand the message off.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, verificationToken string) error
}

// Service wraps the account lifecycle rules: registration, login, logout,
// email verification and subscription changes.
type Service struct {
	logger *slog.Logger
	repo   Repository
	hasher Hasher
	issuer *token.Issuer
	mailer Mailer
}

// NewService constructs a new Service.
func NewService(logger *slog.Logger, repo Repository, hasher Hasher, issuer *token.Issuer, mailer Mailer) *Service {
	return &Service{logger: logger, repo: repo, hasher: hasher, issuer: issuer, mailer: mailer}
}

// Register creates an unverified account and hands the verification mail to
// the mailer. Mail handoff failure is logged, never surfaced: the registration
// has already succeeded.
func (s *Service) Register(ctx context.Context, email, password string) (*RegisteredUser, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	verificationToken, err := token.NewVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("verification token: %w", err)
	}

	user := &User{
		ID:                uuid.New(),
		Email:             email,
		PasswordHash:      hash,
		AvatarURL:         AvatarURL(email),
		Subscription:      SubscriptionStarter,
		Verified:          false,
		VerificationToken: &verificationToken,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, verificationToken); err != nil {
		s.logger.Warn("send verification email", slog.String("email", user.Email), slog.Any("error", err))
	}

	return &RegisteredUser{Projection: user.Project(), VerificationToken: verificationToken}, nil
}

// Login validates credentials, requires a verified email, and mints a fresh
// session token. The stored token is overwritten: any previously issued
// session stops validating against the guard immediately.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(password, user.PasswordHash); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, shared.ErrNotVerified
	}

	sessionToken, err := s.issuer.IssueSession(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	if err := s.repo.SetToken(ctx, user.ID, &sessionToken); err != nil {
		return nil, err
	}

	return &LoginResult{Token: sessionToken, User: user.Project()}, nil
}

// Logout clears the stored session token. Clearing an already-absent token is
// ordinary success.
func (s *Service) Logout(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetToken(ctx, id, nil)
}

// Current returns the projection of the resolved account.
func (s *Service) Current(ctx context.Context, id uuid.UUID) (*Projection, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	projection := user.Project()
	return &projection, nil
}

// UpdateSubscription persists a new tier and returns the updated projection.
func (s *Service) UpdateSubscription(ctx context.Context, id uuid.UUID, subscription Subscription) (*Projection, error) {
	if !subscription.Valid() {
		return nil, shared.NewValidationError(fmt.Sprintf("subscription must be one of: %s, %s, %s",
			SubscriptionStarter, SubscriptionPro, SubscriptionBusiness))
	}
	user, err := s.repo.UpdateSubscription(ctx, id, subscription)
	if err != nil {
		return nil, err
	}
	projection := user.Project()
	return &projection, nil
}

// VerifyEmail consumes a verification token. Unknown and already-consumed
// tokens are indistinguishable to the caller: both report not found.
func (s *Service) VerifyEmail(ctx context.Context, verificationToken string) error {
	return s.repo.VerifyByToken(ctx, verificationToken)
}

// ResendVerification re-sends the account's existing verification token. The
// token is reused, never rotated, so earlier links stay valid.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return shared.ErrAlreadyVerified
	}
	if user.VerificationToken == nil {
		// Unverified accounts always carry a token; treat a hole as missing.
		return shared.ErrNotFound
	}
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, *user.VerificationToken); err != nil {
		s.logger.Warn("resend verification email", slog.String("email", user.Email), slog.Any("error", err))
	}
	return nil
}
