// Package token issues and verifies the two credentials used by the accounts
// subsystem: signed session tokens and opaque email-verification tokens.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired indicates a session token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens and bad signatures.
	ErrTokenInvalid = errors.New("token invalid")
)

// SessionClaims are the claims embedded in a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Session is the verified content of a session token.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// Issuer mints and verifies session tokens with a shared HS256 secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer constructs an Issuer.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// IssueSession signs a session token bound to the user id and email.
func (i *Issuer) IssueSession(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique per login so a re-login always produces a new token value
			// and stored-token comparison revokes the previous session.
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// VerifySession checks the signature and expiry of a session token and returns
// its content. Expired tokens are reported as ErrTokenExpired so callers can
// log the distinction; everything else verifies to ErrTokenInvalid.
func (i *Issuer) VerifySession(tokenString string) (*Session, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return &Session{UserID: userID, Email: claims.Email}, nil
}

// verificationTokenBytes yields 28 base64url characters, matching the entropy
// of the identifiers the verification links were minted with historically.
const verificationTokenBytes = 21

// NewVerificationToken returns an unguessable opaque identifier. It is stored
// and matched by equality only, never parsed or verified as a credential.
func NewVerificationToken() (string, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
