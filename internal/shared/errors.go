package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrEmailInUse occurs when registration hits an existing email.
	ErrEmailInUse = errors.New("email in use")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotVerified occurs when an unverified account attempts to log in.
	ErrNotVerified = errors.New("email not verified")
	// ErrAlreadyVerified occurs when resending verification for a verified account.
	ErrAlreadyVerified = errors.New("verification already passed")
	// ErrNotAuthorized covers missing, malformed, expired or revoked session tokens.
	ErrNotAuthorized = errors.New("not authorized")
)

// ValidationError carries a client-facing message for a malformed request body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError wraps a message into a ValidationError.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
