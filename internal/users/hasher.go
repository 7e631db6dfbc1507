package users

import "golang.org/x/crypto/bcrypt"

// Hasher is the one-way transform used for credential storage. There is no
// reversal operation.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) error
}

// BcryptHasher implements Hasher with a fixed work factor.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a BcryptHasher. Costs below the bcrypt minimum
// fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a salted password hash.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare validates the given cleartext password against the stored hash.
func (h *BcryptHasher) Compare(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var _ Hasher = (*BcryptHasher)(nil)
