package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies salted one-way password hashes.
type Hasher struct {
	cost int
}

// NewHasher builds a bcrypt-backed hasher. Costs outside bcrypt's valid range
// fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted hash from the plaintext. bcrypt salts per call, so
// hashing the same input twice yields different outputs.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// a hash that is not valid bcrypt output is (false, ErrHashing). The
// underlying comparison is constant-time.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrHashing, err)
}
