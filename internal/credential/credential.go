// Package credential wraps one-way password hashing. Plaintext passwords
// exist only as arguments here and are never stored or logged.
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Hashed is a stored password hash. The salt and cost parameters are
// embedded in the hash itself.
type Hashed struct {
	hash string
}

// HashFrom hashes a plaintext password.
func HashFrom(plaintext string) (Hashed, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return Hashed{}, fmt.Errorf("hash password: %w", err)
	}
	return Hashed{hash: string(h)}, nil
}

// FromHash wraps an already-hashed value loaded from storage. No hashing
// is performed.
func FromHash(hash string) Hashed {
	return Hashed{hash: hash}
}

// Compare reports whether plaintext matches the stored hash. Any failure,
// including a malformed stored hash, reads as a mismatch.
func (c Hashed) Compare(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(plaintext)) == nil
}

// String returns the encoded hash for persistence.
func (c Hashed) String() string {
	return c.hash
}
