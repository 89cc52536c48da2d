// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "taskboard/internal/errors"

// MaxPasswordBytes is the longest password a PasswordHasher must accept.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash for passwords over MaxPasswordBytes.
var ErrPasswordTooLong = errors.New("password exceeds maximum length")

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash generates a salted digest. Two calls with the same input return different digests.
	Hash(password string) (string, error)

	// Check reports whether password matches digest. It never panics on mismatch.
	Check(password, digest string) bool
}
