// Package service defines infrastructure service interfaces consumed by the
// usecase layer.
package service

import "storefront/internal/errors"

// ErrMalformedHash is returned by Check when the stored hash cannot be parsed.
// It is distinct from a plain mismatch: a mismatch is (false, nil).
var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher hashes credentials with a per-call random salt and verifies
// candidates against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Check reports whether password matches hash. A corrupt stored hash
	// yields (false, ErrMalformedHash), never a silent mismatch.
	Check(password, hash string) (bool, error)
}
