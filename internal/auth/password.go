package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the shortest plaintext the credential store accepts.
const MinPasswordLen = 6

var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// HashPassword turns a plaintext into a storable bcrypt credential. The
// output embeds its own random salt and cost, so the same plaintext hashes
// differently on every call. This is the only hashing scheme in the system.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) < MinPasswordLen {
		return "", ErrPasswordTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ComparePassword verifies a plaintext against a stored credential without
// leaking timing information. A malformed or empty credential verifies to
// false rather than erroring.
func ComparePassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
