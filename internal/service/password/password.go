package password

import (
	"unicode/utf8"

	"github.com/nkiryanov/billboard/internal/apperrors"
)

const MinLength = 6

// Interface to create or compare user password hashes
type Hasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

var DefaultHasher Hasher = BcryptHasher{}

// Validate returns raw password as is if it is acceptable
// Length counted in characters, not bytes
func Validate(raw string) (string, error) {
	if utf8.RuneCountInString(raw) < MinLength {
		return "", apperrors.ErrPasswordTooShort
	}

	return raw, nil
}
