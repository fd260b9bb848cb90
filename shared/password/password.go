package password

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	Cost = bcrypt.DefaultCost

	// MinLength and MaxBytes bound accepted passwords. bcrypt ignores
	// everything past 72 bytes.
	MinLength = 8
	MaxBytes  = 72
)

var (
	ErrMismatch = errors.New("password does not match")
	ErrEmpty    = errors.New("password cannot be empty")
	ErrTooShort = fmt.Errorf("password must be at least %d characters", MinLength)
	ErrTooLong  = fmt.Errorf("password must be at most %d bytes", MaxBytes)
	ErrTooWeak  = errors.New("password must contain a letter and a digit")
)

// Strong checks the account password policy: length bounds plus at least one
// letter and one digit.
func Strong(plain string) error {
	switch {
	case plain == "":
		return ErrEmpty
	case len([]rune(plain)) < MinLength:
		return ErrTooShort
	case len(plain) > MaxBytes:
		return ErrTooLong
	}

	var letter, digit bool

	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !letter || !digit {
		return ErrTooWeak
	}

	return nil
}

// Hash bcrypts plain. It does not apply the strength policy, so stored
// accounts created under an older policy still rehash on change.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}

	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify compares plain with a stored hash. A wrong password yields
// ErrMismatch; a corrupt hash yields a wrapped bcrypt error.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}

	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
