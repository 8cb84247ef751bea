package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation constants
const (
	MaxEntryNameLength = 255
	MinPasswordLength  = 8
	MaxPasswordLength  = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEntryName validates an entry name for add/edit operations.
func ValidateEntryName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return ErrEmptyName
	}

	if len(name) > MaxEntryNameLength {
		return fmt.Errorf("%w: limit is %d characters", ErrNameTooLong, MaxEntryNameLength)
	}

	return nil
}

// ValidateAmount rejects zero subtraction amounts. Sign is unconstrained:
// a negative amount is an addition and the original behaved the same way.
func ValidateAmount(amount float64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	return nil
}

// ValidateIndex checks an entry index against the record length n.
func ValidateIndex(index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, n)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidatePassword validates password length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	}

	return nil
}
