package validation

import (
	"errors"
)

const MinPasswordLength = 6

var ErrPasswordTooShort = errors.New("password must be at least 6 characters")
var ErrPasswordTooLong = errors.New("password must not exceed 72 characters")

// ValidatePassword enforces the sign-in minimum length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	// bcrypt silently truncates anything past 72 bytes
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	return nil
}
