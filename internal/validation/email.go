package validation

import (
	"errors"
	"regexp"
)

// emailPattern is the loose local@domain.tld shape the sign-in forms accept.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var ErrInvalidEmail = errors.New("invalid email address format")

// ValidateEmail checks the basic local@domain.tld shape and RFC 5321 length.
func ValidateEmail(email string) error {
	if email == "" || len(email) > 254 {
		return ErrInvalidEmail
	}

	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}
