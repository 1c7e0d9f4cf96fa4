package validation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email is not a valid address")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NormalizeEmail trims whitespace and lower-cases the domain portion,
// so Test@GMail.com and Test@gmail.com refer to the same account.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at+1] + strings.ToLower(email[at+1:])
}

func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}

	return nil
}
