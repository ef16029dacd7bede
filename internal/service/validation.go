package service

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrUsernameRequired  = errors.New("username is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrPasswordRequired  = errors.New("password is required")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordNoLower   = errors.New("password must contain at least 1 lowercase letter")
	ErrPasswordNoUpper   = errors.New("password must contain at least 1 uppercase letter")
	ErrPasswordNoDigit   = errors.New("password must contain at least 1 digit")
	ErrPasswordNoSpecial = errors.New("password must contain at least 1 special character")
)

// passwordSpecials is the accepted special-character set.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// validateRegistration runs the registration checks in a fixed order and
// returns the first failure. Length is counted in code points so multi-byte
// characters size correctly.
func validateRegistration(username, email, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if email == "" {
		return ErrEmailRequired
	}
	return validatePassword(password)
}

// The composition classes are ASCII ranges; only the length rule counts
// full code points.
func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < 8 {
		return ErrPasswordTooShort
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return 'a' <= r && r <= 'z' }) {
		return ErrPasswordNoLower
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return 'A' <= r && r <= 'Z' }) {
		return ErrPasswordNoUpper
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return '0' <= r && r <= '9' }) {
		return ErrPasswordNoDigit
	}
	if !strings.ContainsAny(password, passwordSpecials) {
		return ErrPasswordNoSpecial
	}
	return nil
}

// IsValidationError reports whether err is a policy or required-field
// violation, as opposed to an internal fault.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUsernameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordNoLower) ||
		errors.Is(err, ErrPasswordNoUpper) ||
		errors.Is(err, ErrPasswordNoDigit) ||
		errors.Is(err, ErrPasswordNoSpecial)
}
