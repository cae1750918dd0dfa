package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/parlorworks/parlor/internal/enroll/domain"
)

var (
	// Code lifecycle rejections. These are expected business outcomes, not
	// failures, and are never logged at error level.
	ErrCodeInvalid  = errors.New("invite code not found")
	ErrCodeInactive = errors.New("invite code is inactive")
	ErrCodeExpired  = errors.New("invite code has expired")
	ErrCodeFull     = errors.New("invite code has no remaining uses")

	// Lookup outcomes.
	ErrUserNotFound   = errors.New("no account found for that email")
	ErrTenantNotFound = errors.New("tenant not found")

	// Input validation.
	ErrEmptyCode    = errors.New("code is required")
	ErrInvalidEmail = errors.New("a valid email address is required")
	ErrInvalidName  = errors.New("name must be at least 2 characters")

	// Admin validation.
	ErrInvalidCodeRequest   = errors.New("invalid invite code request")
	ErrInvalidTenantRequest = errors.New("invalid tenant request")
)

// emailPattern is deliberately loose: one @, no whitespace, a dot in the
// domain part. Real deliverability is the mail system's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RejectionCode maps a code lifecycle error to its wire code. Returns ""
// for errors that are not lifecycle rejections.
func RejectionCode(err error) string {
	switch {
	case errors.Is(err, ErrCodeInvalid):
		return string(domain.CodeInvalid)
	case errors.Is(err, ErrCodeInactive):
		return string(domain.CodeInactive)
	case errors.Is(err, ErrCodeExpired):
		return string(domain.CodeExpired)
	case errors.Is(err, ErrCodeFull):
		return string(domain.CodeFull)
	}
	return ""
}

// statusError maps a lifecycle verdict to its rejection sentinel. CodeValid
// maps to nil.
func statusError(status domain.CodeStatus) error {
	switch status {
	case domain.CodeInactive:
		return ErrCodeInactive
	case domain.CodeExpired:
		return ErrCodeExpired
	case domain.CodeFull:
		return ErrCodeFull
	}
	return nil
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// validateEmail checks the normalized email against the accepted shape.
func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// validateName requires at least 2 non-whitespace characters.
func validateName(name string) error {
	var n int
	for _, r := range name {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	if n < 2 {
		return ErrInvalidName
	}
	return nil
}
