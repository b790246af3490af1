package utils

import (
	"regexp"
	"strings"
)

// emailRegex matches the address shape accepted at registration. Anything
// stricter belongs to the mail provider; this only rejects obvious garbage.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an email address so it can be used as
// a stable identity key. All OTP state is keyed by the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail reports whether the given address has a plausible shape.
// It normalizes before checking, and returns the normalized address.
func ValidateEmail(email string) (string, bool) {
	normalized := NormalizeEmail(email)
	if normalized == "" || !emailRegex.MatchString(normalized) {
		return "", false
	}
	return normalized, true
}

// MaskEmail obscures the local part of an address for log output
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return "***" + email[at+1:]
	}
	return email[:1] + "***" + email[at:]
}
