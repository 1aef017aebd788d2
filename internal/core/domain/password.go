package domain

import (
	"strings"
	"unicode"
)

// passwordSymbols is the punctuation set a password must draw from.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// PasswordPolicyViolation returns a user-facing message describing the first
// rule pw breaks, or "" when pw is acceptable.
func PasswordPolicyViolation(pw string) string {
	if pw == "" {
		return "Password is required"
	}
	first := []rune(pw)[0]
	if first > unicode.MaxASCII || !unicode.IsUpper(first) {
		return "Password must start with an uppercase letter"
	}
	if !strings.ContainsAny(pw, "0123456789") {
		return "Password must contain at least one number"
	}
	if !strings.ContainsAny(pw, passwordSymbols) {
		return "Password must contain at least one special character"
	}
	return ""
}
