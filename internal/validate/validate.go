// Package validate holds the one shared set of form validators. The
// same rules gate every modal form; there is deliberately no per-form
// divergence.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// passwordSymbols is the fixed set accepted by the password rule.
const passwordSymbols = "!@#$%^&*()-_=+[]{};:,.?"

const minPasswordLength = 9

// Required reports whether the field is non-empty after trimming.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

func Email(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Password enforces the create-user/create-admin rule: at least 9
// characters with an uppercase letter, a digit, and a symbol from the
// fixed set.
func Password(s string) bool {
	if utf8.RuneCountInString(s) < minPasswordLength {
		return false
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	return hasUpper && hasDigit && hasSymbol
}

// FieldErrors collects per-field messages for a form submission. Submit
// is all-or-nothing: any entry blocks the save.
type FieldErrors map[string]string

func (f FieldErrors) Require(field, value string) {
	if !Required(value) {
		f[field] = "This field is required."
	}
}

func (f FieldErrors) RequireEmail(field, value string) {
	if !Required(value) {
		f[field] = "This field is required."
		return
	}
	if !Email(value) {
		f[field] = "Enter a valid email address."
	}
}

func (f FieldErrors) RequirePassword(field, value string) {
	if !Required(value) {
		f[field] = "This field is required."
		return
	}
	if !Password(value) {
		f[field] = "Password must be at least 9 characters and include an uppercase letter, a digit, and a symbol."
	}
}

func (f FieldErrors) OK() bool {
	return len(f) == 0
}
