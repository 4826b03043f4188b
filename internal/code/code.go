package code

import (
	"regexp"
	"strings"
)

var reCode = regexp.MustCompile(`^[A-Z][A-Z0-9]{0,7}$`)

// IsCode reports whether s is a valid account code: an uppercase letter
// followed by up to seven uppercase letters or digits, e.g. "A100".
func IsCode(s string) bool {
	return reCode.MatchString(s)
}

// Normalize uppercases and trims an account code before validation. It does
// not guarantee the result is valid; call IsCode on the result.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
