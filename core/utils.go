package core

import (
	"crypto/rand"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCode returns a random alphanumeric code of the given length.
// Uniqueness is not guaranteed; callers rely on store-level constraints.
func RandomCode(length int) string {
	buf := make([]byte, length)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeChars[int(b)%len(codeChars)]
	}
	return string(buf)
}
