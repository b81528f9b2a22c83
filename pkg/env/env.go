package env

import (
	"os"
	"regexp"
)

var placeholderRe = regexp.MustCompile(`^\$[A-Z_]+$`)

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// IsPlaceholder reports whether a value is an unexpanded reference such as
// "$PGHOST" left behind by a hosting dashboard.
func IsPlaceholder(value string) bool {
	return placeholderRe.MatchString(value)
}

// Usable returns value unless it is empty or a placeholder.
func Usable(value string) (string, bool) {
	if value == "" || IsPlaceholder(value) {
		return "", false
	}
	return value, true
}
