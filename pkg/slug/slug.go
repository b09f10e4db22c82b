package slug

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Default replaces slugs that normalize to nothing.
	Default = "seite"
	// Home is the fixed slug of the home page; it maps to the site root.
	Home = "index"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9-]`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
	validPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Normalize lowercases value, replaces everything outside [a-z0-9-] with a
// dash, collapses dash runs and trims edge dashes.
func Normalize(value string) string {
	out := strings.ToLower(value)
	out = invalidChars.ReplaceAllString(out, "-")
	out = dashRuns.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")
	if out == "" {
		return Default
	}
	return out
}

// Valid reports whether value is already in normalized form.
func Valid(value string) bool {
	return validPattern.MatchString(value)
}

// Unique returns candidate, or candidate with the smallest numeric suffix
// (-2, -3, ...) that is not in taken.
func Unique(candidate string, taken map[string]bool) string {
	if !taken[candidate] {
		return candidate
	}
	for n := 2; ; n++ {
		next := candidate + "-" + strconv.Itoa(n)
		if !taken[next] {
			return next
		}
	}
}
