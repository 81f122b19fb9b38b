// Package normalize provides canonical forms for user-supplied fields so
// lookups and uniqueness checks behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address. Email comparison and the
// unique index on accounts both operate on this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Topic lowercases a topic name to the stored vocabulary form
// ("Arrays" -> "arrays").
func Topic(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AuthMethod lowercases and trims an auth method ("password", "google").
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
