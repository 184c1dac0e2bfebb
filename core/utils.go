package core

import "strings"

// CleanString strips surrounding whitespace from s; pass true to also
// lowercase it (used to normalize emails before lookups).
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}
