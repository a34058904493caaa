package handler

import (
	"strings"
	"unicode"
)

// sanitize trims whitespace and strips control characters and angle brackets
// from client-supplied free text before it reaches the domain layer.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) || r == '<' || r == '>' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func sanitizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if clean := sanitize(v); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
