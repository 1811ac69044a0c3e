package utils

import "strings"

// Truncate returns s cut to at most max runes. Used to bound the slice of an
// opponent statement embedded in prompts; this is a token-cost control, the
// cut point carries no semantic meaning.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// CollapseWhitespace normalizes runs of whitespace (including newlines) to
// single spaces. Model output frequently arrives with ragged wrapping.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstNonEmpty returns the first non-blank string in the list, or "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
