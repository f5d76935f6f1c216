package stringsx

import "strings"

// FirstNonEmpty returns the first string in vals that is non-empty when trimmed.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// CollapseSpace replaces every run of whitespace with a single space and trims the ends.
func CollapseSpace(s string) string { return strings.Join(strings.Fields(s), " ") }

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// StripBraces removes BibTeX grouping braces, e.g. "{NASA} team" -> "NASA team".
func StripBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}
