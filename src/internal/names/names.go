package names

import (
	"regexp"
	"strings"

	"bibshelf/src/internal/stringsx"
)

var andSep = regexp.MustCompile(`(?i)\s+and\s+`)

// Initials converts a given name string into spaced initials: "Jane Q" -> "J. Q.".
// Hyphenated names keep the hyphen: "Jean-Paul" -> "J.-P.".
func Initials(given string) string {
	given = strings.TrimSpace(given)
	if given == "" {
		return ""
	}
	var out []string
	for _, w := range strings.Fields(given) {
		var parts []string
		for _, h := range strings.Split(w, "-") {
			r := []rune(h)
			if len(r) == 0 {
				continue
			}
			parts = append(parts, strings.ToUpper(string(r[0]))+".")
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, "-"))
		}
	}
	return strings.Join(out, " ")
}

// Split splits a BibTeX name into (family, givenInitials). It accepts either
// "Family, Given Names" or "Given Names Family". A name wrapped in braces is a
// corporate author and is returned whole as the family part.
func Split(name string) (family, givenInitials string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
		return stringsx.StripBraces(name), ""
	}
	name = stringsx.StripBraces(name)
	if i := strings.Index(name, ","); i >= 0 {
		family = strings.TrimSpace(name[:i])
		given := strings.TrimSpace(name[i+1:])
		return family, Initials(given)
	}
	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0], ""
	}
	family = parts[len(parts)-1]
	given := strings.Join(parts[:len(parts)-1], " ")
	return family, Initials(given)
}

// SplitAuthors splits a BibTeX author list on "and".
func SplitAuthors(s string) []string {
	var out []string
	for _, p := range andSep.Split(strings.TrimSpace(s), -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Display renders "Family, G." (or just the family name) for listings.
func Display(name string) string {
	fam, giv := Split(name)
	if fam == "" || giv == "" {
		return fam
	}
	return fam + ", " + giv
}
