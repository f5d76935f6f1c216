package sanitize

import (
	"net/url"
	"strings"

	"bibshelf/src/internal/schema"
)

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to max runes (if max <= 0, no truncation).
func CleanString(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
			n++
			if max > 0 && n >= max {
				break
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// CleanDOI strips resolver prefixes so "https://doi.org/10.1/x" becomes "10.1/x".
func CleanDOI(raw string) string {
	d := CleanString(raw, 256)
	lower := strings.ToLower(d)
	for _, p := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(d[len(p):])
		}
	}
	return d
}

// maxFieldLen bounds a single imported field value.
const maxFieldLen = 12000

// CleanEntry applies conservative sanitization to an imported entry: control
// characters are removed, field names canonicalized, url and doi normalized, and
// fields left empty after cleaning are dropped. Invalid URLs are kept verbatim
// rather than discarded.
func CleanEntry(e *schema.Entry) {
	if e == nil {
		return
	}
	e.Type = CleanString(e.Type, 32)
	e.Key = CleanString(e.Key, 256)
	if len(e.Fields) == 0 {
		return
	}
	fields := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		name := schema.CanonicalField(k)
		v = CleanString(v, maxFieldLen)
		switch name {
		case "url":
			if u := CleanURL(v); u != "" {
				v = u
			}
		case "doi":
			v = CleanDOI(v)
		}
		if name == "" || v == "" {
			continue
		}
		fields[name] = v
	}
	e.Fields = fields
}

// CleanConstant trims the name and strips control characters from the content.
func CleanConstant(c *schema.StringConstant) {
	if c == nil {
		return
	}
	c.Name = CleanString(c.Name, 256)
	c.Content = CleanString(c.Content, maxFieldLen)
}
