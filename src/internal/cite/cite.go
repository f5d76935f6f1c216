package cite

import (
	"fmt"
	"html"
	"strings"

	"bibshelf/src/internal/bibtex"
	"bibshelf/src/internal/dates"
	"bibshelf/src/internal/names"
	"bibshelf/src/internal/schema"
	"bibshelf/src/internal/stringsx"
)

// Lookup resolves a string constant name to its content.
type Lookup func(name string) (string, bool)

// FromConstants builds a Lookup over constants (case-sensitive names).
func FromConstants(constants []schema.StringConstant) Lookup {
	m := make(map[string]string, len(constants))
	for _, c := range constants {
		if _, ok := m[c.Name]; !ok {
			m[c.Name] = c.Content
		}
	}
	return func(name string) (string, bool) { v, ok := m[name]; return v, ok }
}

// APA renders a human-readable APA-style reference for e. Field values naming
// a string constant are replaced by the constant's content.
func APA(e schema.Entry, lookup Lookup) string {
	get := func(k string) string { return Expand(e.Fields[k], lookup) }
	authors := formatAuthors(get("author"))
	year := apaYear(get("year"), get("date"))
	title := get("title")
	cont := stringsx.FirstNonEmpty(get("journal"), get("booktitle"))

	var b strings.Builder
	if authors != "" {
		b.WriteString(authors + " ")
	}
	if year != "" {
		b.WriteString("(" + year + "). ")
	}
	if title != "" {
		b.WriteString(strings.TrimSuffix(title, ".") + ". ")
	}
	var details []string
	add(&details, cont)
	add(&details, volIssue(get("volume"), get("number")))
	add(&details, get("pages"))
	if cont == "" {
		add(&details, get("publisher"))
	}
	if len(details) > 0 {
		b.WriteString(strings.TrimSuffix(strings.Join(details, ", "), ".") + ". ")
	}
	if doi := get("doi"); doi != "" {
		b.WriteString("https://doi.org/" + strings.TrimPrefix(doi, "https://doi.org/"))
	} else if url := get("url"); url != "" {
		b.WriteString(url)
	}
	out := strings.TrimSpace(b.String())
	if out != "" && !strings.HasSuffix(out, ".") && !strings.Contains(out[strings.LastIndex(out, " ")+1:], "://") {
		out += "."
	}
	return out
}

// HTML renders the APA reference as an HTML fragment with the journal or book
// title in italics.
func HTML(e schema.Entry, lookup Lookup) string {
	text := html.EscapeString(APA(e, lookup))
	cont := html.EscapeString(stringsx.FirstNonEmpty(Expand(e.Fields["journal"], lookup), Expand(e.Fields["booktitle"], lookup)))
	if cont != "" {
		text = strings.Replace(text, cont, "<i>"+cont+"</i>", 1)
	}
	return "<p>" + text + "</p>"
}

// InText renders the parenthetical in-text citation, e.g. (Doe & Roe, 2020).
func InText(e schema.Entry, lookup Lookup) string {
	year := apaYear(Expand(e.Fields["year"], lookup), Expand(e.Fields["date"], lookup))
	if year == "" {
		year = "n.d."
	}
	var fams []string
	for _, a := range names.SplitAuthors(Expand(e.Fields["author"], lookup)) {
		if fam, _ := names.Split(a); fam != "" {
			fams = append(fams, fam)
		}
	}
	switch len(fams) {
	case 0:
		name := stringsx.FirstNonEmpty(Expand(e.Fields["publisher"], lookup), Expand(e.Fields["journal"], lookup), Expand(e.Fields["title"], lookup))
		if name == "" {
			name = "Anon"
		}
		return fmt.Sprintf("(%s, %s)", name, year)
	case 1:
		return fmt.Sprintf("(%s, %s)", fams[0], year)
	case 2:
		return fmt.Sprintf("(%s & %s, %s)", fams[0], fams[1], year)
	default:
		return fmt.Sprintf("(%s et al., %s)", fams[0], year)
	}
}

// Expand returns the content of the constant v names (bare or as #name#), or v itself.
func Expand(v string, lookup Lookup) string {
	v = strings.TrimSpace(v)
	if lookup == nil || v == "" {
		return v
	}
	name := v
	if ref, ok := bibtex.Reference(v); ok {
		name = ref
	}
	if c, ok := lookup(name); ok {
		return c
	}
	return v
}

func formatAuthors(s string) string {
	var parts []string
	for _, a := range names.SplitAuthors(s) {
		fam, giv := names.Split(a)
		if giv != "" {
			parts = append(parts, fmt.Sprintf("%s, %s", fam, giv))
		} else if fam != "" {
			parts = append(parts, fam)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", & " + parts[len(parts)-1]
	}
}

func apaYear(year, date string) string {
	if y := dates.EntryYear(year, date); y > 0 {
		return fmt.Sprintf("%d", y)
	}
	return ""
}

func volIssue(vol, iss string) string {
	if vol == "" {
		return ""
	}
	if iss == "" {
		return vol
	}
	return fmt.Sprintf("%s(%s)", vol, iss)
}

func add(parts *[]string, s string) {
	if s = strings.TrimSpace(s); s != "" {
		*parts = append(*parts, s)
	}
}
