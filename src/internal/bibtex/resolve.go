package bibtex

import (
	"strings"

	"bibshelf/src/internal/entrytype"
	"bibshelf/src/internal/schema"
)

// Reference reports whether value is an explicit #name# string reference and
// returns the bare name.
func Reference(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if len(v) < 3 || v[0] != '#' || v[len(v)-1] != '#' {
		return "", false
	}
	name := v[1 : len(v)-1]
	if !constantName.MatchString(name) {
		return "", false
	}
	return name, true
}

// ReferencedConstants returns the constants from known that entries refer to,
// in first-referenced order with each name at most once. A field value refers to
// a constant when the whole trimmed value, or its #name# form, equals the
// constant's name (case-sensitive). Fields are scanned entry by entry in the
// order the writer emits them, so with the same types the declarations follow
// the references in the entry text. A nil types scans fields by name.
func ReferencedConstants(entries []schema.Entry, types entrytype.Enricher, known []schema.StringConstant) []schema.StringConstant {
	if len(entries) == 0 || len(known) == 0 {
		return nil
	}
	byName := make(map[string]schema.StringConstant, len(known))
	for _, c := range known {
		if _, dup := byName[c.Name]; !dup {
			byName[c.Name] = c
		}
	}
	var out []schema.StringConstant
	seen := map[string]bool{}
	for _, e := range entries {
		var enrichment entrytype.EntryType
		if types != nil {
			enrichment, _ = types.Enrich(e.Type, nil)
		}
		for _, k := range fieldOrder(e, enrichment) {
			name := strings.TrimSpace(e.Fields[k])
			if ref, ok := Reference(name); ok {
				name = ref
			}
			c, ok := byName[name]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, c)
		}
	}
	return out
}
