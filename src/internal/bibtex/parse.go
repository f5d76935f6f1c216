package bibtex

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	nbib "github.com/nickng/bibtex"

	"bibshelf/src/internal/schema"
)

// Document is the result of parsing BibTeX text.
type Document struct {
	Entries []schema.Entry
	Strings []schema.StringConstant
}

const placeholderKey = "bibshelfnokey"

var (
	emptyKey      = regexp.MustCompile(`(@[A-Za-z]+\s*\{)\s*,`)
	trailingComma = regexp.MustCompile(`,(\s*\n\s*)\}`)
	entryHeader   = regexp.MustCompile(`@\s*([A-Za-z]+)\s*[{(]`)
)

// Parse reads entries and @String constants from text. Entries written with an
// empty citation key (as the clipboard does) come back with an empty Key; string
// references in field values come back in #name# form.
func Parse(text string) (*Document, error) {
	doc := &Document{}
	if strings.TrimSpace(text) == "" {
		return doc, nil
	}
	n := 0
	text = emptyKey.ReplaceAllStringFunc(text, func(m string) string {
		n++
		open := emptyKey.FindStringSubmatch(m)[1]
		return open + placeholderKey + strconv.Itoa(n) + ","
	})
	text = trailingComma.ReplaceAllString(text, "$1}")

	typeCase := sourceTypeCase(text)
	parsed, err := nbib.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse bibtex: %w", err)
	}
	names := make([]string, 0, len(parsed.StringVar))
	for name := range parsed.StringVar {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := parsed.StringVar[name]
		if v == nil || v.Value == nil {
			continue
		}
		doc.Strings = append(doc.Strings, schema.NewStringConstant(name, v.Value.String()))
	}
	for _, be := range parsed.Entries {
		typ := be.Type
		if orig, ok := typeCase[typ]; ok {
			typ = orig
		}
		e := schema.NewEntry(typ)
		if !strings.HasPrefix(be.CiteName, placeholderKey) {
			e.Key = be.CiteName
		}
		for k, v := range be.Fields {
			if v == nil {
				continue
			}
			if ref, ok := v.(*nbib.BibVar); ok {
				e.SetField(k, "#"+ref.Key+"#")
				continue
			}
			e.SetField(k, v.String())
		}
		doc.Entries = append(doc.Entries, e)
	}
	return doc, nil
}

// sourceTypeCase maps lower-cased entry types to the spelling first used in
// text; the parser lower-cases types and unknown ones would otherwise lose it.
func sourceTypeCase(text string) map[string]string {
	out := map[string]string{}
	for _, m := range entryHeader.FindAllStringSubmatch(text, -1) {
		lower := strings.ToLower(m[1])
		if _, seen := out[lower]; !seen {
			out[lower] = m[1]
		}
	}
	return out
}
