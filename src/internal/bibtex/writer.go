package bibtex

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"bibshelf/src/internal/entrytype"
	"bibshelf/src/internal/schema"
)

var (
	// ErrMalformedField is returned when a field name or value cannot be written as BibTeX.
	ErrMalformedField = errors.New("malformed field")
	// ErrMalformedString is returned for @String constants with an unusable name or content.
	ErrMalformedString = errors.New("malformed string constant")
	// ErrMissingType is returned for entries without a type tag.
	ErrMissingType = errors.New("missing entry type")
)

// DefaultNonWrappableFields lists fields whose values are never line-wrapped.
var DefaultNonWrappableFields = []string{"url", "doi", "file"}

var constantName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:.+-]*$`)

// Options control how entries are rendered.
type Options struct {
	// WrapWidth wraps long field values at word boundaries; 0 disables wrapping.
	// A wrapped value has every run of whitespace (newlines included) collapsed
	// to one space or one line break, so only its whitespace-normalized form
	// survives. Values that fit on one line are written unchanged.
	WrapWidth int
	// NonWrappableFields are kept on a single line regardless of WrapWidth.
	NonWrappableFields []string
}

// Writer renders entries and string constants as BibTeX text.
type Writer struct {
	wrap    int
	nonWrap map[string]bool
}

// NewWriter returns a Writer for opts. A nil NonWrappableFields uses the defaults.
func NewWriter(opts Options) *Writer {
	fields := opts.NonWrappableFields
	if fields == nil {
		fields = DefaultNonWrappableFields
	}
	w := &Writer{wrap: opts.WrapWidth, nonWrap: map[string]bool{}}
	for _, f := range fields {
		w.nonWrap[schema.CanonicalField(f)] = true
	}
	return w
}

// Entry renders e as a single BibTeX block terminated by a newline:
//
//	@Article{key,
//	  author = {...},
//	}
//
// The type name and the leading field order come from the enricher when it knows
// the type; otherwise the raw type tag is used and fields are sorted by name.
func (w *Writer) Entry(e schema.Entry, types entrytype.Enricher) (string, error) {
	typ := strings.TrimSpace(e.Type)
	if typ == "" {
		return "", fmt.Errorf("entry %s: %w", e.ID, ErrMissingType)
	}
	var enrichment entrytype.EntryType
	ok := false
	if types != nil {
		enrichment, ok = types.Enrich(typ, nil)
	}
	if ok && enrichment.Name != "" {
		typ = enrichment.Name
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "@%s{%s,\n", typ, e.Key)
	for _, k := range fieldOrder(e, enrichment) {
		v := e.Fields[k]
		if strings.TrimSpace(v) == "" {
			continue
		}
		if !schema.ValidFieldName(k) {
			return "", fmt.Errorf("entry %s: field %q: %w", e.ID, k, ErrMalformedField)
		}
		if !balanced(v) {
			return "", fmt.Errorf("entry %s: field %s has unbalanced braces: %w", e.ID, k, ErrMalformedField)
		}
		b.WriteString(w.field(k, v))
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// String renders c as @String{name = "content"}. Content holding a bare double
// quote is brace-delimited instead.
func (w *Writer) String(c schema.StringConstant) (string, error) {
	if !constantName.MatchString(c.Name) {
		return "", fmt.Errorf("string %q: %w", c.Name, ErrMalformedString)
	}
	if !balanced(c.Content) {
		return "", fmt.Errorf("string %q has unbalanced braces: %w", c.Name, ErrMalformedString)
	}
	if strings.Contains(c.Content, `"`) {
		return fmt.Sprintf("@String{%s = {%s}}", c.Name, c.Content), nil
	}
	return fmt.Sprintf("@String{%s = \"%s\"}", c.Name, c.Content), nil
}

// Document renders constants (no separator between them) followed by entries.
// It is all-or-nothing: the first failure discards everything rendered so far.
func (w *Writer) Document(entries []schema.Entry, types entrytype.Enricher, constants []schema.StringConstant) (string, error) {
	var b strings.Builder
	for _, c := range constants {
		s, err := w.String(c)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	for _, e := range entries {
		s, err := w.Entry(e, types)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (w *Writer) field(name, value string) string {
	if ref, ok := Reference(value); ok {
		return fmt.Sprintf("  %s = %s,\n", name, ref)
	}
	head := fmt.Sprintf("  %s = {", name)
	if w.wrap <= 0 || w.nonWrap[name] || len(head)+len(value)+2 <= w.wrap {
		return head + value + "},\n"
	}
	return head + wrapValue(value, len(head), w.wrap) + "},\n"
}

// fieldOrder lists declared fields (required, then optional) followed by the
// remaining fields in ascending order.
func fieldOrder(e schema.Entry, t entrytype.EntryType) []string {
	out := make([]string, 0, len(e.Fields))
	seen := map[string]bool{}
	for _, k := range t.Fields() {
		k = schema.CanonicalField(k)
		if _, ok := e.Fields[k]; ok && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	for _, k := range e.FieldNames() {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

func wrapValue(value string, first, width int) string {
	const indent = "    "
	words := strings.Fields(value)
	var b strings.Builder
	col := first
	for i, word := range words {
		switch {
		case i == 0:
		case col+1+len(word) > width-2:
			b.WriteString("\n" + indent)
			col = len(indent)
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}

func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
