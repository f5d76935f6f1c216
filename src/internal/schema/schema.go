package schema

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Entry is a single bibliographic record: a type tag, an optional citation key
// and a set of fields keyed by canonical (lower-case) field name.
type Entry struct {
	ID     string            `yaml:"id" json:"id"`
	Type   string            `yaml:"type" json:"type"`
	Key    string            `yaml:"key,omitempty" json:"key,omitempty"`
	Fields map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// StringConstant is a named BibTeX @String value. Its ID is stable across
// reordering and renames.
type StringConstant struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Content string `yaml:"content" json:"content"`
}

var fieldName = regexp.MustCompile(`^[a-z][a-z0-9_:.+-]*$`)

// NewID returns a fresh random identifier.
func NewID() string { return uuid.NewString() }

// NewEntry returns an entry of the given type with a fresh ID and no fields.
func NewEntry(typ string) Entry {
	return Entry{ID: NewID(), Type: typ, Fields: map[string]string{}}
}

// NewStringConstant returns a constant with a fresh ID.
func NewStringConstant(name, content string) StringConstant {
	return StringConstant{ID: NewID(), Name: name, Content: content}
}

// CanonicalField lower-cases and trims a field name.
func CanonicalField(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidFieldName reports whether name (after canonicalization) is usable as a BibTeX field name.
func ValidFieldName(name string) bool { return fieldName.MatchString(CanonicalField(name)) }

// SetField stores value under the canonical form of name.
func (e *Entry) SetField(name, value string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[CanonicalField(name)] = value
}

// Field returns the value for name and whether it is set.
func (e Entry) Field(name string) (string, bool) {
	v, ok := e.Fields[CanonicalField(name)]
	return v, ok
}

// ClearField removes name from the entry.
func (e *Entry) ClearField(name string) { delete(e.Fields, CanonicalField(name)) }

// FieldNames returns the entry's field names in ascending order.
func (e Entry) FieldNames() []string {
	out := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// UnmarshalYAML canonicalizes field names so hand-edited libraries may use any case.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	type plain Entry
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	if len(p.Fields) > 0 {
		e.Fields = make(map[string]string, len(p.Fields))
		for k, v := range p.Fields {
			e.Fields[CanonicalField(k)] = v
		}
	}
	return nil
}

// Validate applies basic structural rules.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(e.Type) == "" {
		return errors.New("type is required")
	}
	if strings.ContainsAny(e.Key, ",{}() \t\n") {
		return fmt.Errorf("invalid key: %q", e.Key)
	}
	for k := range e.Fields {
		if !ValidFieldName(k) {
			return fmt.Errorf("invalid field name: %q", k)
		}
	}
	return nil
}
