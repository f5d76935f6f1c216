package entrytype

import (
	"strings"
)

// EntryType describes the fields an entry type declares. Required and Optional
// keep declaration order; the serializer writes fields in that order.
type EntryType struct {
	Name     string   `yaml:"name" json:"name"`
	Required []string `yaml:"required,omitempty" json:"required,omitempty"`
	Optional []string `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// Enricher resolves type metadata for a type tag. The bool is false when no
// metadata is known; callers fall back to the raw tag.
type Enricher interface {
	Enrich(typeTag string, custom []EntryType) (EntryType, bool)
}

// Registry holds the standard BibTeX types plus any registered custom types.
type Registry struct {
	types  map[string]EntryType
	custom []EntryType
}

// NewRegistry returns a registry seeded with the standard BibTeX entry types.
func NewRegistry() *Registry {
	r := &Registry{types: map[string]EntryType{}}
	for _, t := range standardTypes {
		r.types[strings.ToLower(t.Name)] = t
	}
	return r
}

// Register adds or replaces a custom type. Custom types shadow standard ones.
func (r *Registry) Register(t EntryType) {
	key := strings.ToLower(strings.TrimSpace(t.Name))
	for i := range r.custom {
		if strings.ToLower(r.custom[i].Name) == key {
			r.custom[i] = t
			return
		}
	}
	r.custom = append(r.custom, t)
}

// Custom returns the registered custom types.
func (r *Registry) Custom() []EntryType { return append([]EntryType(nil), r.custom...) }

// Enrich looks typeTag up case-insensitively, first in custom (the argument,
// then the registry's own), then among the standard types.
func (r *Registry) Enrich(typeTag string, custom []EntryType) (EntryType, bool) {
	key := strings.ToLower(strings.TrimSpace(typeTag))
	if key == "" {
		return EntryType{}, false
	}
	for _, list := range [][]EntryType{custom, r.custom} {
		for _, t := range list {
			if strings.ToLower(t.Name) == key {
				return t, true
			}
		}
	}
	t, ok := r.types[key]
	return t, ok
}

// Fields returns required then optional field names.
func (t EntryType) Fields() []string {
	out := make([]string, 0, len(t.Required)+len(t.Optional))
	out = append(out, t.Required...)
	return append(out, t.Optional...)
}

var standardTypes = []EntryType{
	{Name: "Article", Required: []string{"author", "title", "journal", "year"}, Optional: []string{"volume", "number", "pages", "month", "note", "doi", "url"}},
	{Name: "Book", Required: []string{"author", "editor", "title", "publisher", "year"}, Optional: []string{"volume", "number", "series", "address", "edition", "month", "note", "isbn", "doi", "url"}},
	{Name: "Booklet", Required: []string{"title"}, Optional: []string{"author", "howpublished", "address", "month", "year", "note"}},
	{Name: "InBook", Required: []string{"author", "editor", "title", "chapter", "pages", "publisher", "year"}, Optional: []string{"volume", "number", "series", "type", "address", "edition", "month", "note"}},
	{Name: "InCollection", Required: []string{"author", "title", "booktitle", "publisher", "year"}, Optional: []string{"editor", "volume", "number", "series", "type", "chapter", "pages", "address", "edition", "month", "note"}},
	{Name: "InProceedings", Required: []string{"author", "title", "booktitle", "year"}, Optional: []string{"editor", "volume", "number", "series", "pages", "address", "month", "organization", "publisher", "note", "doi", "url"}},
	{Name: "Manual", Required: []string{"title"}, Optional: []string{"author", "organization", "address", "edition", "month", "year", "note"}},
	{Name: "MastersThesis", Required: []string{"author", "title", "school", "year"}, Optional: []string{"type", "address", "month", "note"}},
	{Name: "Misc", Optional: []string{"author", "title", "howpublished", "month", "year", "note", "url"}},
	{Name: "PhdThesis", Required: []string{"author", "title", "school", "year"}, Optional: []string{"type", "address", "month", "note"}},
	{Name: "Proceedings", Required: []string{"title", "year"}, Optional: []string{"editor", "volume", "number", "series", "address", "month", "organization", "publisher", "note"}},
	{Name: "TechReport", Required: []string{"author", "title", "institution", "year"}, Optional: []string{"type", "number", "address", "month", "note"}},
	{Name: "Unpublished", Required: []string{"author", "title", "note"}, Optional: []string{"month", "year"}},
}
