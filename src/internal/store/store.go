package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"bibshelf/src/internal/bibtex"
	"bibshelf/src/internal/entrytype"
	"bibshelf/src/internal/schema"
)

// Library is the on-disk bibliography database: entries, @String constants and
// any custom entry types the library defines.
type Library struct {
	Types   []entrytype.EntryType   `yaml:"types,omitempty"`
	Entries []schema.Entry          `yaml:"entries"`
	Strings []schema.StringConstant `yaml:"strings"`
}

// Load reads the library at path. A missing file yields an empty library.
func Load(path string) (*Library, error) {
	lib := &Library{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return lib, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, lib); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	for i := range lib.Entries {
		if strings.TrimSpace(lib.Entries[i].ID) == "" {
			lib.Entries[i].ID = schema.NewID()
		}
		if err := lib.Entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid entry %d in %s: %w", i, path, err)
		}
	}
	for i := range lib.Strings {
		if strings.TrimSpace(lib.Strings[i].ID) == "" {
			lib.Strings[i].ID = schema.NewID()
		}
	}
	return lib, nil
}

// Save writes the library to path, creating parent directories.
func (l *Library) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	buf, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// StringValues returns a copy of the library's string constants.
func (l *Library) StringValues() []schema.StringConstant {
	return append([]schema.StringConstant(nil), l.Strings...)
}

// SetStrings replaces all string constants.
func (l *Library) SetStrings(values []schema.StringConstant) {
	l.Strings = append([]schema.StringConstant(nil), values...)
}

// StringByName looks a constant up by exact name.
func (l *Library) StringByName(name string) (schema.StringConstant, bool) {
	for _, c := range l.Strings {
		if c.Name == name {
			return c, true
		}
	}
	return schema.StringConstant{}, false
}

// FindByKeys returns the entries whose citation key matches one of keys
// (case-insensitive), in the order the keys were given. Unknown keys are
// reported together in the error; the found entries are still returned.
func (l *Library) FindByKeys(keys []string) ([]schema.Entry, error) {
	var out []schema.Entry
	var missing []string
	for _, k := range keys {
		k = strings.TrimSpace(k)
		found := false
		for _, e := range l.Entries {
			if e.Key != "" && strings.EqualFold(e.Key, k) {
				out = append(out, e)
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return out, fmt.Errorf("no entry found for key(s): %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// AddEntries validates and appends entries, assigning IDs where missing.
func (l *Library) AddEntries(entries ...schema.Entry) error {
	for _, e := range entries {
		if strings.TrimSpace(e.ID) == "" {
			e.ID = schema.NewID()
		}
		if err := e.Validate(); err != nil {
			return err
		}
		l.Entries = append(l.Entries, e)
	}
	return nil
}

// MergeStrings updates the content of constants whose names already exist and
// appends the rest. It returns how many were added and updated.
func (l *Library) MergeStrings(values []schema.StringConstant) (added, updated int) {
	for _, v := range values {
		replaced := false
		for i := range l.Strings {
			if l.Strings[i].Name == v.Name {
				if l.Strings[i].Content != v.Content {
					l.Strings[i].Content = v.Content
					updated++
				}
				replaced = true
				break
			}
		}
		if !replaced {
			if v.ID == "" {
				v.ID = schema.NewID()
			}
			l.Strings = append(l.Strings, v)
			added++
		}
	}
	return added, updated
}

// ExportBib writes the whole library as BibTeX: every constant, then entries in
// a deterministic order (type, key, id).
func (l *Library) ExportBib(w io.Writer, bw *bibtex.Writer, types entrytype.Enricher) error {
	entries := append([]schema.Entry(nil), l.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		ei, ej := entries[i], entries[j]
		ti, tj := strings.ToLower(ei.Type), strings.ToLower(ej.Type)
		if ti != tj {
			return ti < tj
		}
		if ei.Key != ej.Key {
			return ei.Key < ej.Key
		}
		return ei.ID < ej.ID
	})
	var b strings.Builder
	for _, c := range l.Strings {
		s, err := bw.String(c)
		if err != nil {
			return err
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	if len(l.Strings) > 0 {
		b.WriteString("\n")
	}
	for _, e := range entries {
		s, err := bw.Entry(e, types)
		if err != nil {
			return err
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
