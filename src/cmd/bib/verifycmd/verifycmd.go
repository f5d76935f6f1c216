package verifycmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bibshelf/src/internal/appenv"
	"bibshelf/src/internal/bibtex"
	"bibshelf/src/internal/constants"
	"bibshelf/src/internal/entrytype"
	"bibshelf/src/internal/schema"
)

// ErrProblems is returned when verification finds at least one problem.
var ErrProblems = errors.New("library has problems")

// Problem is a single finding about an entry or a string constant.
type Problem struct {
	Subject string
	Message string
}

// New returns the verify command which checks entries and string constants.
func New() *cobra.Command {
	var library string
	var strict bool
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check entries for missing required fields and @String constants for bad names or duplicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := appenv.Open(library)
			if err != nil {
				return err
			}
			defer env.Close()

			problems := CheckTypes(env.Types.Custom())
			problems = append(problems, Check(env.Library.Entries, env.Library.StringValues(), env.Types, env.Writer, strict)...)
			return report(cmd.OutOrStdout(), problems)
		},
	}
	cmd.Flags().StringVar(&library, "library", "", "Library file (default $BIB_LIBRARY or data/library.yaml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Also report entries without a citation key")
	return cmd
}

// Check inspects entries and constants and returns every problem found.
func Check(entries []schema.Entry, strs []schema.StringConstant, types entrytype.Enricher, w *bibtex.Writer, strict bool) []Problem {
	var out []Problem
	known := make(map[string]bool, len(strs))
	for _, c := range strs {
		known[c.Name] = true
	}
	for _, e := range entries {
		subject := label(e)
		if err := e.Validate(); err != nil {
			out = append(out, Problem{subject, err.Error()})
			continue
		}
		if strict && e.Key == "" {
			out = append(out, Problem{subject, "no citation key"})
		}
		if _, err := w.Entry(e, types); err != nil {
			out = append(out, Problem{subject, err.Error()})
		}
		if t, ok := types.Enrich(e.Type, nil); ok {
			for _, f := range t.Required {
				if v, _ := e.Field(f); v == "" {
					out = append(out, Problem{subject, "missing required field " + f})
				}
			}
		} else {
			out = append(out, Problem{subject, fmt.Sprintf("unknown entry type %q", e.Type)})
		}
		for _, k := range e.FieldNames() {
			if ref, ok := bibtex.Reference(e.Fields[k]); ok && !known[ref] {
				out = append(out, Problem{subject, fmt.Sprintf("field %s references undefined constant %s", k, ref)})
			}
		}
	}

	db := &snapshot{values: strs}
	m := constants.NewModel(db)
	m.SetValues()
	if err := m.Validate(); err != nil {
		for _, e := range unwrap(err) {
			out = append(out, Problem{"@String", e.Error()})
		}
	}
	return out
}

// CheckTypes reports custom entry types without a name, with invalid field
// names, or listing a field twice.
func CheckTypes(custom []entrytype.EntryType) []Problem {
	var out []Problem
	for i, t := range custom {
		subject := "type " + t.Name
		if strings.TrimSpace(t.Name) == "" {
			out = append(out, Problem{fmt.Sprintf("type #%d", i+1), "missing name"})
			continue
		}
		seen := map[string]bool{}
		for _, f := range t.Fields() {
			name := schema.CanonicalField(f)
			if !schema.ValidFieldName(name) {
				out = append(out, Problem{subject, fmt.Sprintf("invalid field name %q", f)})
				continue
			}
			if seen[name] {
				out = append(out, Problem{subject, "field " + name + " listed twice"})
			}
			seen[name] = true
		}
	}
	return out
}

func report(w io.Writer, problems []Problem) error {
	if len(problems) == 0 {
		_, err := fmt.Fprintln(w, "ok")
		return err
	}
	for _, p := range problems {
		if _, err := fmt.Fprintf(w, "%s: %s\n", p.Subject, p.Message); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %d found", ErrProblems, len(problems))
}

func label(e schema.Entry) string {
	if e.Key != "" {
		return e.Key
	}
	return e.ID
}

func unwrap(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// snapshot is a read-only constants.Database over a slice.
type snapshot struct{ values []schema.StringConstant }

func (s *snapshot) StringValues() []schema.StringConstant { return s.values }
func (s *snapshot) SetStrings([]schema.StringConstant)    {}
