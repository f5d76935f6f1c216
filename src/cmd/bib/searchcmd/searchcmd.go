package searchcmd

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bibshelf/src/internal/appenv"
	"bibshelf/src/internal/cite"
	"bibshelf/src/internal/dates"
	"bibshelf/src/internal/names"
	"bibshelf/src/internal/schema"
	"bibshelf/src/internal/stringsx"
)

// New returns the search command for expression and flag based querying.
func New() *cobra.Command {
	var library, authorQ, titleQ, allQ string
	var copyHits bool
	cmd := &cobra.Command{
		Use:   "search [expr]",
		Short: "Search entries by expression (key==, type==, author==, year>=, field~=) or flags",
		Long: `Search the library. An expression is a list of terms joined by &&:

  key == c20*          citation key (wildcard *)
  type == article      entry type
  author == claude*    any author family name (wildcard *)
  year >= 2010         year comparison (==, >=, <=, >, <)
  journal ~= geophys   text contained in a field; "all" searches every field

Values naming a string constant are matched against the constant's content.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var terms []string
			if len(args) > 0 {
				terms = append(terms, strings.Join(args, " "))
			}
			if !isEmpty(authorQ) {
				terms = append(terms, "author ~= "+authorQ)
			}
			if !isEmpty(titleQ) {
				terms = append(terms, "title ~= "+titleQ)
			}
			if !isEmpty(allQ) {
				terms = append(terms, "all ~= "+allQ)
			}
			if len(terms) == 0 {
				return fmt.Errorf("provide an expression or a query flag like --all, --author, or --title")
			}
			preds, err := parseExpr(strings.Join(terms, " && "))
			if err != nil {
				return err
			}
			env, err := appenv.Open(library)
			if err != nil {
				return err
			}
			defer env.Close()

			hits := run(env.Library.Entries, cite.FromConstants(env.Library.StringValues()), preds)
			renderResults(cmd.OutOrStdout(), hits)
			if copyHits && len(hits) > 0 {
				entries := make([]schema.Entry, len(hits))
				for i, h := range hits {
					entries[i] = h.e
				}
				if err := env.Clipboard.SetContent(entries, env.Types); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "copied %d entries\n", len(entries))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&library, "library", "", "Library file (default $BIB_LIBRARY or data/library.yaml)")
	cmd.Flags().StringVar(&authorQ, "author", "", "author text search")
	cmd.Flags().StringVar(&titleQ, "title", "", "title text search")
	cmd.Flags().StringVar(&allQ, "all", "", "search every field")
	cmd.Flags().BoolVar(&copyHits, "copy", false, "Copy the matching entries to the clipboard")
	return cmd
}

func isEmpty(s string) bool { return strings.TrimSpace(s) == "" }

type scored struct {
	e schema.Entry
	s int
}

// record is an entry with its field values resolved through the string constants.
type record struct {
	schema.Entry
	values map[string]string
}

func resolve(e schema.Entry, lookup cite.Lookup) record {
	r := record{Entry: e, values: make(map[string]string, len(e.Fields))}
	for k, v := range e.Fields {
		r.values[k] = cite.Expand(v, lookup)
	}
	return r
}

type predicate func(record) (hit bool, score int)

func run(entries []schema.Entry, lookup cite.Lookup, preds []predicate) []scored {
	var out []scored
	for _, e := range entries {
		r := resolve(e, lookup)
		score := 0
		ok := true
		for _, p := range preds {
			hit, sc := p(r)
			if !hit {
				ok = false
				break
			}
			score += sc
		}
		if ok {
			out = append(out, scored{e: e, s: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].s > out[j].s })
	return out
}

func renderResults(w io.Writer, out []scored) {
	rows := make([][]string, 0, len(out))
	for _, it := range out {
		year := ""
		if y := dates.EntryYear(it.e.Fields["year"], it.e.Fields["date"]); y > 0 {
			year = strconv.Itoa(y)
		}
		rows = append(rows, []string{it.e.Key, it.e.Type, year, stringsx.Truncate(stringsx.StripBraces(it.e.Fields["title"]), 60), firstAuthor(it.e)})
	}
	renderTable(w, []string{"key", "type", "year", "title", "author"}, rows)
}

func firstAuthor(e schema.Entry) string {
	authors := names.SplitAuthors(e.Fields["author"])
	if len(authors) == 0 {
		return ""
	}
	return names.Display(authors[0])
}

var (
	reEquals   = regexp.MustCompile(`(?i)^(key|type|author)\s*==\s*(\S+)$`)
	reYear     = regexp.MustCompile(`(?i)^year\s*(==|>=|<=|>|<)\s*(\d{4})$`)
	reContains = regexp.MustCompile(`(?i)^([a-z][a-z0-9_:.+-]*)\s*~=\s*(.+)$`)
)

func parseExpr(expr string) ([]predicate, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("empty expression")
	}
	var preds []predicate
	for _, tt := range splitAnd(expr) {
		if tt == "" {
			return nil, fmt.Errorf("empty term in %q", expr)
		}
		if p, ok := compileEqualsTerm(tt); ok {
			preds = append(preds, p)
			continue
		}
		if p, ok := compileYearTerm(tt); ok {
			preds = append(preds, p)
			continue
		}
		if p, ok := compileContainsTerm(tt); ok {
			preds = append(preds, p)
			continue
		}
		return nil, fmt.Errorf("unrecognized term: %s", tt)
	}
	return preds, nil
}

func compileEqualsTerm(tt string) (predicate, bool) {
	m := reEquals.FindStringSubmatch(tt)
	if m == nil {
		return nil, false
	}
	rx := WildcardToRegex(strings.ToLower(trimQuotes(m[2])))
	switch strings.ToLower(m[1]) {
	case "key":
		return func(r record) (bool, int) { return rx.MatchString(strings.ToLower(r.Key)), 10 }, true
	case "type":
		return func(r record) (bool, int) { return rx.MatchString(strings.ToLower(r.Type)), 1 }, true
	default:
		return func(r record) (bool, int) {
			for _, a := range names.SplitAuthors(r.values["author"]) {
				fam, _ := names.Split(a)
				if rx.MatchString(strings.ToLower(fam)) {
					return true, 7
				}
			}
			return false, 0
		}, true
	}
}

func compileYearTerm(tt string) (predicate, bool) {
	m := reYear.FindStringSubmatch(tt)
	if m == nil {
		return nil, false
	}
	op := m[1]
	yv, _ := strconv.Atoi(m[2])
	return func(r record) (bool, int) {
		y := dates.EntryYear(r.values["year"], r.values["date"])
		if y == 0 {
			return false, 0
		}
		ok := false
		switch op {
		case ">":
			ok = y > yv
		case ">=":
			ok = y >= yv
		case "<":
			ok = y < yv
		case "<=":
			ok = y <= yv
		case "==":
			ok = y == yv
		}
		return ok, 1
	}, true
}

func compileContainsTerm(tt string) (predicate, bool) {
	m := reContains.FindStringSubmatch(tt)
	if m == nil {
		return nil, false
	}
	field := schema.CanonicalField(m[1])
	q := strings.ToLower(strings.TrimSpace(trimQuotes(m[2])))
	weight := 1
	switch field {
	case "title":
		weight = 3
	case "author", "abstract":
		weight = 2
	}
	return func(r record) (bool, int) {
		var text string
		if field == "all" {
			parts := []string{r.Key, r.Type}
			for _, k := range r.FieldNames() {
				parts = append(parts, r.values[k])
			}
			text = strings.Join(parts, "\n")
		} else {
			text = r.values[field]
		}
		c := CountContains(strings.ToLower(stringsx.StripBraces(text)), q)
		return c > 0, c * weight
	}, true
}

func splitAnd(expr string) []string {
	var parts []string
	for _, p := range strings.Split(expr, "&&") {
		parts = append(parts, strings.TrimSpace(p))
	}
	return parts
}

// WildcardToRegex compiles a pattern where * matches any run of characters.
func WildcardToRegex(pat string) *regexp.Regexp {
	var b strings.Builder
	for i, part := range strings.Split(pat, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	return regexp.MustCompile("^" + b.String() + "$")
}

// CountContains counts occurrences of every whitespace-separated term of q in text.
func CountContains(text, q string) int {
	score := 0
	for _, t := range strings.Fields(q) {
		score += strings.Count(text, t)
	}
	return score
}

func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	widths := computeColWidths(headers, rows)
	writeColumns(w, headers, widths)
	writeSeparator(w, widths)
	for _, r := range rows {
		writeColumns(w, r, widths)
	}
}

func computeColWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i := range headers {
			if i < len(r) && len(r[i]) > widths[i] {
				widths[i] = len(r[i])
			}
		}
	}
	return widths
}

func writeSeparator(w io.Writer, widths []int) {
	cols := make([]string, len(widths))
	for i, width := range widths {
		cols[i] = strings.Repeat("-", width)
	}
	writeColumns(w, cols, widths)
}

func writeColumns(w io.Writer, cols []string, widths []int) {
	var b strings.Builder
	for i, width := range widths {
		val := ""
		if i < len(cols) {
			val = cols[i]
		}
		if i == len(widths)-1 {
			b.WriteString(val)
			break
		}
		fmt.Fprintf(&b, "%-*s  ", width, val)
	}
	_, _ = fmt.Fprintln(w, b.String())
}
