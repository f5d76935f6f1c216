package bibtex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bibshelf/src/internal/entrytype"
	"bibshelf/src/internal/schema"
)

func names(cs []schema.StringConstant) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestReferencedConstants(t *testing.T) {
	known := []schema.StringConstant{
		schema.NewStringConstant("ieee", "IEEE"),
		schema.NewStringConstant("grl", "Geophys. Res. Lett."),
		schema.NewStringConstant("unused", "Nobody"),
	}
	a := schema.NewEntry("Article")
	a.SetField("journal", "grl")
	a.SetField("publisher", "#ieee#")
	b := schema.NewEntry("Article")
	b.SetField("journal", "grl")
	b.SetField("note", "GRL")

	got := ReferencedConstants([]schema.Entry{a, b}, nil, known)
	assert.Equal(t, []string{"grl", "ieee"}, names(got))
}

func TestReferencedConstantsFirstEntryFirst(t *testing.T) {
	known := []schema.StringConstant{
		schema.NewStringConstant("aaa", "A"),
		schema.NewStringConstant("zzz", "Z"),
	}
	a := schema.NewEntry("Misc")
	a.SetField("note", "zzz")
	b := schema.NewEntry("Misc")
	b.SetField("note", "aaa")

	got := ReferencedConstants([]schema.Entry{a, b}, nil, known)
	assert.Equal(t, []string{"zzz", "aaa"}, names(got))
}

func TestReferencedConstantsFollowWrittenFieldOrder(t *testing.T) {
	known := []schema.StringConstant{
		schema.NewStringConstant("spring", "Spring"),
		schema.NewStringConstant("yr2020", "2020"),
	}
	e := schema.NewEntry("Article")
	e.SetField("month", "spring")
	e.SetField("year", "yr2020")

	assert.Equal(t, []string{"spring", "yr2020"}, names(ReferencedConstants([]schema.Entry{e}, nil, known)))

	types := entrytype.NewRegistry()
	got := ReferencedConstants([]schema.Entry{e}, types, known)
	assert.Equal(t, []string{"yr2020", "spring"}, names(got))
	text, err := NewWriter(Options{}).Entry(e, types)
	assert.NoError(t, err)
	assert.Less(t, strings.Index(text, "yr2020"), strings.Index(text, "spring"))
}

func TestReferencedConstantsEmpty(t *testing.T) {
	assert.Nil(t, ReferencedConstants(nil, nil, []schema.StringConstant{schema.NewStringConstant("a", "b")}))
	e := schema.NewEntry("Misc")
	e.SetField("note", "a")
	assert.Nil(t, ReferencedConstants([]schema.Entry{e}, nil, nil))
}

func TestReference(t *testing.T) {
	name, ok := Reference(" #grl# ")
	assert.True(t, ok)
	assert.Equal(t, "grl", name)
	_, ok = Reference("#a b#")
	assert.False(t, ok)
	_, ok = Reference("##")
	assert.False(t, ok)
}
