package bibtex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibshelf/src/internal/schema"
)

func TestParseEmpty(t *testing.T) {
	doc, err := Parse("  \n")
	require.NoError(t, err)
	assert.Empty(t, doc.Entries)
	assert.Empty(t, doc.Strings)
}

func TestParseKeyedEntry(t *testing.T) {
	doc, err := Parse("@article{doe2020,\n  author = {Doe, J.},\n  journal = {IEEE}\n}\n")
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	e := doc.Entries[0]
	assert.Equal(t, "doe2020", e.Key)
	assert.True(t, strings.EqualFold(e.Type, "article"))
	author, _ := e.Field("author")
	assert.Equal(t, "Doe, J.", author)
	assert.NotEmpty(t, e.ID)
}

func TestParseRoundTripsWriterOutput(t *testing.T) {
	w := NewWriter(Options{})
	e := schema.NewEntry("Article")
	e.Key = "c2020"
	e.SetField("author", "Claudepierre, S. G.")
	e.SetField("title", "Radiation belts")
	text, err := w.Document([]schema.Entry{e}, noTypes{}, []schema.StringConstant{schema.NewStringConstant("grl", "Geophys. Res. Lett.")})
	require.NoError(t, err)

	doc, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, doc.Strings, 1)
	assert.Equal(t, "grl", doc.Strings[0].Name)
	assert.Equal(t, "Geophys. Res. Lett.", doc.Strings[0].Content)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "c2020", doc.Entries[0].Key)
	title, _ := doc.Entries[0].Field("title")
	assert.Equal(t, "Radiation belts", title)
}

func TestParseEmptyKey(t *testing.T) {
	doc, err := Parse("@Article{,\n  author = {Claudepierre, S. G.},\n  journal = {IEEE},\n}\n")
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "", doc.Entries[0].Key)
	journal, _ := doc.Entries[0].Field("journal")
	assert.Equal(t, "IEEE", journal)
}

func TestParseKeepsTypeSpelling(t *testing.T) {
	doc, err := Parse("@Dataset{ds1,\n  title = {Waves},\n}\n@article{a1,\n  title = {T},\n}\n")
	require.NoError(t, err)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "Dataset", doc.Entries[0].Type)
	assert.Equal(t, "article", doc.Entries[1].Type)

	out, err := NewWriter(Options{}).Entry(doc.Entries[0], noTypes{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "@Dataset{ds1,"), out)
}
