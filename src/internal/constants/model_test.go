package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibshelf/src/internal/schema"
)

type fakeDB struct {
	strings []schema.StringConstant
	sets    int
}

func (d *fakeDB) StringValues() []schema.StringConstant {
	return append([]schema.StringConstant(nil), d.strings...)
}

func (d *fakeDB) SetStrings(values []schema.StringConstant) {
	d.sets++
	d.strings = append([]schema.StringConstant(nil), values...)
}

func labels(m *Model) []string {
	out := []string{}
	for _, it := range m.Strings() {
		out = append(out, it.Name)
	}
	return out
}

func TestStringsListPropertySorting(t *testing.T) {
	db := &fakeDB{strings: []schema.StringConstant{
		schema.NewStringConstant("TSE", "Transactions on Software Engineering"),
		schema.NewStringConstant("ICSE", "International Conference on Software Engineering"),
	}}
	m := NewModel(db)
	assert.Equal(t, Unloaded, m.State())

	m.SetValues()

	assert.Equal(t, []string{"ICSE", "TSE"}, labels(m))
	assert.Equal(t, Loaded, m.State())
	assert.Equal(t, 0, db.sets)
}

func TestSetValuesIdempotent(t *testing.T) {
	db := &fakeDB{strings: []schema.StringConstant{
		schema.NewStringConstant("b", "B"),
		schema.NewStringConstant("a", "A"),
	}}
	m := NewModel(db)
	m.SetValues()
	first := labels(m)
	m.Add(NewItem("z", "Z"))
	m.SetValues()
	assert.Equal(t, first, labels(m))
	assert.Equal(t, 2, m.Len())
}

func TestSetValuesCaseSensitiveOrder(t *testing.T) {
	db := &fakeDB{strings: []schema.StringConstant{
		schema.NewStringConstant("abc", "x"),
		schema.NewStringConstant("Zed", "y"),
	}}
	m := NewModel(db)
	m.SetValues()
	assert.Equal(t, []string{"Zed", "abc"}, labels(m))
}

func TestStringsListPropertyResorting(t *testing.T) {
	m := NewModel(&fakeDB{})
	m.Add(NewItem("TSE", "Transactions on Software Engineering"))
	m.Add(NewItem("ICSE", "International Conference on Software Engineering"))
	assert.Equal(t, []string{"TSE", "ICSE"}, labels(m))

	m.ResortStrings()
	assert.Equal(t, []string{"ICSE", "TSE"}, labels(m))
	m.ResortStrings()
	assert.Equal(t, []string{"ICSE", "TSE"}, labels(m))
}

func TestResortStable(t *testing.T) {
	m := NewModel(&fakeDB{})
	m.Add(NewItem("b", "first"))
	m.Add(NewItem("a", "x"))
	m.Add(NewItem("b", "second"))
	m.ResortStrings()
	rows := m.Strings()
	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[1].Content)
	assert.Equal(t, "second", rows[2].Content)
}

func TestStoreSettings(t *testing.T) {
	db := &fakeDB{}
	m := NewModel(db)
	m.Add(NewItem("KTH", "Royal Institute of Technology"))

	m.StoreSettings()

	require.Len(t, db.strings, 1)
	assert.Equal(t, "KTH", db.strings[0].Name)
	assert.Equal(t, "Royal Institute of Technology", db.strings[0].Content)
	assert.NotEmpty(t, db.strings[0].ID)
	assert.Equal(t, Saved, m.State())
}

func TestStoreSettingsFullReplaceKeepsOrderAndIDs(t *testing.T) {
	icse := schema.NewStringConstant("ICSE", "International Conference on Software Engineering")
	tse := schema.NewStringConstant("TSE", "Transactions on Software Engineering")
	db := &fakeDB{strings: []schema.StringConstant{tse, icse}}
	m := NewModel(db)
	m.SetValues()
	require.NoError(t, m.Remove(m.IndexOf("TSE")))
	m.Add(NewItem("ASE", "Automated Software Engineering"))

	m.StoreSettings()

	require.Len(t, db.strings, 2)
	assert.Equal(t, "ICSE", db.strings[0].Name)
	assert.Equal(t, icse.ID, db.strings[0].ID)
	assert.Equal(t, "ASE", db.strings[1].Name)
}

func TestStoreSettingsEmpty(t *testing.T) {
	db := &fakeDB{strings: []schema.StringConstant{schema.NewStringConstant("a", "A")}}
	m := NewModel(db)
	m.SetValues()
	require.NoError(t, m.Remove(0))
	m.StoreSettings()
	assert.Empty(t, db.strings)
	assert.Equal(t, 1, db.sets)
}

func TestStoreSettingsPersistsDuplicates(t *testing.T) {
	db := &fakeDB{}
	m := NewModel(db)
	m.Add(NewItem("a", "1"))
	m.Add(NewItem("a", "2"))
	m.StoreSettings()
	assert.Len(t, db.strings, 2)
	assert.ErrorIs(t, m.Validate(), ErrDuplicateName)
}

func TestMutationsMarkDirtyAndNotify(t *testing.T) {
	m := NewModel(&fakeDB{})
	var got []Change
	unsubscribe := m.Subscribe(func(c Change) { got = append(got, c) })

	m.SetValues()
	m.Add(NewItem("b", "B"))
	require.NoError(t, m.Insert(0, NewItem("a", "A")))
	require.NoError(t, m.Update(1, "c", "C"))
	assert.Equal(t, Dirty, m.State())
	m.ResortStrings()
	require.NoError(t, m.Remove(0))

	assert.Equal(t, []Change{
		{Kind: Reset, Index: -1},
		{Kind: Added, Index: 0},
		{Kind: Added, Index: 0},
		{Kind: Updated, Index: 1},
		{Kind: Sorted, Index: -1},
		{Kind: Removed, Index: 0},
	}, got)

	unsubscribe()
	m.Add(NewItem("d", "D"))
	assert.Len(t, got, 6)
}

func TestIndexErrors(t *testing.T) {
	m := NewModel(&fakeDB{})
	assert.Error(t, m.Remove(0))
	assert.Error(t, m.Update(0, "a", "b"))
	assert.Error(t, m.Insert(2, NewItem("a", "b")))
}

func TestValidate(t *testing.T) {
	m := NewModel(&fakeDB{})
	m.Add(NewItem("KTH", "Royal Institute of Technology"))
	assert.NoError(t, m.Validate())

	m.Add(NewItem("1bad", "x"))
	m.Add(NewItem("empty", " "))
	err := m.Validate()
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorIs(t, err, ErrEmptyContent)
}
