package constants

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"bibshelf/src/internal/schema"
)

// Database owns the authoritative string constants.
type Database interface {
	StringValues() []schema.StringConstant
	SetStrings(values []schema.StringConstant)
}

// State is the editing lifecycle of a Model.
type State int

const (
	Unloaded State = iota
	Loaded
	Dirty
	Saved
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Dirty:
		return "dirty"
	case Saved:
		return "saved"
	default:
		return "unloaded"
	}
}

// ChangeKind says what happened to the row list.
type ChangeKind int

const (
	Reset ChangeKind = iota
	Added
	Removed
	Updated
	Sorted
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Updated:
		return "updated"
	case Sorted:
		return "sorted"
	default:
		return "reset"
	}
}

// Change is sent to subscribers after every mutation. Index is -1 for
// whole-list changes (Reset, Sorted).
type Change struct {
	Kind  ChangeKind
	Index int
}

var (
	ErrInvalidName   = errors.New("invalid constant name")
	ErrEmptyContent  = errors.New("empty constant content")
	ErrDuplicateName = errors.New("duplicate constant name")
)

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:.+-]*$`)

// Item is one editable row. ID is empty for rows that do not yet exist in the database.
type Item struct {
	ID      string
	Name    string
	Content string
}

// NewItem returns a row for a constant that is not in the database yet.
func NewItem(name, content string) *Item { return &Item{Name: name, Content: content} }

// Validate checks the row on its own.
func (i *Item) Validate() error {
	if !validName.MatchString(i.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, i.Name)
	}
	if strings.TrimSpace(i.Content) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyContent, i.Name)
	}
	return nil
}

// Model is the editable, sortable list of a database's string constants.
// It is meant for a single goroutine.
type Model struct {
	db        Database
	items     []*Item
	state     State
	listeners map[int]func(Change)
	nextID    int
}

// NewModel returns an unloaded model over db.
func NewModel(db Database) *Model {
	return &Model{db: db, listeners: map[int]func(Change){}}
}

// State reports where the model is in its lifecycle.
func (m *Model) State() State { return m.state }

// SetValues replaces the rows with the database's constants sorted by name.
func (m *Model) SetValues() {
	values := m.db.StringValues()
	m.items = make([]*Item, 0, len(values))
	for _, c := range values {
		m.items = append(m.items, &Item{ID: c.ID, Name: c.Name, Content: c.Content})
	}
	sortItems(m.items)
	m.state = Loaded
	m.notify(Change{Kind: Reset, Index: -1})
}

// Strings returns the rows in their current order. The slice is a copy; the
// rows are shared, so mutate them through Update to get notifications.
func (m *Model) Strings() []*Item { return append([]*Item(nil), m.items...) }

// Len returns the number of rows.
func (m *Model) Len() int { return len(m.items) }

// Add appends a row without sorting.
func (m *Model) Add(item *Item) {
	m.items = append(m.items, item)
	m.changed(Change{Kind: Added, Index: len(m.items) - 1})
}

// Insert places item at index i, shifting later rows down.
func (m *Model) Insert(i int, item *Item) error {
	if i < 0 || i > len(m.items) {
		return fmt.Errorf("insert at %d: index out of range [0,%d]", i, len(m.items))
	}
	m.items = append(m.items, nil)
	copy(m.items[i+1:], m.items[i:])
	m.items[i] = item
	m.changed(Change{Kind: Added, Index: i})
	return nil
}

// Remove deletes the row at index i.
func (m *Model) Remove(i int) error {
	if i < 0 || i >= len(m.items) {
		return fmt.Errorf("remove at %d: index out of range [0,%d)", i, len(m.items))
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	m.changed(Change{Kind: Removed, Index: i})
	return nil
}

// Update sets the name and content of the row at index i.
func (m *Model) Update(i int, name, content string) error {
	if i < 0 || i >= len(m.items) {
		return fmt.Errorf("update at %d: index out of range [0,%d)", i, len(m.items))
	}
	m.items[i].Name = name
	m.items[i].Content = content
	m.changed(Change{Kind: Updated, Index: i})
	return nil
}

// IndexOf returns the index of the first row named name, or -1.
func (m *Model) IndexOf(name string) int {
	for i, it := range m.items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

// ResortStrings sorts the rows by name, keeping the relative order of equal names.
// The database is not touched.
func (m *Model) ResortStrings() {
	sortItems(m.items)
	m.changed(Change{Kind: Sorted, Index: -1})
}

// StoreSettings replaces the database's constants with the rows, in their
// current order. Rows without an ID get a new one.
func (m *Model) StoreSettings() {
	out := make([]schema.StringConstant, 0, len(m.items))
	for _, it := range m.items {
		if it.ID == "" {
			it.ID = schema.NewID()
		}
		out = append(out, schema.StringConstant{ID: it.ID, Name: it.Name, Content: it.Content})
	}
	m.db.SetStrings(out)
	m.state = Saved
}

// Validate checks every row and that names are unique. StoreSettings does not
// call it; callers decide whether to block saving.
func (m *Model) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for _, it := range m.items {
		if err := it.Validate(); err != nil {
			errs = append(errs, err)
		}
		if seen[it.Name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateName, it.Name))
		}
		seen[it.Name] = true
	}
	return errors.Join(errs...)
}

// Subscribe registers fn for change notifications and returns a function that
// removes it.
func (m *Model) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() { delete(m.listeners, id) }
}

func (m *Model) changed(c Change) {
	m.state = Dirty
	m.notify(c)
}

func (m *Model) notify(c Change) {
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		m.listeners[id](c)
	}
}

func sortItems(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}
