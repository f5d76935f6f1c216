package clipboard

import (
	"errors"
	"fmt"
	"sync"
)

// Clipboard is a plain-text clipboard slot.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Content is what the application clipboard carries: the bibliography flavor
// plus optional plain-text and HTML flavors for other paste targets.
type Content struct {
	Bibliography string
	Text         string
	HTML         string
}

// PlainText returns the plain flavor, falling back to the bibliography text.
func (c Content) PlainText() string {
	if c.Text != "" {
		return c.Text
	}
	return c.Bibliography
}

// RichClipboard is a clipboard that accepts several flavors at once.
type RichClipboard interface {
	SetContent(c Content) error
	Content() (Content, error)
}

// ErrUnavailable is returned by backends that cannot reach their clipboard.
var ErrUnavailable = errors.New("clipboard unavailable")

// BackendError reports which clipboard failed.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string { return fmt.Sprintf("%s clipboard: %v", e.Backend, e.Err) }

func (e *BackendError) Unwrap() error { return e.Err }

// Memory is an in-process plain clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns a Memory clipboard holding initial.
func NewMemory(initial string) *Memory { return &Memory{text: initial} }

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// MemoryRich is an in-process RichClipboard.
type MemoryRich struct {
	mu      sync.Mutex
	content Content
}

// NewMemoryRich returns an empty MemoryRich clipboard.
func NewMemoryRich() *MemoryRich { return &MemoryRich{} }

func (m *MemoryRich) SetContent(c Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = c
	return nil
}

func (m *MemoryRich) Content() (Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content, nil
}

// PlainRich adapts a plain Clipboard into a RichClipboard by storing only the
// plain flavor. Reads return it as both Text and Bibliography.
type PlainRich struct {
	Clipboard Clipboard
}

func (p PlainRich) SetContent(c Content) error { return p.Clipboard.Write(c.PlainText()) }

func (p PlainRich) Content() (Content, error) {
	s, err := p.Clipboard.Read()
	if err != nil {
		return Content{}, err
	}
	return Content{Bibliography: s, Text: s}, nil
}
