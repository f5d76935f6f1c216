package clipboard

import (
	"errors"

	"go.uber.org/zap"

	"bibshelf/src/internal/bibtex"
	"bibshelf/src/internal/entrytype"
	"bibshelf/src/internal/schema"
)

// ConstantSource supplies the string constants entries may refer to.
type ConstantSource interface {
	StringValues() []schema.StringConstant
}

// Manager publishes bibliography text to the application clipboard and the
// primary selection. Every call overwrites both.
type Manager struct {
	rich      RichClipboard
	primary   Clipboard
	writer    *bibtex.Writer
	constants ConstantSource
	log       *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option { return func(m *Manager) { m.log = l } }

// WithWriter sets the BibTeX writer used for serialization.
func WithWriter(w *bibtex.Writer) Option { return func(m *Manager) { m.writer = w } }

// WithConstants sets where SetContent looks up referenced string constants.
func WithConstants(src ConstantSource) Option { return func(m *Manager) { m.constants = src } }

// NewManager returns a Manager writing to rich and primary.
func NewManager(rich RichClipboard, primary Clipboard, opts ...Option) *Manager {
	m := &Manager{rich: rich, primary: primary, log: zap.NewNop()}
	for _, o := range opts {
		o(m)
	}
	if m.writer == nil {
		m.writer = bibtex.NewWriter(bibtex.Options{})
	}
	return m
}

// SetContent copies entries together with the constants they reference from
// the configured ConstantSource.
func (m *Manager) SetContent(entries []schema.Entry, types entrytype.Enricher) error {
	return m.SetContentWithConstants(entries, types, m.referenced(entries, types))
}

// SetContentWithConstants copies entries preceded by exactly the given constants.
func (m *Manager) SetContentWithConstants(entries []schema.Entry, types entrytype.Enricher, constants []schema.StringConstant) error {
	text, err := m.writer.Document(entries, types, constants)
	if err != nil {
		m.log.Warn("serialization failed, clipboard left unchanged", zap.Int("entries", len(entries)), zap.Error(err))
		return err
	}
	return m.publish(Content{Bibliography: text, Text: text}, text, len(entries), len(constants))
}

// SetContentWithCitation copies entries like SetContent but offers citation as
// the plain-text flavor of the application clipboard.
func (m *Manager) SetContentWithCitation(entries []schema.Entry, types entrytype.Enricher, citation string) error {
	constants := m.referenced(entries, types)
	text, err := m.writer.Document(entries, types, constants)
	if err != nil {
		m.log.Warn("serialization failed, clipboard left unchanged", zap.Int("entries", len(entries)), zap.Error(err))
		return err
	}
	plain := citation
	if plain == "" {
		plain = text
	}
	return m.publish(Content{Bibliography: text, Text: plain}, text, len(entries), len(constants))
}

// SetText puts plain text on both clipboards.
func (m *Manager) SetText(text string) error {
	return m.publish(Content{Text: text}, text, 0, 0)
}

// SetHTML puts html on the application clipboard with fallback as its plain
// flavor; the primary selection receives fallback.
func (m *Manager) SetHTML(html, fallback string) error {
	return m.publish(Content{HTML: html, Text: fallback}, fallback, 0, 0)
}

// GetContents returns the plain-text flavor of the application clipboard, or
// "" when it is empty or unreadable.
func (m *Manager) GetContents() string {
	c, err := m.rich.Content()
	if err != nil {
		m.log.Debug("application clipboard unreadable", zap.Error(err))
		return ""
	}
	return c.PlainText()
}

// GetContentsPrimary returns the primary selection, or "" when it is empty or unreadable.
func (m *Manager) GetContentsPrimary() string {
	s, err := m.primary.Read()
	if err != nil {
		m.log.Debug("primary selection unreadable", zap.Error(err))
		return ""
	}
	return s
}

func (m *Manager) referenced(entries []schema.Entry, types entrytype.Enricher) []schema.StringConstant {
	if m.constants == nil {
		return nil
	}
	return bibtex.ReferencedConstants(entries, types, m.constants.StringValues())
}

// publish writes both clipboards. A failing backend does not stop the other;
// failures are returned joined as *BackendError values.
func (m *Manager) publish(c Content, primary string, entries, constants int) error {
	var errs []error
	if err := m.rich.SetContent(c); err != nil {
		m.log.Error("clipboard write failed", zap.String("backend", "application"), zap.Error(err))
		errs = append(errs, &BackendError{Backend: "application", Err: err})
	}
	if err := m.primary.Write(primary); err != nil {
		m.log.Error("clipboard write failed", zap.String("backend", "primary"), zap.Error(err))
		errs = append(errs, &BackendError{Backend: "primary", Err: err})
	}
	if len(errs) == 0 {
		m.log.Debug("copied to clipboard", zap.Int("entries", entries), zap.Int("constants", constants), zap.Int("bytes", len(primary)))
	}
	return errors.Join(errs...)
}
