package appenv

import (
	"strings"

	"go.uber.org/zap"

	"bibshelf/src/internal/bibtex"
	"bibshelf/src/internal/clipboard"
	"bibshelf/src/internal/config"
	"bibshelf/src/internal/entrytype"
	"bibshelf/src/internal/logging"
	"bibshelf/src/internal/store"
)

// In memory mode every command in the process shares one pair of clipboards.
var (
	memoryRich    = clipboard.NewMemoryRich()
	memoryPrimary = clipboard.NewMemory("")
)

// Env is everything a command needs: configuration, logger, the loaded library
// and a clipboard manager wired to it.
type Env struct {
	Config    *config.Config
	Log       *zap.Logger
	Path      string
	Library   *store.Library
	Types     *entrytype.Registry
	Writer    *bibtex.Writer
	Clipboard *clipboard.Manager
}

// Open loads configuration and the library. A non-empty libraryPath overrides BIB_LIBRARY.
func Open(libraryPath string) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	path := cfg.Library
	if p := strings.TrimSpace(libraryPath); p != "" {
		path = p
	}
	lib, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debug("library loaded", zap.String("path", path), zap.Int("entries", len(lib.Entries)), zap.Int("strings", len(lib.Strings)))

	types := entrytype.NewRegistry()
	for _, t := range lib.Types {
		types.Register(t)
	}
	if len(lib.Types) > 0 {
		log.Debug("custom entry types registered", zap.Int("types", len(lib.Types)))
	}

	w := bibtex.NewWriter(bibtex.Options{WrapWidth: cfg.WrapWidth, NonWrappableFields: cfg.NonWrappableFields})
	rich, primary := backends(cfg.Clipboard)
	return &Env{
		Config:  cfg,
		Log:     log,
		Path:    path,
		Library: lib,
		Types:   types,
		Writer:  w,
		Clipboard: clipboard.NewManager(rich, primary,
			clipboard.WithLogger(log.Named("clipboard")),
			clipboard.WithWriter(w),
			clipboard.WithConstants(lib),
		),
	}, nil
}

// Save writes the library back to its path.
func (e *Env) Save() error {
	if err := e.Library.Save(e.Path); err != nil {
		return err
	}
	e.Log.Debug("library saved", zap.String("path", e.Path))
	return nil
}

// Close flushes the logger.
func (e *Env) Close() { _ = e.Log.Sync() }

func backends(kind string) (clipboard.RichClipboard, clipboard.Clipboard) {
	if kind == config.ClipboardMemory {
		return memoryRich, memoryPrimary
	}
	return clipboard.PlainRich{Clipboard: clipboard.System{}}, clipboard.PrimarySelection{}
}
