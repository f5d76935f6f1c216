package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Clipboard backends selectable with BIB_CLIPBOARD.
const (
	ClipboardSystem = "system"
	ClipboardMemory = "memory"
)

// Config holds settings read from the environment (and an optional .env file).
type Config struct {
	Library            string   `envconfig:"BIB_LIBRARY" default:"data/library.yaml"`
	Clipboard          string   `envconfig:"BIB_CLIPBOARD" default:"system"`
	LogLevel           string   `envconfig:"BIB_LOG_LEVEL" default:"info"`
	WrapWidth          int      `envconfig:"BIB_WRAP_WIDTH" default:"0"`
	NonWrappableFields []string `envconfig:"BIB_NON_WRAPPABLE_FIELDS" default:"url,doi,file"`
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	c.Clipboard = strings.ToLower(strings.TrimSpace(c.Clipboard))
	switch c.Clipboard {
	case ClipboardSystem, ClipboardMemory:
	default:
		return fmt.Errorf("BIB_CLIPBOARD: unknown backend %q (want %s or %s)", c.Clipboard, ClipboardSystem, ClipboardMemory)
	}
	if c.WrapWidth < 0 {
		return fmt.Errorf("BIB_WRAP_WIDTH: must not be negative, got %d", c.WrapWidth)
	}
	return nil
}
