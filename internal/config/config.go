// Package config loads the shell's optional configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPrompt is the prompt emitted before each command line.
const DefaultPrompt = "jsh> "

// Config holds the shell's settings. File values are overridden by
// command-line flags.
type Config struct {
	// Prompt is the string printed before each command line when the
	// shell is interactive.
	Prompt string `toml:"prompt"`

	// HistoryFile is where the interactive reader persists command
	// history. Empty disables persistent history.
	HistoryFile string `toml:"history_file"`

	// Verbose enables debug-level diagnostic logging.
	Verbose bool `toml:"verbose"`

	// EmitPrompt controls whether the prompt is printed at all. Not
	// settable from the file; a harness driving the shell through a
	// pipe turns it off with a flag.
	EmitPrompt bool `toml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Prompt:     DefaultPrompt,
		EmitPrompt: true,
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".jsh_history")
	}

	return cfg
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("decode config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the shell cannot run
// with.
func (c *Config) Validate() error {
	if c.Prompt == "" {
		return errors.New("prompt cannot be empty")
	}

	if c.HistoryFile != "" {
		if _, err := os.Stat(filepath.Dir(c.HistoryFile)); err != nil {
			return fmt.Errorf("failed to stat history file directory: %w", err)
		}
	}

	return nil
}
