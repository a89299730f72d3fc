// Package config loads the calculator's configuration: which keys trigger
// which logical events, the display theme, and the log level.
//
// Configuration is a YAML file. Keys that the file omits keep their default
// values, so a file containing only
//
//	keys:
//	  clear: ["esc", "delete"]
//
// rebinds clear and leaves everything else alone.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MaxFileSize is the largest configuration file Load accepts.
const MaxFileSize = 1 << 20

// Config is the complete configuration.
type Config struct {
	// LogLevel is the minimum level logged: debug, info, warn, or error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// Keys maps key names to logical events.
	Keys Keymap `yaml:"keys"`
	// Theme colors the terminal front end.
	Theme Theme `yaml:"theme"`
}

// Keymap lists the key names bound to each logical event. Key names are those
// the terminal front end reports: single characters like "=" or "C", or names
// like "enter", "esc", "backspace", and "ctrl+c". Keys not bound to any event
// are typed into the display.
type Keymap struct {
	Evaluate  []string `yaml:"evaluate" validate:"required,min=1,dive,required"`
	Clear     []string `yaml:"clear" validate:"required,min=1,dive,required"`
	Backspace []string `yaml:"backspace" validate:"required,min=1,dive,required"`
	Quit      []string `yaml:"quit" validate:"required,min=1,dive,required"`
}

// Theme holds the terminal front end's colors as hex RGB strings.
type Theme struct {
	DisplayFG string `yaml:"display_fg" validate:"hexcolor"`
	DisplayBG string `yaml:"display_bg" validate:"hexcolor"`
	ErrorFG   string `yaml:"error_fg" validate:"hexcolor"`
	ButtonFG  string `yaml:"button_fg" validate:"hexcolor"`
}

// Default returns the default configuration. Enter and = evaluate, Esc and C
// clear, and Backspace and ← delete the last character.
func Default() Config {
	return Config{
		LogLevel: "info",
		Keys: Keymap{
			Evaluate:  []string{"=", "enter"},
			Clear:     []string{"esc", "C", "c"},
			Backspace: []string{"backspace", "←"},
			Quit:      []string{"ctrl+c", "q"},
		},
		Theme: Theme{
			DisplayFG: "#FAFAFA",
			DisplayBG: "#3C3C3C",
			ErrorFG:   "#FF5F87",
			ButtonFG:  "#DDDDDD",
		},
	}
}

// Load reads the configuration file at path over the defaults and validates
// the result. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if info.Size() > MaxFileSize {
		return Config{}, fmt.Errorf("config file %s is %d bytes, more than the limit of %d", path, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// decode decodes YAML from r over cfg, rejecting unknown fields. An empty
// document leaves cfg unchanged.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field values and that no key is bound to two events.
func (cfg Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	seen := make(map[string]Event)
	for _, b := range cfg.Keys.bindings() {
		for _, k := range b.keys {
			if prev, ok := seen[k]; ok && prev != b.ev {
				return fmt.Errorf("key %q is bound to both %v and %v", k, prev, b.ev)
			}
			seen[k] = b.ev
		}
	}
	return nil
}

// Logger creates a text logger writing to w at the configured level.
func (cfg Config) Logger(w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
