// Package config loads the audioswitcher configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/audioswitcher/bluetooth"
)

// Config is the content of the configuration file. Command line flags take
// precedence over it.
type Config struct {
	// Format is the output format: text, json or yaml.
	Format string `yaml:"format"`
	Search Search `yaml:"search"`
}

// Search mirrors bluetooth.SearchOptions.
type Search struct {
	Authenticated     bool  `yaml:"authenticated"`
	Remembered        bool  `yaml:"remembered"`
	Unknown           bool  `yaml:"unknown"`
	Connected         bool  `yaml:"connected"`
	Inquiry           bool  `yaml:"inquiry"`
	TimeoutMultiplier uint8 `yaml:"timeout_multiplier"`
}

var validFormats = map[string]bool{"text": true, "json": true, "yaml": true}

// Default returns the configuration used when there is no file, or for the
// keys a file leaves out.
func Default() Config {
	opts := bluetooth.DefaultSearchOptions()
	return Config{
		Format: "text",
		Search: Search{
			Authenticated:     opts.ReturnAuthenticated,
			Remembered:        opts.ReturnRemembered,
			Unknown:           opts.ReturnUnknown,
			Connected:         opts.ReturnConnected,
			Inquiry:           opts.IssueInquiry,
			TimeoutMultiplier: opts.TimeoutMultiplier,
		},
	}
}

// DefaultPath returns the path of the configuration file in the user's
// configuration directory, such as ~/.config/audioswitcher/config.yaml or
// %AppData%\audioswitcher\config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "audioswitcher", "config.yaml"), nil
}

// Load reads the configuration file at path on top of the defaults. A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r into cfg and validates the result. Unknown keys
// are rejected.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

// Validate checks the values that can't be checked by the YAML decoder.
func (c Config) Validate() error {
	if !validFormats[c.Format] {
		return fmt.Errorf("unknown format %q (expected text, json or yaml)", c.Format)
	}
	return c.SearchOptions().Validate()
}

// SearchOptions converts the search section into bluetooth.SearchOptions.
func (c Config) SearchOptions() bluetooth.SearchOptions {
	return bluetooth.SearchOptions{
		ReturnAuthenticated: c.Search.Authenticated,
		ReturnRemembered:    c.Search.Remembered,
		ReturnUnknown:       c.Search.Unknown,
		ReturnConnected:     c.Search.Connected,
		IssueInquiry:        c.Search.Inquiry,
		TimeoutMultiplier:   c.Search.TimeoutMultiplier,
	}
}
