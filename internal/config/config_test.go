package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audioswitcher/bluetooth"
)

func TestDefaultMatchesSearchDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, bluetooth.DefaultSearchOptions(), cfg.SearchOptions())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "format: json\nsearch:\n  inquiry: false\n  unknown: false\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)

	opts := cfg.SearchOptions()
	assert.False(t, opts.IssueInquiry)
	assert.False(t, opts.ReturnUnknown)
	// Keys left out keep their defaults.
	assert.True(t, opts.ReturnConnected)
	assert.True(t, opts.ReturnRemembered)
	assert.Equal(t, uint8(1), opts.TimeoutMultiplier)
}

func TestDecodeEmpty(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(strings.NewReader(""), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":        "colour: red\n",
		"unknown format":     "format: xml\n",
		"multiplier too big": "search:\n  timeout_multiplier: 49\n",
		"not a number":       "search:\n  timeout_multiplier: soon\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Decode(strings.NewReader(data), &cfg))
		})
	}
}

func TestLoadInvalidFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestDefaultPath(t *testing.T) {
	if _, err := os.UserConfigDir(); err != nil {
		t.Skip("no user config directory:", err)
	}
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "audioswitcher", filepath.Base(filepath.Dir(path)))
}
