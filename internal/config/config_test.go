package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestDefault_KeyEvents(t *testing.T) {
	km := Default().Keys
	cases := []struct {
		key  string
		want Event
	}{
		{"=", EventEvaluate},
		{"enter", EventEvaluate},
		{"esc", EventClear},
		{"C", EventClear},
		{"backspace", EventBackspace},
		{"←", EventBackspace},
		{"ctrl+c", EventQuit},
	}
	for _, c := range cases {
		ev, ok := km.Event(c.key)
		assert.True(t, ok, "key %q", c.key)
		assert.Equal(t, c.want, ev, "key %q", c.key)
	}
}

func TestKeymap_UnboundKeysAreTyped(t *testing.T) {
	km := Default().Keys
	for _, key := range []string{"1", "+", "-", "*", "/", ".", "(", ")", " "} {
		ev, ok := km.Event(key)
		assert.False(t, ok, "key %q should not be bound", key)
		assert.Equal(t, EventNone, ev)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overlay(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
keys:
  clear: ["delete"]
theme:
  error_fg: "#FF0000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.LogLevel = "debug"
	want.Keys.Clear = []string{"delete"}
	want.Theme.ErrorFG = "#FF0000"
	assert.Equal(t, want, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		msg     string
	}{
		{"unknown-field", "colour: red\n", "parsing config"},
		{"bad-yaml", "keys: [\n", "parsing config"},
		{"bad-level", "log_level: loud\n", "invalid config"},
		{"bad-color", "theme:\n  display_fg: blue\n", "invalid config"},
		{"no-evaluate", "keys:\n  evaluate: []\n", "invalid config"},
		{"empty-key", "keys:\n  quit: [\"\"]\n", "invalid config"},
		{"double-bound", "keys:\n  clear: [\"=\"]\n", `key "=" is bound to both evaluate and clear`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_TooLarge(t *testing.T) {
	path := writeConfig(t, "# "+strings.Repeat("x", MaxFileSize)+"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than the limit")
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = "warn"
	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "evaluate", EventEvaluate.String())
	assert.Equal(t, "clear", EventClear.String())
	assert.Equal(t, "backspace", EventBackspace.String())
	assert.Equal(t, "quit", EventQuit.String())
	assert.Equal(t, "none", EventNone.String())
}
