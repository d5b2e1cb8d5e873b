package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/config/loader"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/logging"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envFrom(vars map[string]string) *loader.EnvLoader {
	return loader.NewEnvLoader(EnvPrefix, envMapping()).WithLookup(func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	})
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, "block", c.Editor.CursorSemantics)
	assert.False(t, c.Editor.UseHardTab)
	assert.Equal(t, 4, c.Editor.TabWidth)
	assert.Equal(t, 0, c.Editor.MaxUndoEntries)
	assert.Equal(t, filepath.Join(os.TempDir(), "quill.sock"), c.Server.SocketPath)
	assert.True(t, c.Server.WatchFiles)
	assert.Equal(t, logging.LevelInfo, c.LogLevel())
	assert.Equal(t, selection.Block, c.CursorSemantics())
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "quill.toml", `
[editor]
cursor_semantics = "bar"
tab_width = 2
use_hard_tab = true

[server]
watch_files = false
`)
	c, err := load(path, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, selection.Bar, c.CursorSemantics())
	assert.Equal(t, 2, c.Editor.TabWidth)
	assert.True(t, c.Editor.UseHardTab)
	assert.False(t, c.Server.WatchFiles)
	assert.Equal(t, "info", c.Log.Level, "unset keys keep defaults")
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "quill.yml", "editor:\n  max_undo_entries: 50\nlog:\n  level: debug\n")
	c, err := load(path, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 50, c.Editor.MaxUndoEntries)
	assert.Equal(t, logging.LevelDebug, c.LogLevel())
}

func TestLoadMissingFile(t *testing.T) {
	c, err := load(filepath.Join(t.TempDir(), "absent.toml"), envFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadNoPath(t *testing.T) {
	c, err := load("", envFrom(map[string]string{"QUILL_TAB_WIDTH": "8"}))
	require.NoError(t, err)
	assert.Equal(t, 8, c.Editor.TabWidth)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "quill.toml", "[editor]\ntab_width = 2\n[log]\nlevel = \"warn\"\n")
	c, err := load(path, envFrom(map[string]string{
		"QUILL_TAB_WIDTH":        "6",
		"QUILL_USE_HARD_TAB":     "1",
		"QUILL_CURSOR_SEMANTICS": "bar",
		"QUILL_SOCKET_PATH":      "/run/quill.sock",
		"QUILL_WATCH_FILES":      "off",
	}))
	require.NoError(t, err)

	assert.Equal(t, 6, c.Editor.TabWidth)
	assert.True(t, c.Editor.UseHardTab)
	assert.Equal(t, selection.Bar, c.CursorSemantics())
	assert.Equal(t, "/run/quill.sock", c.Server.SocketPath)
	assert.False(t, c.Server.WatchFiles)
	assert.Equal(t, logging.LevelWarn, c.LogLevel())
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "quill.toml", "[editor\n")
	_, err := load(path, envFrom(nil))

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, path, perr.Path)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := load("quill.json", envFrom(nil))
	assert.True(t, errors.Is(err, loader.ErrUnsupportedFormat))
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
		path string
	}{
		{"tab width not a number", map[string]string{"QUILL_TAB_WIDTH": "wide"}, "", "editor.tab_width"},
		{"tab width too large", map[string]string{"QUILL_TAB_WIDTH": "17"}, "", "editor.tab_width"},
		{"tab width zero", nil, "[editor]\ntab_width = 0\n", "editor.tab_width"},
		{"bad semantics", map[string]string{"QUILL_CURSOR_SEMANTICS": "underline"}, "", "editor.cursor_semantics"},
		{"negative undo", map[string]string{"QUILL_MAX_UNDO_ENTRIES": "-1"}, "", "editor.max_undo_entries"},
		{"bad level", map[string]string{"QUILL_LOG_LEVEL": "loud"}, "", "log.level"},
		{"bad bool", map[string]string{"QUILL_WATCH_FILES": "sometimes"}, "", "server.watch_files"},
		{"string for bool in file", nil, "[server]\nwatch_files = \"yes\"\n", "server.watch_files"},
		{"empty socket", map[string]string{"QUILL_SOCKET_PATH": ""}, "", "server.socket_path"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := ""
			if tc.file != "" {
				path = writeConfig(t, "quill.toml", tc.file)
			}
			_, err := load(path, envFrom(tc.env))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.path, verr.Path)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	c := Default()
	c.Editor.CursorSemantics = "bar"
	c.Editor.UseHardTab = true
	c.Editor.TabWidth = 8

	doc := engine.New(c.EngineOptions()...)
	assert.Equal(t, selection.Bar, doc.CursorSemantics())
	assert.True(t, doc.UseHardTab())
	assert.Equal(t, 8, doc.TabWidth())
}

func TestEnvMappingCoversEverySetting(t *testing.T) {
	m := envMapping()
	assert.Len(t, m, len(settings))
	for _, s := range settings {
		assert.Equal(t, s.path, m[s.env])
	}
}
