package config

import (
	"os"
	"path/filepath"

	"github.com/dshills/quill/internal/config/loader"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUILL_"

// Tab width bounds.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Config holds every quill setting.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig holds the settings every document is created with.
type EditorConfig struct {
	CursorSemantics string `toml:"cursor_semantics" yaml:"cursor_semantics"`
	UseHardTab      bool   `toml:"use_hard_tab" yaml:"use_hard_tab"`
	TabWidth        int    `toml:"tab_width" yaml:"tab_width"`
	MaxUndoEntries  int    `toml:"max_undo_entries" yaml:"max_undo_entries"`
}

// ServerConfig holds transport settings.
type ServerConfig struct {
	SocketPath string `toml:"socket_path" yaml:"socket_path"`
	WatchFiles bool   `toml:"watch_files" yaml:"watch_files"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			CursorSemantics: selection.Block.String(),
			UseHardTab:      false,
			TabWidth:        engine.DefaultTabWidth,
			MaxUndoEntries:  engine.DefaultMaxUndoEntries,
		},
		Server: ServerConfig{
			SocketPath: DefaultSocketPath(),
			WatchFiles: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultSocketPath returns the socket path used when none is configured.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), "quill.sock")
}

// Load builds a configuration from defaults, the file at path (if path is
// non-empty and the file exists), and the process environment.
func Load(path string) (*Config, error) {
	return load(path, loader.NewEnvLoader(EnvPrefix, envMapping()))
}

func load(path string, env *loader.EnvLoader) (*Config, error) {
	merged := make(map[string]any)

	if path != "" {
		l, err := loader.ForPath(path)
		if err != nil {
			return nil, err
		}
		fromFile, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fromFile)
	}

	fromEnv, err := env.Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, fromEnv)

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply copies every known setting present in values onto c.
func (c *Config) apply(values map[string]any) error {
	for _, s := range settings {
		v, ok := loader.GetByPath(values, s.path)
		if !ok {
			continue
		}
		if msg := s.set(c, v); msg != "" {
			return invalid(s.path, v, "%s", msg)
		}
	}
	return nil
}

// Validate checks every setting is usable.
func (c *Config) Validate() error {
	if _, err := selection.ParseCursorSemantics(c.Editor.CursorSemantics); err != nil {
		return invalid("editor.cursor_semantics", c.Editor.CursorSemantics, "must be bar or block")
	}
	if c.Editor.TabWidth < MinTabWidth || c.Editor.TabWidth > MaxTabWidth {
		return invalid("editor.tab_width", c.Editor.TabWidth, "must be between %d and %d", MinTabWidth, MaxTabWidth)
	}
	if c.Editor.MaxUndoEntries < 0 {
		return invalid("editor.max_undo_entries", c.Editor.MaxUndoEntries, "must not be negative")
	}
	if c.Server.SocketPath == "" {
		return invalid("server.socket_path", c.Server.SocketPath, "must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	return nil
}

// CursorSemantics returns the parsed cursor semantics. Block is returned
// for an unparsable value; Validate reports it.
func (c *Config) CursorSemantics() selection.CursorSemantics {
	sem, err := selection.ParseCursorSemantics(c.Editor.CursorSemantics)
	if err != nil {
		return selection.Block
	}
	return sem
}

// LogLevel returns the parsed log level, Info for an unparsable value.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// EngineOptions converts the editor settings to document options.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithCursorSemantics(c.CursorSemantics()),
		engine.WithHardTab(c.Editor.UseHardTab),
		engine.WithTabWidth(c.Editor.TabWidth),
		engine.WithMaxUndoEntries(c.Editor.MaxUndoEntries),
	}
}
