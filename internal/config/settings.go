package config

import "math"

// setting binds a dotted config path and its environment variable to a
// typed field. set returns a non-empty message when v has the wrong type.
type setting struct {
	path string
	env  string
	set  func(c *Config, v any) string
}

var settings = []setting{
	{"editor.cursor_semantics", "CURSOR_SEMANTICS", stringField(func(c *Config) *string { return &c.Editor.CursorSemantics })},
	{"editor.use_hard_tab", "USE_HARD_TAB", boolField(func(c *Config) *bool { return &c.Editor.UseHardTab })},
	{"editor.tab_width", "TAB_WIDTH", intField(func(c *Config) *int { return &c.Editor.TabWidth })},
	{"editor.max_undo_entries", "MAX_UNDO_ENTRIES", intField(func(c *Config) *int { return &c.Editor.MaxUndoEntries })},
	{"server.socket_path", "SOCKET_PATH", stringField(func(c *Config) *string { return &c.Server.SocketPath })},
	{"server.watch_files", "WATCH_FILES", boolField(func(c *Config) *bool { return &c.Server.WatchFiles })},
	{"log.level", "LOG_LEVEL", stringField(func(c *Config) *string { return &c.Log.Level })},
}

// envMapping maps unprefixed variable names to setting paths.
func envMapping() map[string]string {
	m := make(map[string]string, len(settings))
	for _, s := range settings {
		m[s.env] = s.path
	}
	return m
}

func stringField(field func(*Config) *string) func(*Config, any) string {
	return func(c *Config, v any) string {
		s, ok := v.(string)
		if !ok {
			return "must be a string"
		}
		*field(c) = s
		return ""
	}
}

// boolField also accepts 0 and 1, which environment values decode to.
func boolField(field func(*Config) *bool) func(*Config, any) string {
	return func(c *Config, v any) string {
		switch b := v.(type) {
		case bool:
			*field(c) = b
		case int64:
			if b != 0 && b != 1 {
				return "must be a boolean"
			}
			*field(c) = b == 1
		case int:
			if b != 0 && b != 1 {
				return "must be a boolean"
			}
			*field(c) = b == 1
		default:
			return "must be a boolean"
		}
		return ""
	}
}

func intField(field func(*Config) *int) func(*Config, any) string {
	return func(c *Config, v any) string {
		switch n := v.(type) {
		case int:
			*field(c) = n
		case int64:
			*field(c) = int(n)
		case uint64:
			if n > math.MaxInt {
				return "out of range"
			}
			*field(c) = int(n)
		case float64:
			if n != math.Trunc(n) {
				return "must be an integer"
			}
			*field(c) = int(n)
		default:
			return "must be an integer"
		}
		return ""
	}
}
