// Package config loads quill's settings.
//
// Settings come from three layers, each overriding the one below:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. QUILL_* environment variables
//
// A missing file is not an error. Every layer feeds the same setting
// table, so a value is type-checked the same way wherever it came from.
//
// # File format
//
//	[editor]
//	cursor_semantics = "block"   # or "bar"
//	use_hard_tab = false
//	tab_width = 4
//	max_undo_entries = 0         # 0 keeps every entry
//
//	[server]
//	socket_path = "/tmp/quill.sock"
//	watch_files = true
//
//	[log]
//	level = "info"
//
// # Environment
//
//	QUILL_CURSOR_SEMANTICS, QUILL_USE_HARD_TAB, QUILL_TAB_WIDTH,
//	QUILL_MAX_UNDO_ENTRIES, QUILL_SOCKET_PATH, QUILL_WATCH_FILES,
//	QUILL_LOG_LEVEL
package config
