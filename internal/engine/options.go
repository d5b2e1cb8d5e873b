package engine

import "github.com/dshills/quill/internal/engine/selection"

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 0 // unbounded
	DefaultViewWidth      = 80
	DefaultViewHeight     = 24
)

// Option configures a Document during creation.
type Option func(*Document)

// WithCursorSemantics sets Bar or Block cursors.
func WithCursorSemantics(semantics selection.CursorSemantics) Option {
	return func(d *Document) {
		d.semantics = semantics
	}
}

// WithHardTab makes the tab key insert "\t" instead of spaces.
func WithHardTab(hard bool) Option {
	return func(d *Document) {
		d.useHardTab = hard
	}
}

// WithTabWidth sets the column width of a tab stop.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		if width > 0 {
			d.tabWidth = width
		}
	}
}

// WithMaxUndoEntries bounds the undo history. 0 keeps every entry.
func WithMaxUndoEntries(n int) Option {
	return func(d *Document) {
		if n >= 0 {
			d.maxUndoEntries = n
		}
	}
}

// WithViewSize sets the initial size of the client view.
func WithViewSize(width, height int) Option {
	return func(d *Document) {
		if width > 0 && height > 0 {
			d.view.Width = width
			d.view.Height = height
		}
	}
}
