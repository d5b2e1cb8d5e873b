package engine

import (
	"github.com/dshills/quill/internal/engine/history"
	"github.com/dshills/quill/internal/engine/rope"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/engine/view"
)

// Document is the editable state of one client's file.
type Document struct {
	text       rope.Rope
	selections selection.Selections
	view       view.View
	history    *history.History
	clipboard  string

	lastSaved rope.Rope
	filePath  string
	fileName  string

	// searchBase holds the selections from before an incremental search
	// began; nil outside search.
	searchBase *selection.Selections

	// Configuration
	semantics      selection.CursorSemantics
	useHardTab     bool
	tabWidth       int
	maxUndoEntries int
}

// New creates an empty document.
func New(opts ...Option) *Document {
	return newDocument(rope.New(), opts...)
}

// NewFromString creates a document holding s. The document counts as
// saved, so IsModified is false until the first edit.
func NewFromString(s string, opts ...Option) *Document {
	return newDocument(rope.FromString(s), opts...)
}

func newDocument(text rope.Rope, opts ...Option) *Document {
	d := &Document{
		text:           text,
		lastSaved:      text,
		view:           view.New(0, 0, DefaultViewWidth, DefaultViewHeight),
		semantics:      selection.Block,
		tabWidth:       DefaultTabWidth,
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.selections = selection.NewSelections(selection.Cursor(d.text, 0, d.semantics))
	d.history = history.NewHistory(d.maxUndoEntries)
	return d
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the current text.
func (d *Document) Text() rope.Rope {
	return d.text
}

// Len returns the length of the text in chars.
func (d *Document) Len() int {
	return d.text.LenChars()
}

// Selections returns the current selections.
func (d *Document) Selections() selection.Selections {
	return d.selections
}

// SetSelections replaces the selection set after validating it against
// the text.
func (d *Document) SetSelections(sels selection.Selections) error {
	if err := sels.Validate(d.text, d.semantics); err != nil {
		return selectionsErr(err)
	}
	d.selections = sels
	return nil
}

// View returns the client view.
func (d *Document) View() view.View {
	return d.view
}

// Clipboard returns the clipboard contents.
func (d *Document) Clipboard() string {
	return d.clipboard
}

// FilePath returns the path the document was opened from, or "".
func (d *Document) FilePath() string {
	return d.filePath
}

// FileName returns the base name of the file, or "".
func (d *Document) FileName() string {
	return d.fileName
}

// IsModified returns true if the text differs from the last saved text.
func (d *Document) IsModified() bool {
	return !d.text.Equals(d.lastSaved)
}

// CursorSemantics returns the cursor semantics of the document.
func (d *Document) CursorSemantics() selection.CursorSemantics {
	return d.semantics
}

// TabWidth returns the configured tab width.
func (d *Document) TabWidth() int {
	return d.tabWidth
}

// UseHardTab returns true if tab inserts "\t".
func (d *Document) UseHardTab() bool {
	return d.useHardTab
}

// CanUndo returns true if undo is available.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// InSearch returns true between EnterSearch and AcceptSearch or
// CancelSearch.
func (d *Document) InSearch() bool {
	return d.searchBase != nil
}
