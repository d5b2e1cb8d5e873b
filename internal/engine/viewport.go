package engine

import "github.com/dshills/quill/internal/engine/view"

func (d *Document) setView(next view.View, err error) error {
	if err != nil {
		return viewErr(err)
	}
	d.view = next
	return nil
}

// ScrollViewUp moves the client view up by amount lines.
func (d *Document) ScrollViewUp(amount int) error {
	return d.setView(d.view.ScrollUp(amount))
}

// ScrollViewDown moves the client view down by amount lines.
func (d *Document) ScrollViewDown(amount int) error {
	return d.setView(d.view.ScrollDown(amount, d.text))
}

// ScrollViewLeft moves the client view left by amount columns.
func (d *Document) ScrollViewLeft(amount int) error {
	return d.setView(d.view.ScrollLeft(amount))
}

// ScrollViewRight moves the client view right by amount columns.
func (d *Document) ScrollViewRight(amount int) error {
	return d.setView(d.view.ScrollRight(amount, d.text))
}

// CenterViewVerticallyAroundCursor puts the primary cursor's line in the
// middle of the client view.
func (d *Document) CenterViewVerticallyAroundCursor() error {
	return d.setView(d.view.CenterVerticallyAroundCursor(d.selections, d.text, d.semantics))
}

// SetViewSize resizes the client view.
func (d *Document) SetViewSize(width, height int) error {
	return d.setView(d.view.Resize(width, height))
}

// ScrollViewFollowingCursor moves the client view just enough to show the
// primary cursor and reports whether it moved.
func (d *Document) ScrollViewFollowingCursor() bool {
	next, moved := d.view.ScrollFollowingCursor(d.selections, d.text, d.semantics)
	d.view = next
	return moved
}

// ViewText renders the visible text.
func (d *Document) ViewText() string {
	return d.view.Text(d.text)
}

// LineNumbers renders the visible line numbers.
func (d *Document) LineNumbers() string {
	return d.view.LineNumbers(d.text)
}

// ClientCursorPositions returns the screen positions of the visible
// cursors.
func (d *Document) ClientCursorPositions() []view.Position {
	return d.view.CursorPositions(d.text, d.selections, d.semantics)
}

// DocumentCursorPositions returns every cursor as a column and line in the
// text.
func (d *Document) DocumentCursorPositions() []view.Position {
	return view.DocumentCursorPositions(d.text, d.selections, d.semantics)
}
