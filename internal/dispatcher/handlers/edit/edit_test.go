package edit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/selection"
)

func newContext(text string) *execctx.ExecutionContext {
	doc := engine.NewFromString(text, engine.WithCursorSemantics(selection.Block), engine.WithTabWidth(4))
	return execctx.New(doc, editor.NewClientID())
}

func TestInsertWithCount(t *testing.T) {
	h := NewHandler()
	ctx := newContext("abc").WithCount(3)

	result := h.HandleAction(action.New(ActionInsert).With("text", "x"), ctx)
	require.True(t, result.IsOK(), "error: %v", result.Error)
	assert.Equal(t, handler.EffectText, result.Effect)
	assert.Equal(t, "xxxabc", ctx.Document.Text().String())

	result = h.HandleAction(action.New(ActionUndo), ctx.WithCount(1))
	require.True(t, result.IsOK())
	assert.Equal(t, "xxabc", ctx.Document.Text().String())
}

func TestInsertRequiresText(t *testing.T) {
	h := NewHandler()
	result := h.HandleAction(action.New(ActionInsert), newContext("abc"))
	assert.True(t, errors.Is(result.Error, execctx.ErrMissingArgument))
}

func TestBackspaceAtStart(t *testing.T) {
	h := NewHandler()
	result := h.HandleAction(action.New(ActionBackspace), newContext("abc"))
	assert.True(t, errors.Is(result.Error, engine.ErrSelectionAtDocBounds))
}

func TestTabInsertsSpaces(t *testing.T) {
	h := NewHandler()
	ctx := newContext("abc")

	require.True(t, h.HandleAction(action.New(ActionTab), ctx).IsOK())
	assert.Equal(t, "    abc", ctx.Document.Text().String())
}

func TestCopyPaste(t *testing.T) {
	h := NewHandler()
	ctx := newContext("abc")

	result := h.HandleAction(action.New(ActionCopy), ctx)
	require.True(t, result.IsOK(), "error: %v", result.Error)
	assert.Equal(t, handler.EffectNone, result.Effect)
	assert.Equal(t, "a", ctx.Document.Clipboard())

	result = h.HandleAction(action.New(ActionPaste), ctx.WithCount(2))
	require.True(t, result.IsOK())
	assert.Equal(t, "aaabc", ctx.Document.Text().String())
}

func TestSurroundPair(t *testing.T) {
	h := NewHandler()
	ctx := newContext("abc")

	a := action.New(ActionSurroundPair).With("leading", "(").With("trailing", ")")
	result := h.HandleAction(a, ctx)
	require.True(t, result.IsOK(), "error: %v", result.Error)
	assert.Equal(t, "(a)bc", ctx.Document.Text().String())

	result = h.HandleAction(action.New(ActionSurroundPair).With("leading", "("), ctx)
	assert.True(t, errors.Is(result.Error, execctx.ErrMissingArgument))
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHandler()
	ctx := newContext("abc")

	assert.True(t, errors.Is(h.HandleAction(action.New(ActionUndo), ctx).Error, engine.ErrNoChangesToUndo))
	assert.True(t, errors.Is(h.HandleAction(action.New(ActionRedo), ctx).Error, engine.ErrNoChangesToRedo))
}
