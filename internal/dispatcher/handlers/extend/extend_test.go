package extend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/selection"
)

func TestExtendRight(t *testing.T) {
	h := NewHandler()
	doc := engine.NewFromString("idk\nsome\nshit\n", engine.WithCursorSemantics(selection.Block))
	ctx := execctx.New(doc, editor.NewClientID()).WithCount(2)

	result := h.HandleAction(action.New(ActionRight), ctx)
	require.True(t, result.IsOK(), "error: %v", result.Error)

	s := doc.Selections().Primary()
	assert.Equal(t, selection.Range{Start: 0, End: 3}, s.Range())
	assert.True(t, s.IsExtended(doc.Text(), selection.Block))
}

func TestCanHandle(t *testing.T) {
	h := NewHandler()
	for name := range extensions {
		assert.True(t, h.CanHandle(name), name)
	}
	assert.False(t, h.CanHandle("cursor.moveLeft"))
}
