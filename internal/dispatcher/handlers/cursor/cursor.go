package cursor

import (
	"fmt"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/engine"
)

// Action names for cursor movements.
const (
	ActionMoveLeft          = "cursor.moveLeft"
	ActionMoveRight         = "cursor.moveRight"
	ActionMoveUp            = "cursor.moveUp"
	ActionMoveDown          = "cursor.moveDown"
	ActionMoveLineStart     = "cursor.moveLineStart"
	ActionMoveLineTextStart = "cursor.moveLineTextStart"
	ActionMoveLineEnd       = "cursor.moveLineEnd"
	ActionMoveHome          = "cursor.moveHome"
	ActionMoveDocStart      = "cursor.moveDocStart"
	ActionMoveDocEnd        = "cursor.moveDocEnd"
	ActionMoveWordForward   = "cursor.moveWordForward"
	ActionMoveWordBackward  = "cursor.moveWordBackward"
	ActionMovePageUp        = "cursor.movePageUp"
	ActionMovePageDown      = "cursor.movePageDown"
	ActionGoTo              = "cursor.goTo"
)

var motions = map[string]func(*engine.Document) error{
	ActionMoveLeft:          (*engine.Document).MoveCursorLeft,
	ActionMoveRight:         (*engine.Document).MoveCursorRight,
	ActionMoveUp:            (*engine.Document).MoveCursorUp,
	ActionMoveDown:          (*engine.Document).MoveCursorDown,
	ActionMoveLineStart:     (*engine.Document).MoveCursorLineStart,
	ActionMoveLineTextStart: (*engine.Document).MoveCursorLineTextStart,
	ActionMoveLineEnd:       (*engine.Document).MoveCursorLineEnd,
	ActionMoveHome:          (*engine.Document).MoveCursorHome,
	ActionMoveDocStart:      (*engine.Document).MoveCursorDocStart,
	ActionMoveDocEnd:        (*engine.Document).MoveCursorDocEnd,
	ActionMoveWordForward:   (*engine.Document).MoveCursorWordBoundaryForward,
	ActionMoveWordBackward:  (*engine.Document).MoveCursorWordBoundaryBackward,
	ActionMovePageUp:        (*engine.Document).MoveCursorPageUp,
	ActionMovePageDown:      (*engine.Document).MoveCursorPageDown,
}

// Handler implements namespace-based cursor movement handling.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("cursor")}
	for name, move := range motions {
		h.Register(name, Motion(move))
	}
	h.Register(ActionGoTo, goTo)
	return h
}

// Motion adapts a document motion to a handler that honors the repeat
// count.
func Motion(move func(*engine.Document) error) handler.Func {
	return func(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
		err := handler.Repeat(ctx.GetCount(), func() error {
			return move(ctx.Document)
		})
		return handler.From(err, handler.EffectSelection)
	}
}

// goTo takes a 1-based line number from the client.
func goTo(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	line, ok := a.Args.GetInt("line")
	if !ok {
		return handler.Error(fmt.Errorf("%w: line", execctx.ErrMissingArgument))
	}
	if line < 1 {
		return handler.Error(engine.ErrInvalidInput)
	}
	return handler.From(ctx.Document.GoTo(line-1), handler.EffectSelection)
}
