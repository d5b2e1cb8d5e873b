package edit

import (
	"fmt"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/engine"
)

// Action names for edit operations.
const (
	ActionInsert       = "edit.insert"
	ActionNewline      = "edit.newline"
	ActionTab          = "edit.tab"
	ActionBackspace    = "edit.backspace"
	ActionDelete       = "edit.delete"
	ActionCut          = "edit.cut"
	ActionCopy         = "edit.copy"
	ActionPaste        = "edit.paste"
	ActionSurroundPair = "edit.surroundPair"
	ActionUndo         = "edit.undo"
	ActionRedo         = "edit.redo"
)

// repeatable edits run once per repeat count.
var repeatable = map[string]func(*engine.Document) error{
	ActionNewline:   (*engine.Document).InsertNewline,
	ActionTab:       (*engine.Document).InsertTab,
	ActionBackspace: (*engine.Document).Backspace,
	ActionDelete:    (*engine.Document).Delete,
	ActionPaste:     (*engine.Document).Paste,
	ActionUndo:      (*engine.Document).Undo,
	ActionRedo:      (*engine.Document).Redo,
}

// Handler implements namespace-based edit handling.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a new edit handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("edit")}
	for name, op := range repeatable {
		h.Register(name, repeated(op))
	}
	h.Register(ActionInsert, insert)
	h.Register(ActionCut, cut)
	h.Register(ActionCopy, copySelection)
	h.Register(ActionSurroundPair, surroundPair)
	return h
}

func repeated(op func(*engine.Document) error) handler.Func {
	return func(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
		err := handler.Repeat(ctx.GetCount(), func() error {
			return op(ctx.Document)
		})
		return handler.From(err, handler.EffectText)
	}
}

func stringArg(a action.Action, key string) (string, error) {
	s, ok := a.Args.GetString(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", execctx.ErrMissingArgument, key)
	}
	return s, nil
}

func insert(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	text, err := stringArg(a, "text")
	if err != nil {
		return handler.Error(err)
	}
	err = handler.Repeat(ctx.GetCount(), func() error {
		return ctx.Document.InsertString(text)
	})
	return handler.From(err, handler.EffectText)
}

func cut(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	return handler.From(ctx.Document.Cut(), handler.EffectText)
}

func copySelection(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	return handler.From(ctx.Document.Copy(), handler.EffectNone)
}

func surroundPair(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	leading, err := stringArg(a, "leading")
	if err != nil {
		return handler.Error(err)
	}
	trailing, err := stringArg(a, "trailing")
	if err != nil {
		return handler.Error(err)
	}
	return handler.From(ctx.Document.AddSurroundingPair(leading, trailing), handler.EffectText)
}
