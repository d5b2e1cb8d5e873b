// Package selection provides handlers that reshape the selection set
// without touching text: whole-line and whole-text selection, multiple
// selections, pairs, and incremental search.
package selection

import (
	"fmt"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/engine"
)

// Action names for selection operations.
const (
	ActionSelectLine      = "selection.selectLine"
	ActionSelectAll       = "selection.selectAll"
	ActionFlip            = "selection.flip"
	ActionCollapse        = "selection.collapse"
	ActionClearNonPrimary = "selection.clearNonPrimary"
	ActionAddAbove        = "selection.addAbove"
	ActionAddBelow        = "selection.addBelow"
	ActionNextPrimary     = "selection.nextPrimary"
	ActionPrevPrimary     = "selection.prevPrimary"
	ActionRemovePrimary   = "selection.removePrimary"
	ActionSurroundingPair = "selection.surroundingPair"
	ActionSurround        = "selection.surround"
	ActionSearchEnter     = "selection.searchEnter"
	ActionSearch          = "selection.search"
	ActionSplit           = "selection.split"
	ActionSearchAccept    = "selection.searchAccept"
	ActionSearchCancel    = "selection.searchCancel"
)

var operations = map[string]func(*engine.Document) error{
	ActionSelectLine:      (*engine.Document).SelectLine,
	ActionSelectAll:       (*engine.Document).SelectAll,
	ActionFlip:            (*engine.Document).FlipDirection,
	ActionCollapse:        (*engine.Document).CollapseSelectionToCursor,
	ActionClearNonPrimary: (*engine.Document).ClearNonPrimarySelections,
	ActionAddAbove:        (*engine.Document).AddSelectionAbove,
	ActionAddBelow:        (*engine.Document).AddSelectionBelow,
	ActionNextPrimary:     (*engine.Document).IncrementPrimarySelection,
	ActionPrevPrimary:     (*engine.Document).DecrementPrimarySelection,
	ActionRemovePrimary:   (*engine.Document).RemovePrimarySelection,
	ActionSurroundingPair: (*engine.Document).NearestSurroundingPair,
	ActionSurround:        (*engine.Document).Surround,
	ActionSearchAccept:    (*engine.Document).AcceptSearch,
	ActionSearchCancel:    (*engine.Document).CancelSearch,
}

// Handler implements namespace-based selection handling.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a new selection handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("selection")}
	for name, op := range operations {
		h.Register(name, once(op))
	}
	h.Register(ActionSearchEnter, searchEnter)
	h.Register(ActionSearch, pattern((*engine.Document).IncrementalSearch))
	h.Register(ActionSplit, pattern((*engine.Document).IncrementalSplit))
	return h
}

func once(op func(*engine.Document) error) handler.Func {
	return func(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.From(op(ctx.Document), handler.EffectSelection)
	}
}

func searchEnter(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.Document.EnterSearch()
	return handler.Success()
}

func pattern(op func(*engine.Document, string) error) handler.Func {
	return func(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
		p, ok := a.Args.GetString("pattern")
		if !ok {
			return handler.Error(fmt.Errorf("%w: pattern", execctx.ErrMissingArgument))
		}
		return handler.From(op(ctx.Document, p), handler.EffectSelection)
	}
}
