// Package view provides handlers for the client's viewport: scrolling,
// centering and resizing. None of them move selections.
package view

import (
	"fmt"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/engine"
)

// Action names for view operations.
const (
	ActionScrollUp    = "view.scrollUp"
	ActionScrollDown  = "view.scrollDown"
	ActionScrollLeft  = "view.scrollLeft"
	ActionScrollRight = "view.scrollRight"
	ActionCenter      = "view.center"
	ActionResize      = "view.resize"
)

// Handler implements namespace-based view handling.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a new view handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("view")}
	h.Register(ActionScrollUp, scroll((*engine.Document).ScrollViewUp))
	h.Register(ActionScrollDown, scroll((*engine.Document).ScrollViewDown))
	h.Register(ActionScrollLeft, scroll((*engine.Document).ScrollViewLeft))
	h.Register(ActionScrollRight, scroll((*engine.Document).ScrollViewRight))
	h.Register(ActionCenter, center)
	h.Register(ActionResize, resize)
	return h
}

func intArg(a action.Action, key string) (int, error) {
	n, ok := a.Args.GetInt(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", execctx.ErrMissingArgument, key)
	}
	return n, nil
}

// scroll reads the amount argument and multiplies it by the repeat count.
func scroll(op func(*engine.Document, int) error) handler.Func {
	return func(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
		amount, err := intArg(a, "amount")
		if err != nil {
			return handler.Error(err)
		}
		return handler.From(op(ctx.Document, amount*ctx.GetCount()), handler.EffectView)
	}
}

func center(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	return handler.From(ctx.Document.CenterViewVerticallyAroundCursor(), handler.EffectView)
}

func resize(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	width, err := intArg(a, "width")
	if err != nil {
		return handler.Error(err)
	}
	height, err := intArg(a, "height")
	if err != nil {
		return handler.Error(err)
	}
	return handler.From(ctx.Document.SetViewSize(width, height), handler.EffectView)
}
