// Package file provides handlers for file operations on an open document.
//
// file.open is not handled here: it creates the document the other
// handlers run against, so the dispatcher serves it directly.
package file

import (
	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/dispatcher/handler"
)

// Action names for file operations.
const (
	ActionOpen   = "file.open"
	ActionSave   = "file.save"
	ActionStatus = "file.status"
)

// Status data keys.
const (
	KeyModified      = "modified"
	KeyChangedOnDisk = "changed_on_disk"
	KeyFileName      = "file_name"
)

// Handler implements namespace-based file handling.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a new file handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("file")}
	h.Register(ActionSave, save)
	h.Register(ActionStatus, status)
	return h
}

func save(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Document.Save(); err != nil {
		return handler.Error(err)
	}
	ctx.MarkSaved()
	return handler.Success().WithEffect(handler.EffectView)
}

func status(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	return handler.Success().
		WithData(KeyFileName, ctx.Document.FileName()).
		WithData(KeyModified, ctx.Document.IsModified()).
		WithData(KeyChangedOnDisk, ctx.ChangedOnDisk())
}
