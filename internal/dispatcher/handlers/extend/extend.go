// Package extend provides handlers that grow or shrink selections by
// moving their heads while the anchors stay put.
package extend

import (
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/dispatcher/handlers/cursor"
	"github.com/dshills/quill/internal/engine"
)

// Action names for selection extension.
const (
	ActionLeft          = "extend.left"
	ActionRight         = "extend.right"
	ActionUp            = "extend.up"
	ActionDown          = "extend.down"
	ActionLineStart     = "extend.lineStart"
	ActionLineTextStart = "extend.lineTextStart"
	ActionLineEnd       = "extend.lineEnd"
	ActionHome          = "extend.home"
	ActionDocStart      = "extend.docStart"
	ActionDocEnd        = "extend.docEnd"
	ActionWordForward   = "extend.wordForward"
	ActionWordBackward  = "extend.wordBackward"
	ActionPageUp        = "extend.pageUp"
	ActionPageDown      = "extend.pageDown"
)

var extensions = map[string]func(*engine.Document) error{
	ActionLeft:          (*engine.Document).ExtendSelectionLeft,
	ActionRight:         (*engine.Document).ExtendSelectionRight,
	ActionUp:            (*engine.Document).ExtendSelectionUp,
	ActionDown:          (*engine.Document).ExtendSelectionDown,
	ActionLineStart:     (*engine.Document).ExtendSelectionLineStart,
	ActionLineTextStart: (*engine.Document).ExtendSelectionLineTextStart,
	ActionLineEnd:       (*engine.Document).ExtendSelectionLineEnd,
	ActionHome:          (*engine.Document).ExtendSelectionHome,
	ActionDocStart:      (*engine.Document).ExtendSelectionDocStart,
	ActionDocEnd:        (*engine.Document).ExtendSelectionDocEnd,
	ActionWordForward:   (*engine.Document).ExtendSelectionWordBoundaryForward,
	ActionWordBackward:  (*engine.Document).ExtendSelectionWordBoundaryBackward,
	ActionPageUp:        (*engine.Document).ExtendSelectionPageUp,
	ActionPageDown:      (*engine.Document).ExtendSelectionPageDown,
}

// Handler implements namespace-based selection extension.
type Handler struct {
	*handler.BaseNamespaceHandler
}

// NewHandler creates a new extend handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("extend")}
	for name, ext := range extensions {
		h.Register(name, cursor.Motion(ext))
	}
	return h
}
