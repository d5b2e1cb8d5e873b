// Package handler provides the handler interface and types for action dispatch.
package handler

import (
	"sort"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
)

// Func handles one action.
type Func func(a action.Action, ctx *execctx.ExecutionContext) Result

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(a action.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// HandlerFunc adapts a function to the Handler interface.
// It accepts every action; the caller must ensure correct routing.
type HandlerFunc Func

// Handle implements Handler.Handle.
func (f HandlerFunc) Handle(a action.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(a, ctx)
}

// CanHandle implements Handler.CanHandle.
func (f HandlerFunc) CanHandle(string) bool {
	return true
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot (e.g., "cursor" in "cursor.moveDown").
type NamespaceHandler interface {
	// HandleAction handles an action within this namespace.
	HandleAction(a action.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix (e.g., "cursor", "edit").
	Namespace() string
}

// ActionLister is implemented by namespace handlers that can enumerate the
// action names they serve.
type ActionLister interface {
	Actions() []string
}

// namespaceAdapter adapts NamespaceHandler to Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(act action.Action, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleAction(act, ctx)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return a.h.CanHandle(actionName)
}

// BaseNamespaceHandler is a table-driven namespace handler.
type BaseNamespaceHandler struct {
	namespace string
	actions   map[string]Func
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		actions:   make(map[string]Func),
	}
}

// Register registers a handler function for an action name.
func (h *BaseNamespaceHandler) Register(actionName string, fn Func) {
	h.actions[actionName] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// CanHandle implements NamespaceHandler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(actionName string) bool {
	_, ok := h.actions[actionName]
	return ok
}

// Actions implements ActionLister.
func (h *BaseNamespaceHandler) Actions() []string {
	names := make([]string, 0, len(h.actions))
	for name := range h.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandleAction implements NamespaceHandler.HandleAction.
func (h *BaseNamespaceHandler) HandleAction(a action.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := h.actions[a.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", h.namespace, a.Name)
	}
	if err := ctx.Validate(); err != nil {
		return Error(err)
	}
	return fn(a, ctx)
}

// Repeat runs fn up to count times. Only a failure on the first run is
// reported; a later failure ends the repetition.
func Repeat(count int, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	for i := 1; i < count; i++ {
		if fn() != nil {
			break
		}
	}
	return nil
}
