package dispatcher

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/quill/internal/dispatcher/handler"
)

// Router maps an action name to the handler of its namespace, the part of
// the name before the first dot.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]handler.NamespaceHandler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]handler.NamespaceHandler)}
}

// Register adds h under its namespace. Each namespace has one owner.
func (r *Router) Register(h handler.NamespaceHandler) error {
	ns := h.Namespace()
	if ns == "" || strings.Contains(ns, ".") {
		return fmt.Errorf("%w: bad namespace %q", ErrInvalidAction, ns)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.handlers[ns]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateNamespace, ns)
	}
	r.handlers[ns] = h
	return nil
}

// Route returns the handler for name, or false when its namespace is
// unknown or the namespace handler does not serve name.
func (r *Router) Route(name string) (handler.Handler, bool) {
	ns, _, found := strings.Cut(name, ".")
	if !found {
		return nil, false
	}

	r.mu.RLock()
	h, ok := r.handlers[ns]
	r.mu.RUnlock()

	if !ok || !h.CanHandle(name) {
		return nil, false
	}
	return handler.NewNamespaceAdapter(h), true
}

// Namespaces returns the registered namespaces in order.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for ns := range r.handlers {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// Actions returns every action name served by handlers that can list
// their actions, in order.
func (r *Router) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for _, h := range r.handlers {
		if l, ok := h.(handler.ActionLister); ok {
			names = append(names, l.Actions()...)
		}
	}
	sort.Strings(names)
	return names
}
