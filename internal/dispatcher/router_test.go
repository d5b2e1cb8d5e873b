package dispatcher_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/dispatcher/handler"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine"
)

func succeed(action.Action, *execctx.ExecutionContext) handler.Result {
	return handler.Success().WithMessage("ok")
}

func namespace(name string, actions ...string) *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler(name)
	for _, a := range actions {
		h.Register(a, succeed)
	}
	return h
}

func TestRouterRoute(t *testing.T) {
	r := dispatcher.NewRouter()
	if err := r.Register(namespace("cursor", "cursor.moveDown")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ok   bool
	}{
		{"cursor.moveDown", true},
		{"cursor.moveSideways", false},
		{"edit.undo", false},
		{"cursor", false},
		{"", false},
	}
	for _, tt := range tests {
		if _, ok := r.Route(tt.name); ok != tt.ok {
			t.Errorf("Route(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}

	h, _ := r.Route("cursor.moveDown")
	result := h.Handle(action.New("cursor.moveDown"), execctx.New(engine.New(), editor.NewClientID()))
	if result.Message != "ok" {
		t.Errorf("routed handler returned %q", result.Message)
	}
}

func TestRouterRegisterRejects(t *testing.T) {
	r := dispatcher.NewRouter()
	if err := r.Register(namespace("edit")); err != nil {
		t.Fatal(err)
	}

	if err := r.Register(namespace("edit")); !errors.Is(err, dispatcher.ErrDuplicateNamespace) {
		t.Errorf("duplicate namespace: got %v", err)
	}
	if err := r.Register(namespace("")); !errors.Is(err, dispatcher.ErrInvalidAction) {
		t.Errorf("empty namespace: got %v", err)
	}
	if err := r.Register(namespace("a.b")); !errors.Is(err, dispatcher.ErrInvalidAction) {
		t.Errorf("dotted namespace: got %v", err)
	}
}

func TestRouterListings(t *testing.T) {
	r := dispatcher.NewRouter()
	_ = r.Register(namespace("view", "view.scrollUp", "view.center"))
	_ = r.Register(namespace("cursor", "cursor.moveDown"))
	_ = r.Register(namespace("edit", "edit.undo"))

	if got, want := r.Namespaces(), []string{"cursor", "edit", "view"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Namespaces() = %v, want %v", got, want)
	}

	want := []string{"cursor.moveDown", "edit.undo", "view.center", "view.scrollUp"}
	if got := r.Actions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Actions() = %v, want %v", got, want)
	}
}
