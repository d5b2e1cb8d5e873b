package handler

import (
	"errors"
	"testing"

	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/execctx"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine"
)

func newContext() *execctx.ExecutionContext {
	return execctx.New(engine.New(), editor.NewClientID())
}

func TestBaseNamespaceHandler(t *testing.T) {
	h := NewBaseNamespaceHandler("cursor")
	h.Register("cursor.moveDown", func(a action.Action, ctx *execctx.ExecutionContext) Result {
		return Success().WithEffect(EffectSelection)
	})

	if h.Namespace() != "cursor" {
		t.Errorf("expected namespace 'cursor', got %q", h.Namespace())
	}
	if !h.CanHandle("cursor.moveDown") {
		t.Error("expected CanHandle('cursor.moveDown')")
	}
	if h.CanHandle("cursor.moveUp") {
		t.Error("expected CanHandle('cursor.moveUp') to be false")
	}

	result := h.HandleAction(action.New("cursor.moveDown"), newContext())
	if !result.IsOK() || result.Effect != EffectSelection {
		t.Errorf("unexpected result: %+v", result)
	}

	result = h.HandleAction(action.New("cursor.moveUp"), newContext())
	if !result.IsError() {
		t.Error("expected error for unregistered action")
	}
}

func TestBaseNamespaceHandlerRequiresDocument(t *testing.T) {
	called := false
	h := NewBaseNamespaceHandler("edit")
	h.Register("edit.undo", func(a action.Action, ctx *execctx.ExecutionContext) Result {
		called = true
		return Success()
	})

	result := h.HandleAction(action.New("edit.undo"), execctx.New(nil, editor.ClientID{}))
	if !errors.Is(result.Error, execctx.ErrMissingDocument) {
		t.Errorf("expected ErrMissingDocument, got %v", result.Error)
	}
	if called {
		t.Error("handler should not run without a document")
	}
}

func TestNamespaceAdapter(t *testing.T) {
	h := NewBaseNamespaceHandler("view")
	h.Register("view.center", func(a action.Action, ctx *execctx.ExecutionContext) Result {
		return Success().WithMessage("centered")
	})

	adapter := NewNamespaceAdapter(h)
	if !adapter.CanHandle("view.center") {
		t.Error("expected adapter to handle 'view.center'")
	}
	if got := adapter.Handle(action.New("view.center"), newContext()).Message; got != "centered" {
		t.Errorf("expected message 'centered', got %q", got)
	}
}

func TestHandlerFunc(t *testing.T) {
	var nilFn HandlerFunc
	if !nilFn.Handle(action.New("x"), newContext()).IsError() {
		t.Error("expected error from nil handler func")
	}

	fn := HandlerFunc(func(a action.Action, ctx *execctx.ExecutionContext) Result {
		return Success()
	})
	if !fn.CanHandle("anything") {
		t.Error("expected HandlerFunc to accept any action")
	}
}

func TestResultConstructors(t *testing.T) {
	errBoom := errors.New("boom")

	r := From(errBoom, EffectText)
	if !r.IsError() || r.Error != errBoom {
		t.Errorf("expected error result, got %+v", r)
	}

	r = From(nil, EffectText)
	if !r.IsOK() || r.Effect != EffectText {
		t.Errorf("expected ok text result, got %+v", r)
	}

	base := Success().WithData("a", 1)
	next := base.WithData("b", 2)
	if _, ok := base.GetData("b"); ok {
		t.Error("WithData should not mutate the receiver's data")
	}
	if v, ok := next.GetData("a"); !ok || v != 1 {
		t.Errorf("expected a=1 carried over, got %v", v)
	}

	if Errorf("bad %d", 3).Error.Error() != "bad 3" {
		t.Error("unexpected Errorf message")
	}
}

func TestStatusAndEffectStrings(t *testing.T) {
	if StatusOK.String() != "ok" || StatusError.String() != "error" {
		t.Error("unexpected status strings")
	}
	for effect, want := range map[Effect]string{
		EffectNone:      "none",
		EffectSelection: "selection",
		EffectText:      "text",
		EffectView:      "view",
		Effect(99):      "unknown",
	} {
		if got := effect.String(); got != want {
			t.Errorf("Effect(%d).String() = %q, want %q", effect, got, want)
		}
	}
}

func TestRepeat(t *testing.T) {
	errStop := errors.New("stop")

	calls := 0
	err := Repeat(5, func() error {
		calls++
		if calls == 3 {
			return errStop
		}
		return nil
	})
	if err != nil {
		t.Errorf("later failure should not be reported, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}

	calls = 0
	err = Repeat(5, func() error {
		calls++
		return errStop
	})
	if !errors.Is(err, errStop) || calls != 1 {
		t.Errorf("expected first failure reported after 1 call, got %v after %d", err, calls)
	}

	calls = 0
	_ = Repeat(0, func() error {
		calls++
		return nil
	})
	if calls != 1 {
		t.Errorf("count below one should still run once, got %d", calls)
	}
}
