package input

import (
	"reflect"
	"testing"
)

type fakeHealth struct{ healthy bool }

func (f *fakeHealth) Healthy() bool { return f.healthy }

func TestEventHandlerUpdatesSharedState(t *testing.T) {
	health := &fakeHealth{healthy: true}
	h := NewEventHandler(NewKeySet(), NewMouseDelta(), DefaultBindings(), health)

	if c := h.HandleKey(KeyW, true); c != ControlContinue {
		t.Fatalf("expected continue after pressing W; got %v", c)
	}
	if c := h.HandleMouseMotion(3, -1); c != ControlContinue {
		t.Fatalf("expected continue after mouse motion; got %v", c)
	}
	h.HandleMouseMotion(1, 1)

	if keys := h.Keys.Snapshot(); !reflect.DeepEqual(keys, []Key{KeyW}) {
		t.Fatalf("expected W to be held; got %v", keys)
	}
	if dx, dy := h.Mouse.Take(); dx != 4 || dy != 0 {
		t.Fatalf("expected accumulated delta (4, 0); got (%v, %v)", dx, dy)
	}

	h.HandleKey(KeyW, false)
	if keys := h.Keys.Snapshot(); len(keys) != 0 {
		t.Fatalf("expected no held keys after release; got %v", keys)
	}
}

func TestExitActionIsBinding(t *testing.T) {
	h := NewEventHandler(NewKeySet(), NewMouseDelta(), DefaultBindings(), nil)
	if c := h.HandleKey(KeyEscape, true); c != ControlExit {
		t.Fatalf("expected escape to request exit; got %v", c)
	}

	rebound := Bindings{KeyQ: ActionExit}
	h = NewEventHandler(NewKeySet(), NewMouseDelta(), rebound, nil)
	if c := h.HandleKey(KeyEscape, true); c != ControlContinue {
		t.Fatalf("expected unbound escape to be ignored; got %v", c)
	}
	if c := h.HandleKey(KeyQ, true); c != ControlExit {
		t.Fatalf("expected rebound exit key to request exit; got %v", c)
	}
}

func TestUnhealthyRenderThreadRequestsExit(t *testing.T) {
	health := &fakeHealth{healthy: true}
	h := NewEventHandler(NewKeySet(), NewMouseDelta(), DefaultBindings(), health)

	health.healthy = false
	if c := h.HandleMouseMotion(1, 1); c != ControlExit {
		t.Fatalf("expected exit on first event after render thread died; got %v", c)
	}
	if dx, dy := h.Mouse.Take(); dx != 0 || dy != 0 {
		t.Fatalf("expected event to be dropped; got (%v, %v)", dx, dy)
	}
	if c := h.HandleKey(KeyA, true); c != ControlExit {
		t.Fatalf("expected exit on key event; got %v", c)
	}
}

func TestCloseRequestsExit(t *testing.T) {
	h := NewEventHandler(NewKeySet(), NewMouseDelta(), DefaultBindings(), &fakeHealth{healthy: true})
	if c := h.HandleClose(); c != ControlExit {
		t.Fatalf("expected close to request exit; got %v", c)
	}
}
