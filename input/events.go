package input

import "github.com/achilleasa/gloom/log"

// Control tells the event pump whether to keep running.
type Control int

const (
	ControlContinue Control = iota
	ControlExit
)

// HealthReporter is implemented by types that track whether the render
// thread is still alive.
type HealthReporter interface {
	Healthy() bool
}

// EventHandler applies window events to the shared input state. It runs on
// the event thread; every handler first checks the render thread health and
// requests an exit if the render thread has died.
type EventHandler struct {
	Keys     *KeySet
	Mouse    *MouseDelta
	Bindings Bindings
	Health   HealthReporter

	logger log.Logger
}

// Create a handler for the given shared state.
func NewEventHandler(keys *KeySet, mouse *MouseDelta, bindings Bindings, health HealthReporter) *EventHandler {
	return &EventHandler{
		Keys:     keys,
		Mouse:    mouse,
		Bindings: bindings,
		Health:   health,
		logger:   log.New("events"),
	}
}

func (h *EventHandler) checkHealth() Control {
	if h.Health != nil && !h.Health.Healthy() {
		h.logger.Warning("render thread is no longer running; exiting")
		return ControlExit
	}
	return ControlContinue
}

// HandleKey records a key press or release.
func (h *EventHandler) HandleKey(key Key, pressed bool) Control {
	if h.checkHealth() == ControlExit {
		return ControlExit
	}

	if !pressed {
		h.Keys.Release(key)
		return ControlContinue
	}

	h.Keys.Press(key)
	if h.Bindings.Action(key) == ActionExit {
		h.logger.Debugf("exit requested via %s", key)
		return ControlExit
	}
	return ControlContinue
}

// HandleMouseMotion accumulates a relative mouse movement.
func (h *EventHandler) HandleMouseMotion(dx, dy float32) Control {
	if h.checkHealth() == ControlExit {
		return ControlExit
	}

	h.Mouse.Add(dx, dy)
	return ControlContinue
}

// HandleClose handles a window close request.
func (h *EventHandler) HandleClose() Control {
	h.checkHealth()
	return ControlExit
}
