package supervisor

import "sync"

// Health records whether the render thread is alive. Only the watchdog
// writes it; the event thread reads it once per dispatched event.
type Health struct {
	mu      sync.RWMutex
	healthy bool
}

// Create a healthy flag.
func NewHealth() *Health {
	return &Health{healthy: true}
}

// Healthy returns false once the render thread has terminated abnormally.
func (h *Health) Healthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.healthy
}

func (h *Health) markUnhealthy() {
	h.mu.Lock()
	h.healthy = false
	h.mu.Unlock()
}
