package input

import "sync"

// MouseDelta accumulates relative mouse motion between two frames.
type MouseDelta struct {
	mu     sync.Mutex
	dx, dy float32
}

// Create a zeroed accumulator.
func NewMouseDelta() *MouseDelta {
	return &MouseDelta{}
}

// Add a motion event to the running sum.
func (m *MouseDelta) Add(dx, dy float32) {
	m.mu.Lock()
	m.dx += dx
	m.dy += dy
	m.mu.Unlock()
}

// Take returns the motion accumulated since the previous call and resets
// the accumulator to zero.
func (m *MouseDelta) Take() (dx, dy float32) {
	m.mu.Lock()
	dx, dy = m.dx, m.dy
	m.dx, m.dy = 0, 0
	m.mu.Unlock()
	return dx, dy
}
