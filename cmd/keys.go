package cmd

import (
	"github.com/achilleasa/gloom/input"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyA:         input.KeyA,
	glfw.KeyD:         input.KeyD,
	glfw.KeyE:         input.KeyE,
	glfw.KeyF:         input.KeyF,
	glfw.KeyQ:         input.KeyQ,
	glfw.KeyR:         input.KeyR,
	glfw.KeyS:         input.KeyS,
	glfw.KeyW:         input.KeyW,
	glfw.KeySpace:     input.KeySpace,
	glfw.KeyLeftShift: input.KeyLeftShift,
	glfw.KeyEscape:    input.KeyEscape,
}

// Map a glfw key to an input key. Keys without a mapping yield
// input.KeyUnknown.
func translateKey(key glfw.Key) input.Key {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return input.KeyUnknown
}

// Tracks the cursor position to turn absolute cursor events into relative
// motion.
type cursorTracker struct {
	seen bool
	x, y float64
}

func (c *cursorTracker) delta(x, y float64) (dx, dy float32) {
	if c.seen {
		dx, dy = float32(x-c.x), float32(y-c.y)
	}
	c.seen = true
	c.x, c.y = x, y
	return dx, dy
}
