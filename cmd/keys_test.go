package cmd

import (
	"testing"

	"github.com/achilleasa/gloom/input"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestTranslateKey(t *testing.T) {
	type spec struct {
		in  glfw.Key
		exp input.Key
	}
	specs := []spec{
		{glfw.KeyW, input.KeyW},
		{glfw.KeyLeftShift, input.KeyLeftShift},
		{glfw.KeyEscape, input.KeyEscape},
		{glfw.KeyZ, input.KeyUnknown},
	}

	for index, s := range specs {
		if got := translateKey(s.in); got != s.exp {
			t.Fatalf("[spec %d] expected %s; got %s", index, s.exp, got)
		}
	}

	// Every bound key must be reachable from the window system.
	reachable := make(map[input.Key]bool)
	for _, k := range glfwKeys {
		reachable[k] = true
	}
	for k := range input.DefaultBindings() {
		if !reachable[k] {
			t.Fatalf("bound key %s has no glfw mapping", k)
		}
	}
}

func TestCursorTracker(t *testing.T) {
	var c cursorTracker
	if dx, dy := c.delta(100, 50); dx != 0 || dy != 0 {
		t.Fatalf("expected first event to only set the baseline; got %v %v", dx, dy)
	}
	if dx, dy := c.delta(103, 46); dx != 3 || dy != -4 {
		t.Fatalf("expected delta (3, -4); got %v %v", dx, dy)
	}
}
