package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/gloom/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Absolute tolerance comparisons; mgl32's relative ones reject rounding
// noise around zero.
func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) < float64(tol)
}

func vec3Near(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if !near(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

func mat4Near(a, b mgl32.Mat4, tol float32) bool {
	for i := range a {
		if !near(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

func TestForwardMovement(t *testing.T) {
	c := NewCamera(2, 1)
	c.Apply([]input.Action{input.ActionForward}, 0.5)

	if c.Position[2] != -1 {
		t.Fatalf("expected forward component to change by speed*dt = 1; got %v", c.Position[2])
	}
	if c.Position[0] != 0 || c.Position[1] != 0 {
		t.Fatalf("expected no change on other axes; got %v", c.Position)
	}
	if c.Yaw != 0 || c.Pitch != 0 {
		t.Fatalf("expected rotation to be unchanged; got yaw %v pitch %v", c.Yaw, c.Pitch)
	}
}

func TestActionTranslations(t *testing.T) {
	type spec struct {
		action input.Action
		exp    mgl32.Vec3
	}
	specs := []spec{
		{input.ActionStrafeLeft, mgl32.Vec3{1, 0, 0}},
		{input.ActionStrafeRight, mgl32.Vec3{-1, 0, 0}},
		{input.ActionForward, mgl32.Vec3{0, 0, -1}},
		{input.ActionBackward, mgl32.Vec3{0, 0, 1}},
		{input.ActionUp, mgl32.Vec3{0, -1, 0}},
		{input.ActionDown, mgl32.Vec3{0, 1, 0}},
		{input.ActionExit, mgl32.Vec3{}},
	}

	for index, s := range specs {
		c := NewCamera(1, 1)
		c.Apply([]input.Action{s.action}, 1)
		if !vec3Near(c.Position, s.exp, 1e-6) {
			t.Fatalf("[spec %d] expected %s to move camera by %v; got %v", index, s.action, s.exp, c.Position)
		}
	}
}

func TestRotationIncrements(t *testing.T) {
	c := NewCamera(1, 2)
	c.Apply([]input.Action{input.ActionYawRight, input.ActionPitchUp}, 0.25)
	if c.Yaw != 0.5 || c.Pitch != 0.5 {
		t.Fatalf("expected yaw and pitch 0.5; got %v %v", c.Yaw, c.Pitch)
	}
	c.Apply([]input.Action{input.ActionYawLeft, input.ActionPitchDown, input.ActionPitchDown}, 0.25)
	if c.Yaw != 0 || c.Pitch != -0.5 {
		t.Fatalf("expected yaw 0 and pitch -0.5; got %v %v", c.Yaw, c.Pitch)
	}
}

func TestMovementFollowsCameraYaw(t *testing.T) {
	c := NewCamera(1, 1)
	c.Yaw = math.Pi / 2
	c.Apply([]input.Action{input.ActionForward}, 1)

	// rotY(-pi/2) maps -z to +x.
	if !vec3Near(c.Position, mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Fatalf("expected forward to follow the camera yaw; got %v", c.Position)
	}
}

func permutations(actions []input.Action) [][]input.Action {
	if len(actions) <= 1 {
		return [][]input.Action{append([]input.Action(nil), actions...)}
	}
	var out [][]input.Action
	for i := range actions {
		rest := make([]input.Action, 0, len(actions)-1)
		rest = append(rest, actions[:i]...)
		rest = append(rest, actions[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]input.Action{actions[i]}, p...))
		}
	}
	return out
}

func TestSimultaneousActionsAreOrderIndependent(t *testing.T) {
	actions := []input.Action{
		input.ActionForward,
		input.ActionStrafeLeft,
		input.ActionUp,
		input.ActionYawRight,
		input.ActionPitchDown,
	}
	const dt = 0.1

	// Vector sum of the individual displacements from the same start pose.
	start := Camera{Yaw: 0.3, Pitch: -0.2, MoveSpeed: 3, RotateSpeed: 1}
	var expPos mgl32.Vec3
	for _, action := range actions {
		c := start
		c.Apply([]input.Action{action}, dt)
		expPos = expPos.Add(c.Position)
	}
	expYaw := start.Yaw + dt
	expPitch := start.Pitch - dt

	for index, p := range permutations(actions) {
		c := start
		c.Apply(p, dt)
		if !vec3Near(c.Position, expPos, 1e-6) {
			t.Fatalf("[perm %d] expected position %v; got %v", index, expPos, c.Position)
		}
		if !near(c.Yaw, expYaw, 1e-6) || !near(c.Pitch, expPitch, 1e-6) {
			t.Fatalf("[perm %d] expected yaw/pitch (%v, %v); got (%v, %v)", index, expYaw, expPitch, c.Yaw, c.Pitch)
		}
	}
}

func TestViewProjectionOrder(t *testing.T) {
	c := &Camera{Position: mgl32.Vec3{1, 2, 3}, Yaw: 0.4, Pitch: -0.3}
	proj := mgl32.Perspective(math.Pi/2, 1, 1, 100)

	exp := proj.
		Mul4(mgl32.Translate3D(0, 0, -1.2)).
		Mul4(mgl32.Scale3D(1, 1, -1)).
		Mul4(mgl32.HomogRotate3DX(-0.3)).
		Mul4(mgl32.HomogRotate3DY(0.4)).
		Mul4(mgl32.Translate3D(1, 2, 3))

	if got := c.ViewProjection(proj); !mat4Near(got, exp, 1e-5) {
		t.Fatalf("expected\n%v\ngot\n%v", exp, got)
	}

	// A point at minus the camera position ends up on the view axis.
	p := c.ViewProjection(mgl32.Ident4()).Mul4x1(mgl32.Vec4{-1, -2, -3, 1})
	if !vec3Near(p.Vec3(), mgl32.Vec3{0, 0, -1.2}, 1e-5) {
		t.Fatalf("expected point to land on the camera pivot; got %v", p)
	}
}

func TestLook(t *testing.T) {
	c := NewCamera(1, 1)
	c.Look(10, -20, 0.5)
	if c.Yaw != 5 || c.Pitch != -10 {
		t.Fatalf("expected yaw 5 pitch -10; got %v %v", c.Yaw, c.Pitch)
	}
}
