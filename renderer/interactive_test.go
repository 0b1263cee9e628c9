package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/achilleasa/gloom/gpu"
	"github.com/achilleasa/gloom/gpu/gputest"
	"github.com/achilleasa/gloom/input"
	"github.com/achilleasa/gloom/scene"
	"github.com/achilleasa/gloom/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

type countingPresenter struct {
	rec   *gputest.Recorder
	swaps int
	// Number of recorded calls at each swap.
	callsAtSwap []int
}

func (p *countingPresenter) SwapBuffers() {
	p.swaps++
	p.callsAtSwap = append(p.callsAtSwap, len(p.rec.Calls()))
}

// A clock that advances by step every time it is read.
type steppingClock struct {
	t    time.Time
	step time.Duration
}

func (c *steppingClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func setup(t *testing.T, opts Options) (*interactiveRenderer, *gputest.Recorder, *countingPresenter, Input) {
	t.Helper()

	rec := gputest.NewRecorder()
	g := scene.NewGraph()
	root := g.NewGroup("root")
	g.AddChild(root, g.NewDrawable("a", gpu.Mesh{VAO: 7, Count: 9}))
	g.AddChild(root, g.NewDrawable("b", gpu.Mesh{VAO: 8, Count: 3}))

	in := Input{Keys: input.NewKeySet(), Mouse: input.NewMouseDelta()}
	presenter := &countingPresenter{rec: rec}
	r, err := NewInteractive(rec, presenter, Scene{Graph: g, Root: root, Program: 3}, in, opts)
	if err != nil {
		t.Fatal(err)
	}
	return r.(*interactiveRenderer), rec, presenter, in
}

func TestNewInteractiveValidation(t *testing.T) {
	rec := gputest.NewRecorder()
	in := Input{Keys: input.NewKeySet(), Mouse: input.NewMouseDelta()}
	g := scene.NewGraph()
	root := g.NewGroup("root")

	if _, err := NewInteractive(rec, nil, Scene{}, in, DefaultOptions()); !errors.Is(err, ErrSceneNotDefined) {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
	if _, err := NewInteractive(rec, nil, Scene{Graph: g, Root: root}, Input{}, DefaultOptions()); !errors.Is(err, ErrInputNotDefined) {
		t.Fatalf("expected ErrInputNotDefined; got %v", err)
	}
	opts := DefaultOptions()
	opts.FrameH = 0
	if _, err := NewInteractive(rec, nil, Scene{Graph: g, Root: root}, in, opts); !errors.Is(err, ErrInvalidFrameSize) {
		t.Fatalf("expected ErrInvalidFrameSize; got %v", err)
	}
}

func TestRenderFrameSequence(t *testing.T) {
	r, rec, _, _ := setup(t, DefaultOptions())

	drawCalls := r.renderFrame(0.016)
	if drawCalls != 2 {
		t.Fatalf("expected 2 draw calls; got %d", drawCalls)
	}

	expOps := []string{
		gputest.OpClear,
		gputest.OpBindVertexArray, gputest.OpSetUniformMatrix4, gputest.OpDrawIndexed,
		gputest.OpBindVertexArray, gputest.OpSetUniformMatrix4, gputest.OpDrawIndexed,
	}
	ops := rec.Ops()
	if len(ops) != len(expOps) {
		t.Fatalf("expected ops %v; got %v", expOps, ops)
	}
	for index := range ops {
		if ops[index] != expOps[index] {
			t.Fatalf("expected ops %v; got %v", expOps, ops)
		}
	}

	expMat := r.camera.ViewProjection(DefaultOptions().Projection())
	for index, d := range rec.Draws() {
		if d.Location != 2 {
			t.Fatalf("[draw %d] expected matrix uniform at location 2; got %d", index, d.Location)
		}
		if !d.Matrix.ApproxEqual(expMat) {
			t.Fatalf("[draw %d] expected view-projection matrix\n%v\ngot\n%v", index, expMat, d.Matrix)
		}
	}
}

func TestRenderFrameAppliesKeys(t *testing.T) {
	r, _, _, in := setup(t, DefaultOptions())

	in.Keys.Press(input.KeyW)
	in.Keys.Press(input.KeyE)
	r.renderFrame(0.5)

	if pos := r.camera.Position; pos[2] != -0.5 || pos[0] != 0 || pos[1] != 0 {
		t.Fatalf("expected camera to move 0.5 along -z; got %v", pos)
	}
	if r.camera.Yaw != 0.5 {
		t.Fatalf("expected yaw 0.5; got %v", r.camera.Yaw)
	}
}

func TestMouseDeltaConsumedEveryFrame(t *testing.T) {
	type spec struct {
		mouseLook bool
		expYaw    float32
		expPitch  float32
	}
	specs := []spec{
		{false, 0, 0},
		{true, 100 * 0.005, -50 * 0.005},
	}

	for index, s := range specs {
		opts := DefaultOptions()
		opts.MouseLook = s.mouseLook
		r, _, _, in := setup(t, opts)

		in.Mouse.Add(100, -50)
		r.renderFrame(0)

		if dx, dy := in.Mouse.Take(); dx != 0 || dy != 0 {
			t.Fatalf("[spec %d] expected mouse delta to be reset by the frame; got (%v, %v)", index, dx, dy)
		}
		if !mgl32.FloatEqual(r.camera.Yaw, s.expYaw) || !mgl32.FloatEqual(r.camera.Pitch, s.expPitch) {
			t.Fatalf("[spec %d] expected yaw/pitch (%v, %v); got (%v, %v)", index, s.expYaw, s.expPitch, r.camera.Yaw, r.camera.Pitch)
		}
	}
}

func TestRenderLoop(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxFrames = 3
	r, rec, presenter, _ := setup(t, opts)
	clock := &steppingClock{t: time.Unix(0, 0), step: 10 * time.Millisecond}
	r.now = clock.now

	if err := r.Render(); err != nil {
		t.Fatal(err)
	}

	if presenter.swaps != 3 {
		t.Fatalf("expected 3 presented frames; got %d", presenter.swaps)
	}

	calls := rec.Calls()
	if calls[0].Op != gputest.OpUseProgram || calls[0].Program != 3 {
		t.Fatalf("expected program to be bound before drawing; got %+v", calls[0])
	}
	if calls[1].Op != gputest.OpClearColor || calls[1].Color != opts.ClearColor {
		t.Fatalf("expected clear color to be set; got %+v", calls[1])
	}
	if len(rec.Draws()) != 6 {
		t.Fatalf("expected 2 draws per frame; got %d", len(rec.Draws()))
	}

	// Every swap happens after that frame's draws.
	for frame, n := range presenter.callsAtSwap {
		if exp := 2 + (frame+1)*7; n != exp {
			t.Fatalf("[frame %d] expected %d calls before swap; got %d", frame, exp, n)
		}
	}

	stats := r.Stats()
	if stats.Frames != 3 || stats.DrawCalls != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.LastFrameTime != 10*time.Millisecond || stats.AvgFrameTime != 10*time.Millisecond {
		t.Fatalf("expected 10ms frame times; got last %s avg %s", stats.LastFrameTime, stats.AvgFrameTime)
	}
	if stats.Uptime != 60*time.Millisecond {
		t.Fatalf("expected 60ms uptime; got %s", stats.Uptime)
	}
}

func TestClose(t *testing.T) {
	r, _, presenter, _ := setup(t, DefaultOptions())
	r.Close()
	if err := r.Render(); err != nil {
		t.Fatal(err)
	}
	if presenter.swaps != 0 {
		t.Fatalf("expected closed renderer to not present frames; got %d", presenter.swaps)
	}
}

func TestProjection(t *testing.T) {
	opts := DefaultOptions()
	exp := mgl32.Perspective(opts.FOV, 800.0/600.0, 1, 100)
	if !opts.Projection().ApproxEqual(exp) {
		t.Fatal("expected projection to use the frame aspect ratio")
	}
}

func TestDefaultMatrixUniformMatchesShaders(t *testing.T) {
	if got := DefaultOptions().MatrixUniform; got != shaders.MatrixUniformLocation {
		t.Fatalf("expected default matrix uniform %d; got %d", shaders.MatrixUniformLocation, got)
	}
}
