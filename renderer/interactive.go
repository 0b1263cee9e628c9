package renderer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/achilleasa/gloom/gpu"
	"github.com/achilleasa/gloom/input"
	"github.com/achilleasa/gloom/log"
	"github.com/achilleasa/gloom/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene bundles what the render loop draws.
type Scene struct {
	Graph   *scene.Graph
	Root    scene.NodeID
	Program gpu.Program
}

// Input is the state shared with the event thread.
type Input struct {
	Keys     *input.KeySet
	Mouse    *input.MouseDelta
	Bindings input.Bindings
}

// A renderer that draws a scene graph from the point of view of a camera
// steered by the shared input state.
type interactiveRenderer struct {
	logger log.Logger

	api       gpu.API
	presenter Presenter
	scene     Scene
	input     Input
	options   Options

	camera *scene.Camera
	proj   mgl32.Mat4

	// Monotonic clock; replaced by tests.
	now func() time.Time

	closed atomic.Bool

	// Guards stats which are read by other threads.
	mu    sync.Mutex
	stats FrameStats
}

// Create a renderer for the given scene. It must be created and run on the
// thread that owns the rendering context.
func NewInteractive(api gpu.API, presenter Presenter, sc Scene, in Input, opts Options) (Renderer, error) {
	if sc.Graph == nil || sc.Graph.Len() == 0 {
		return nil, ErrSceneNotDefined
	}
	if in.Keys == nil || in.Mouse == nil {
		return nil, ErrInputNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrameSize
	}
	if in.Bindings == nil {
		in.Bindings = input.DefaultBindings()
	}

	return &interactiveRenderer{
		logger:    log.New("renderer"),
		api:       api,
		presenter: presenter,
		scene:     sc,
		input:     in,
		options:   opts,
		camera:    scene.NewCamera(opts.MoveSpeed, opts.RotateSpeed),
		proj:      opts.Projection(),
		now:       time.Now,
	}, nil
}

func (r *interactiveRenderer) Render() error {
	r.api.UseProgram(r.scene.Program)
	r.api.ClearColor(r.options.ClearColor[0], r.options.ClearColor[1], r.options.ClearColor[2], r.options.ClearColor[3])

	r.logger.Noticef("entering render loop (%d nodes)", r.scene.Graph.Len())

	firstFrameTime := r.now()
	lastFrameTime := firstFrameTime
	for frame := uint64(0); r.options.MaxFrames == 0 || frame < r.options.MaxFrames; frame++ {
		if r.closed.Load() {
			break
		}

		now := r.now()
		dt := now.Sub(lastFrameTime)
		lastFrameTime = now

		drawCalls := r.renderFrame(float32(dt.Seconds()))
		r.presenter.SwapBuffers()

		end := r.now()
		r.updateStats(drawCalls, end.Sub(now), end.Sub(firstFrameTime))
	}

	r.logger.Notice("render loop stopped")
	return nil
}

// Advance the camera by dt seconds and draw the scene. Returns the number
// of issued draw calls.
func (r *interactiveRenderer) renderFrame(dt float32) int {
	r.camera.Apply(r.input.Bindings.Actions(r.input.Keys.Snapshot()), dt)

	dx, dy := r.input.Mouse.Take()
	if r.options.MouseLook {
		r.camera.Look(dx, dy, r.options.MouseSensitivity)
	}

	r.api.Clear()

	viewProj := r.camera.ViewProjection(r.proj)
	return r.scene.Graph.Draw(r.api, r.scene.Root, viewProj, r.options.MatrixUniform)
}

func (r *interactiveRenderer) updateStats(drawCalls int, frameTime, uptime time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Frames++
	r.stats.DrawCalls = drawCalls
	r.stats.LastFrameTime = frameTime
	r.stats.AvgFrameTime += (frameTime - r.stats.AvgFrameTime) / time.Duration(r.stats.Frames)
	r.stats.Uptime = uptime
	r.stats.CameraPosition = r.camera.Position
	r.stats.CameraYaw = r.camera.Yaw
	r.stats.CameraPitch = r.camera.Pitch
}

func (r *interactiveRenderer) Close() {
	r.closed.Store(true)
}

func (r *interactiveRenderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
