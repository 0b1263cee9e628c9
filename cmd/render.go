package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/achilleasa/gloom/asset/mesh"
	"github.com/achilleasa/gloom/asset/scene"
	"github.com/achilleasa/gloom/gpu"
	"github.com/achilleasa/gloom/gpu/opengl"
	"github.com/achilleasa/gloom/input"
	"github.com/achilleasa/gloom/renderer"
	scenegraph "github.com/achilleasa/gloom/scene"
	"github.com/achilleasa/gloom/shaders"
	"github.com/achilleasa/gloom/supervisor"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// How long to wait for the render thread to stop before tearing down the
// window.
const shutdownTimeout = time.Second

// Render the scene in an interactive window. Must be invoked from the main
// thread.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.FOV = mgl32.DegToRad(float32(ctx.Float64("fov")))
	opts.MoveSpeed = float32(ctx.Float64("move-speed"))
	opts.RotateSpeed = float32(ctx.Float64("rotate-speed"))
	opts.MouseLook = ctx.Bool("mouse-look")
	opts.MouseSensitivity = float32(ctx.Float64("mouse-sensitivity"))
	opts.MatrixUniform = int32(ctx.Int("matrix-uniform"))
	opts.MaxFrames = uint64(ctx.Int("frames"))

	if opts.FrameW == 0 || opts.FrameH == 0 {
		return renderer.ErrInvalidFrameSize
	}
	if opts.FOV <= 0 || opts.FOV >= math.Pi {
		return fmt.Errorf("field of view must be in the (0, 180) degree range")
	}

	attr, err := mesh.ParseAttributeKind(ctx.String("attribute"))
	if err != nil {
		return err
	}
	src := sceneSource{
		scenePath:         ctx.String("scene"),
		meshPaths:         ctx.StringSlice("mesh"),
		attr:              attr,
		composeTransforms: ctx.Bool("compose-transforms"),
	}
	if src.scenePath != "" && len(src.meshPaths) != 0 {
		return errors.New("the --scene and --mesh flags are mutually exclusive")
	}
	shaderPaths := ctx.StringSlice("shader")
	vsync := ctx.BoolT("vsync")

	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	window, err := glfw.CreateWindow(int(opts.FrameW), int(opts.FrameH), "gloom", nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("could not create opengl window: %w", err)
	}

	// The render thread claims the context.
	glfw.DetachCurrentContext()
	fbW, fbH := window.GetFramebufferSize()

	keys := input.NewKeySet()
	mouse := input.NewMouseDelta()
	bindings := input.DefaultBindings()
	health := supervisor.NewHealth()
	handler := input.NewEventHandler(keys, mouse, bindings, health)

	exit := false
	update := func(ctrl input.Control) {
		if ctrl == input.ControlExit {
			exit = true
		}
	}

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			update(handler.HandleKey(translateKey(key), true))
		case glfw.Release:
			update(handler.HandleKey(translateKey(key), false))
		}
	})
	var cursor cursorTracker
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		update(handler.HandleMouseMotion(cursor.delta(x, y)))
	})
	window.SetCloseCallback(func(_ *glfw.Window) {
		update(handler.HandleClose())
	})
	if opts.MouseLook {
		window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			window.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	}

	active := make(chan renderer.Renderer, 1)
	sup := supervisor.New(health)
	err = sup.Start(func() error {
		window.MakeContextCurrent()
		if vsync {
			glfw.SwapInterval(1)
		} else {
			glfw.SwapInterval(0)
		}

		if err := opengl.Setup(); err != nil {
			return err
		}
		opengl.Viewport(fbW, fbH)

		api := opengl.NewAPI()
		sc, err := src.load(api)
		if err != nil {
			return err
		}
		if sc.Program, err = linkProgram(shaderPaths, sc.attr); err != nil {
			return err
		}

		r, err := renderer.NewInteractive(api, window, sc.Scene, renderer.Input{Keys: keys, Mouse: mouse, Bindings: bindings}, opts)
		if err != nil {
			return err
		}
		active <- r
		return r.Render()
	})
	if err != nil {
		return err
	}

	// Wake up the event pump once the render thread is gone.
	woken := make(chan struct{})
	go func() {
		<-sup.Done()
		glfw.PostEmptyEvent()
		close(woken)
	}()

	for !exit {
		glfw.WaitEvents()

		select {
		case <-sup.Done():
			exit = true
		default:
		}
	}

	var r renderer.Renderer
	select {
	case r = <-active:
		r.Close()
	default:
	}

	select {
	case <-woken:
		window.Destroy()
		glfw.Terminate()
	case <-time.After(shutdownTimeout):
		logger.Warning("render thread did not stop in time; skipping window teardown")
	}

	if r != nil {
		displayFrameStats(r.Stats())
	}
	return sup.Err()
}

// Where the render thread gets its geometry from. An empty source renders
// the built-in demo triangles.
type sceneSource struct {
	scenePath         string
	meshPaths         []string
	attr              mesh.AttributeKind
	composeTransforms bool
}

type loadedScene struct {
	renderer.Scene
	attr mesh.AttributeKind
}

func (s sceneSource) load(api gpu.API) (loadedScene, error) {
	graph := scenegraph.NewGraph()
	upload := func(set gpu.VertexBufferSet) (gpu.Mesh, error) {
		if err := set.Validate(); err != nil {
			return gpu.Mesh{}, err
		}
		return gpu.BuildMesh(api, set), nil
	}

	if s.scenePath != "" {
		desc, err := scene.ReadFile(s.scenePath)
		if err != nil {
			return loadedScene{}, err
		}
		root, err := desc.Build(graph, upload)
		if err != nil {
			return loadedScene{}, err
		}
		return loadedScene{
			Scene: renderer.Scene{Graph: graph, Root: root},
			attr:  desc.AttributeKind(),
		}, nil
	}

	graph.ComposeTransforms = s.composeTransforms
	root := graph.NewGroup("root")
	attr := s.attr

	var models [][]mesh.Part
	var names []string
	if len(s.meshPaths) == 0 {
		logger.Notice("no meshes specified; rendering demo geometry")
		attr = mesh.Colors
		models = append(models, mesh.DemoTriangles())
		names = append(names, "demo")
	}
	for _, path := range s.meshPaths {
		parts, err := mesh.Load(path, attr)
		if err != nil {
			return loadedScene{}, err
		}
		models = append(models, parts)
		names = append(names, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}

	for index, parts := range models {
		model := graph.NewGroup(names[index])
		graph.AddChild(root, model)
		for _, part := range parts {
			gm, err := upload(part.Set)
			if err != nil {
				return loadedScene{}, fmt.Errorf("could not upload %s/%s: %w", names[index], part.Name, err)
			}
			graph.AddChild(model, graph.NewDrawable(part.Name, gm))
		}
	}

	return loadedScene{
		Scene: renderer.Scene{Graph: graph, Root: root},
		attr:  attr,
	}, nil
}

// Link the user supplied shaders or the default program for attr.
func linkProgram(paths []string, attr mesh.AttributeKind) (gpu.Program, error) {
	builder := opengl.NewShaderBuilder()
	if len(paths) != 0 {
		for _, path := range paths {
			builder.AttachFile(path)
		}
		return builder.Link()
	}

	sources, err := shaders.Program(attr.String())
	if err != nil {
		return 0, err
	}
	for _, src := range sources {
		builder.AttachSource(src.Stage, src.Name, src.Code)
	}
	return builder.Link()
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frames", "Draw calls", "Last frame", "Avg frame", "FPS", "Camera position", "Yaw", "Pitch"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Frames),
		fmt.Sprintf("%d", stats.DrawCalls),
		stats.LastFrameTime.String(),
		stats.AvgFrameTime.String(),
		fmt.Sprintf("%3.1f", stats.FPS()),
		fmt.Sprintf("%.2f, %.2f, %.2f", stats.CameraPosition[0], stats.CameraPosition[1], stats.CameraPosition[2]),
		fmt.Sprintf("%.2f", stats.CameraYaw),
		fmt.Sprintf("%.2f", stats.CameraPitch),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "UPTIME", stats.Uptime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
