package main

import (
	"os"
	"runtime"

	"github.com/achilleasa/gloom/cmd"
	"github.com/achilleasa/gloom/renderer"
	"github.com/urfave/cli"
)

func init() {
	// glfw event processing must happen on the main thread.
	runtime.LockOSThread()
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	defaults := renderer.DefaultOptions()

	app := cli.NewApp()
	app.Name = "gloom"
	app.Usage = "render meshes in real time with a free-flying camera"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open an interactive window and render a scene",
			Description: `
Render a scene graph in a window. The scene is either a YAML scene description
(--scene), a list of wavefront obj files (--mesh) or, if neither is specified,
the built-in demo triangles.

Controls:
  W/S      move forward/backward
  A/D      strafe left/right
  Space    move up
  LShift   move down
  Q/E      yaw left/right
  R/F      pitch up/down
  Escape   exit`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: int(defaults.FrameW),
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: int(defaults.FrameH),
					Usage: "frame height",
				},
				cli.Float64Flag{
					Name:  "fov",
					Value: 90,
					Usage: "vertical field of view in degrees",
				},
				cli.Float64Flag{
					Name:  "move-speed",
					Value: float64(defaults.MoveSpeed),
					Usage: "camera movement speed in units per second",
				},
				cli.Float64Flag{
					Name:  "rotate-speed",
					Value: float64(defaults.RotateSpeed),
					Usage: "camera rotation speed in radians per second",
				},
				cli.BoolFlag{
					Name:  "mouse-look",
					Usage: "capture the cursor and steer the camera with the mouse",
				},
				cli.Float64Flag{
					Name:  "mouse-sensitivity",
					Value: float64(defaults.MouseSensitivity),
					Usage: "radians per pixel of mouse movement",
				},
				cli.BoolFlag{
					Name:  "compose-transforms",
					Usage: "multiply node transforms with the transforms of their ancestors",
				},
				cli.IntFlag{
					Name:  "matrix-uniform",
					Value: int(defaults.MatrixUniform),
					Usage: "uniform location of the view-projection matrix",
				},
				cli.BoolTFlag{
					Name:  "vsync",
					Usage: "synchronize buffer swaps with the display refresh rate",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 0,
					Usage: "exit after rendering this many frames; 0 renders until the window is closed",
				},
				cli.StringSliceFlag{
					Name:  "mesh, m",
					Value: &cli.StringSlice{},
					Usage: "wavefront obj file or URL to render",
				},
				cli.StringFlag{
					Name:  "attribute, a",
					Value: "normals",
					Usage: "per-vertex attribute to upload (normals or colors)",
				},
				cli.StringFlag{
					Name:  "scene, s",
					Usage: "YAML scene description",
				},
				cli.StringSliceFlag{
					Name:  "shader",
					Value: &cli.StringSlice{},
					Usage: "shader source file; the stage is detected from the extension",
				},
			},
			Action: cmd.RenderInteractive,
		},
		{
			Name:      "mesh-info",
			Usage:     "display information about wavefront obj files",
			ArgsUsage: "mesh_file1.obj mesh_file2.obj ...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "attribute, a",
					Value: "normals",
					Usage: "per-vertex attribute to generate (normals or colors)",
				},
			},
			Action: cmd.ShowMeshInfo,
		},
		{
			Name:      "scene-info",
			Usage:     "display the node tree of a scene description",
			ArgsUsage: "scene.yaml",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "gl-info",
			Usage: "display information about the available opengl context",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "extensions",
					Usage: "list supported extensions",
				},
			},
			Action: cmd.ShowGLInfo,
		},
	}

	app.Run(os.Args)
}
