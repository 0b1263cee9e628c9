package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/achilleasa/gloom/gpu/opengl"
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli"
)

// Create a hidden window and list the capabilities of its OpenGL context.
func ShowGLInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(1, 1, "gloom", nil, nil)
	if err != nil {
		return fmt.Errorf("could not create opengl context: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %w", err)
	}
	info := opengl.DescribeContext()

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("\nOpenGL context:\n\n  Vendor   %s\n  Renderer %s\n  Version  %s\n  GLSL     %s\n\n", info.Vendor, info.Renderer, info.Version, info.GLSLVersion))
	buf.WriteString(fmt.Sprintf("Context exposes %d extension(s)", len(info.Extensions)))
	if ctx.Bool("extensions") {
		buf.WriteString(":\n\n  ")
		buf.WriteString(strings.Join(info.Extensions, "\n  "))
	}
	buf.WriteString("\n")

	logger.Notice(buf.String())
	return nil
}
