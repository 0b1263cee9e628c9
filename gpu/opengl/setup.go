package opengl

import (
	"fmt"
	"unsafe"

	"github.com/achilleasa/gloom/log"
	"github.com/go-gl/gl/v4.3-core/gl"
)

var (
	logger   = log.New("opengl")
	glLogger = log.New("gl")
)

// Setup loads the GL function pointers for the context that is current on
// the calling thread and configures the fixed pipeline state.
func Setup() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: could not init opengl: %w", err)
	}

	info := DescribeContext()
	logger.Noticef("vendor: %s, renderer: %s", info.Vendor, info.Renderer)
	logger.Noticef("version: %s, glsl version: %s", info.Version, info.GLSLVersion)
	logger.Debugf("%d extension(s) available", len(info.Extensions))

	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(onDebugMessage, nil)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return nil
}

// Viewport sets the drawable area of the default framebuffer.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func onDebugMessage(source, gltype, id, severity uint32, _ int32, message string, _ unsafe.Pointer) {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		glLogger.Errorf("[%s] %s (id: %d, source: %s)", debugTypeName(gltype), message, id, debugSourceName(source))
	case gl.DEBUG_SEVERITY_MEDIUM:
		glLogger.Warningf("[%s] %s (id: %d, source: %s)", debugTypeName(gltype), message, id, debugSourceName(source))
	case gl.DEBUG_SEVERITY_LOW:
		glLogger.Infof("[%s] %s (id: %d, source: %s)", debugTypeName(gltype), message, id, debugSourceName(source))
	default:
		glLogger.Debugf("[%s] %s (id: %d, source: %s)", debugTypeName(gltype), message, id, debugSourceName(source))
	}
}

func debugSourceName(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "api"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "window system"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "shader compiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "third party"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "application"
	}
	return "other"
}

func debugTypeName(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecated"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefined"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "portability"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "performance"
	case gl.DEBUG_TYPE_MARKER:
		return "marker"
	}
	return "other"
}

// ContextInfo describes the current GL context.
type ContextInfo struct {
	Vendor      string
	Renderer    string
	Version     string
	GLSLVersion string
	Extensions  []string
}

// DescribeContext queries the context that is current on the calling
// thread. gl.Init must have been called.
func DescribeContext() ContextInfo {
	info := ContextInfo{
		Vendor:      gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}

	var count int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &count)
	for index := int32(0); index < count; index++ {
		info.Extensions = append(info.Extensions, gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(index))))
	}
	return info
}
