package opengl

import (
	"fmt"
	"strings"

	"github.com/achilleasa/gloom/asset"
	"github.com/achilleasa/gloom/gpu"
	"github.com/go-gl/gl/v4.3-core/gl"
)

var glShaderTypes = map[gpu.ShaderStage]uint32{
	gpu.VertexStage:         gl.VERTEX_SHADER,
	gpu.FragmentStage:       gl.FRAGMENT_SHADER,
	gpu.GeometryStage:       gl.GEOMETRY_SHADER,
	gpu.TessControlStage:    gl.TESS_CONTROL_SHADER,
	gpu.TessEvaluationStage: gl.TESS_EVALUATION_SHADER,
	gpu.ComputeStage:        gl.COMPUTE_SHADER,
}

type shaderSource struct {
	stage gpu.ShaderStage
	name  string
	src   string
}

// ShaderBuilder collects shader sources and links them into a program.
// Errors encountered while attaching sources are reported by Link.
type ShaderBuilder struct {
	sources []shaderSource
	err     error
}

func NewShaderBuilder() *ShaderBuilder {
	return &ShaderBuilder{}
}

// AttachFile loads a shader from a local path or URL. The stage is detected
// from the file extension.
func (b *ShaderBuilder) AttachFile(path string) *ShaderBuilder {
	if b.err != nil {
		return b
	}

	stage, err := gpu.ShaderStageFromPath(path)
	if err != nil {
		b.err = err
		return b
	}

	res, err := asset.NewResource(path, nil)
	if err != nil {
		b.err = err
		return b
	}
	data, err := res.ReadAll()
	if err != nil {
		b.err = fmt.Errorf("shader: could not read %q: %w", path, err)
		return b
	}

	return b.AttachSource(stage, res.Path(), string(data))
}

// AttachSource adds a shader from an in-memory source.
func (b *ShaderBuilder) AttachSource(stage gpu.ShaderStage, name, src string) *ShaderBuilder {
	b.sources = append(b.sources, shaderSource{stage: stage, name: name, src: src})
	return b
}

// Link compiles all attached sources and links them into a program. The
// GL context must be current on the calling thread.
func (b *ShaderBuilder) Link() (gpu.Program, error) {
	if b.err != nil {
		return 0, b.err
	}
	if len(b.sources) == 0 {
		return 0, fmt.Errorf("shader: no sources attached")
	}

	shaders := make([]uint32, 0, len(b.sources))
	defer func() {
		for _, shader := range shaders {
			gl.DeleteShader(shader)
		}
	}()

	for _, s := range b.sources {
		shader, err := compileShader(s)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, shader)
	}

	program := gl.CreateProgram()
	for _, shader := range shaders {
		gl.AttachShader(program, shader)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader: link error: %s", strings.TrimRight(infoLog, "\x00"))
	}

	for _, shader := range shaders {
		gl.DetachShader(program, shader)
	}

	logger.Debugf("linked program %d from %d shader(s)", program, len(shaders))
	return gpu.Program(program), nil
}

func compileShader(s shaderSource) (uint32, error) {
	shader := gl.CreateShader(glShaderTypes[s.stage])
	csources, free := gl.Strs(s.src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader: %s shader %q compile error: %s", s.stage, s.name, strings.TrimRight(infoLog, "\x00"))
	}
	return shader, nil
}
