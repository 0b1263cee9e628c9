// Package shaders provides the default GLSL programs. All programs read
// positions from attribute slot 0, a per-vertex attribute from slot 1 and
// the view-projection matrix from uniform location 2.
package shaders

import (
	_ "embed"
	"fmt"

	"github.com/achilleasa/gloom/gpu"
)

// MatrixUniformLocation is the uniform location of the view-projection
// matrix in the default programs.
const MatrixUniformLocation = 2

var (
	//go:embed simple.vert
	simpleVert string

	//go:embed simple.frag
	simpleFrag string

	//go:embed normals.frag
	normalsFrag string
)

// Source is a single shader stage.
type Source struct {
	Stage gpu.ShaderStage
	Name  string
	Code  string
}

// Program returns the default shader sources for the named per-vertex
// attribute. Colors are passed through unchanged; normals are mapped to an
// opaque color.
func Program(attribute string) ([]Source, error) {
	vert := Source{Stage: gpu.VertexStage, Name: "simple.vert", Code: simpleVert}
	switch attribute {
	case "colors":
		return []Source{vert, {Stage: gpu.FragmentStage, Name: "simple.frag", Code: simpleFrag}}, nil
	case "normals":
		return []Source{vert, {Stage: gpu.FragmentStage, Name: "normals.frag", Code: normalsFrag}}, nil
	}
	return nil, fmt.Errorf("shaders: no default program for attribute %q", attribute)
}
