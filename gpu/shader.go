package gpu

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

const (
	VertexStage ShaderStage = iota
	FragmentStage
	GeometryStage
	TessControlStage
	TessEvaluationStage
	ComputeStage
)

var stageExtensions = map[string]ShaderStage{
	".vert": VertexStage,
	".frag": FragmentStage,
	".geom": GeometryStage,
	".tesc": TessControlStage,
	".tese": TessEvaluationStage,
	".comp": ComputeStage,
}

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	case GeometryStage:
		return "geometry"
	case TessControlStage:
		return "tessellation control"
	case TessEvaluationStage:
		return "tessellation evaluation"
	case ComputeStage:
		return "compute"
	}
	return "unknown"
}

// Detect the shader stage from the extension of a shader source path.
func ShaderStageFromPath(path string) (ShaderStage, error) {
	ext := strings.ToLower(filepath.Ext(path))
	stage, ok := stageExtensions[ext]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownShaderStage, path)
	}
	return stage, nil
}
