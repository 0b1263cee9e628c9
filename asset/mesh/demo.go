package mesh

import (
	"github.com/achilleasa/gloom/gpu"
	"github.com/achilleasa/gloom/types"
)

// DemoTriangles returns three overlapping, half transparent triangles at
// different depths. It is the scene rendered when no model is supplied.
func DemoTriangles() []Part {
	set := gpu.VertexBufferSet{
		Positions: []float32{
			-0.6, 0.7, 0.4,
			0.0, -0.5, 0.4,
			0.6, 0.7, 0.4,

			-0.6, -0.45, 0.2,
			0.1, -0.9, 0.2,
			0.0, 0.2, 0.2,

			-0.1, -0.9, 0.0,
			0.6, -0.45, 0.0,
			0.0, 0.2, 0.0,
		},
		Attributes: []float32{
			1, 0, 0, 0.5,
			1, 0, 0, 0.5,
			1, 0, 0, 0.5,

			0, 1, 0, 0.5,
			0, 1, 0, 0.5,
			0, 1, 0, 0.5,

			0, 0, 1, 0.5,
			0, 0, 1, 0.5,
			0, 0, 1, 0.5,
		},
		AttributeWidth: Colors.Width(),
		Indices:        []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8},
	}

	bbox := types.EmptyBBox()
	for i := 0; i < len(set.Positions); i += 3 {
		bbox = bbox.Extend(types.XYZ(set.Positions[i], set.Positions[i+1], set.Positions[i+2]))
	}

	return []Part{{Name: "demo", Set: set, BBox: bbox}}
}
