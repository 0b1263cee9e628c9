package gpu

import "fmt"

// Attribute slots agreed with the shaders.
const (
	PositionSlot  uint32 = 0
	AttributeSlot uint32 = 1
)

// Number of float components per position.
const PositionWidth = 3

// VertexBufferSet holds the raw arrays describing one renderable mesh.
//
// Positions and Attributes are parallel: vertex i uses
// Positions[3i:3i+3] and Attributes[w*i:w*i+w] with w = AttributeWidth.
// Attributes hold either normals (width 3) or RGBA colors (width 4).
// Indices list triangles so its length is a multiple of 3.
type VertexBufferSet struct {
	Positions      []float32
	Attributes     []float32
	AttributeWidth int
	Indices        []uint32
}

// Return the number of vertices described by the position array.
func (s VertexBufferSet) VertexCount() int {
	return len(s.Positions) / PositionWidth
}

// Return the number of triangles described by the index array.
func (s VertexBufferSet) TriangleCount() int {
	return len(s.Indices) / 3
}

// Validate checks the layout rules that BuildMesh expects its callers to
// uphold.
func (s VertexBufferSet) Validate() error {
	if len(s.Positions)%PositionWidth != 0 {
		return fmt.Errorf("%w: %d position components is not a multiple of %d", ErrInvalidBufferSet, len(s.Positions), PositionWidth)
	}
	if s.AttributeWidth != 3 && s.AttributeWidth != 4 {
		return fmt.Errorf("%w: unsupported attribute width %d", ErrInvalidBufferSet, s.AttributeWidth)
	}

	vertexCount := s.VertexCount()
	if len(s.Attributes) != vertexCount*s.AttributeWidth {
		return fmt.Errorf("%w: expected %d attribute components for %d vertices; got %d", ErrInvalidBufferSet, vertexCount*s.AttributeWidth, vertexCount, len(s.Attributes))
	}
	if len(s.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidBufferSet, len(s.Indices))
	}
	for pos, index := range s.Indices {
		if int(index) >= vertexCount {
			return fmt.Errorf("%w: index %d at position %d out of range for %d vertices", ErrInvalidBufferSet, index, pos, vertexCount)
		}
	}

	return nil
}

// Mesh is a buffer set that has been uploaded to the GPU. Meshes are owned
// by the GPU layer for the lifetime of the process.
type Mesh struct {
	VAO   VertexArray
	Count int32
}

// BuildMesh uploads set to the GPU and returns a handle that can be drawn.
//
// Positions are bound to PositionSlot, attributes to AttributeSlot and the
// index buffer is bound as the element source of the vertex array. set must
// satisfy Validate; no checks are performed here.
func BuildMesh(api API, set VertexBufferSet) Mesh {
	vao := api.CreateVertexArray()

	api.CreateBuffer(ArrayBuffer)
	api.UploadFloat32(ArrayBuffer, set.Positions)
	api.EnableAttribute(PositionSlot, PositionWidth)

	api.CreateBuffer(ArrayBuffer)
	api.UploadFloat32(ArrayBuffer, set.Attributes)
	api.EnableAttribute(AttributeSlot, int32(set.AttributeWidth))

	api.CreateBuffer(ElementArrayBuffer)
	api.UploadUint32(ElementArrayBuffer, set.Indices)

	return Mesh{
		VAO:   vao,
		Count: int32(len(set.Indices)),
	}
}
