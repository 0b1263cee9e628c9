// Package gpu defines the graphics capability surface used by the renderer
// and the protocol for turning vertex data into drawable GPU resources.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// Opaque GPU object handles.
type (
	VertexArray uint32
	Buffer      uint32
	Program     uint32
)

// BufferTarget selects the binding point for buffer uploads.
type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "array"
	case ElementArrayBuffer:
		return "element"
	}
	return "unknown"
}

// API is the subset of the graphics API that the renderer depends on. All
// methods must be invoked from the thread that owns the rendering context.
type API interface {
	// Allocate and bind a vertex array object.
	CreateVertexArray() VertexArray
	BindVertexArray(vao VertexArray)

	// Allocate a buffer and bind it to target.
	CreateBuffer(target BufferTarget) Buffer

	// Upload data to the buffer currently bound to target.
	UploadFloat32(target BufferTarget, data []float32)
	UploadUint32(target BufferTarget, data []uint32)

	// Describe the layout of the currently bound array buffer as a tightly
	// packed float attribute with the given width and enable it at slot.
	EnableAttribute(slot uint32, width int32)

	UseProgram(program Program)
	SetUniformMatrix4(location int32, m mgl32.Mat4)

	// Issue an indexed triangle draw using the bound vertex array.
	DrawIndexedTriangles(count int32)

	ClearColor(r, g, b, a float32)
	Clear()
}
