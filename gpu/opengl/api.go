// Package opengl implements gpu.API on top of an OpenGL 4.3 core context.
package opengl

import (
	"github.com/achilleasa/gloom/gpu"
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const sizeofFloat32, sizeofUint32 = 4, 4

// API forwards gpu.API calls to the OpenGL context that is current on the
// calling thread.
type API struct{}

// Create a new API. Setup must have been called on this thread first.
func NewAPI() *API {
	return &API{}
}

func glTarget(target gpu.BufferTarget) uint32 {
	if target == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (*API) CreateVertexArray() gpu.VertexArray {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	return gpu.VertexArray(vao)
}

func (*API) BindVertexArray(vao gpu.VertexArray) {
	gl.BindVertexArray(uint32(vao))
}

func (*API) CreateBuffer(target gpu.BufferTarget) gpu.Buffer {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(glTarget(target), buf)
	return gpu.Buffer(buf)
}

func (*API) UploadFloat32(target gpu.BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTarget(target), len(data)*sizeofFloat32, gl.Ptr(data), gl.STATIC_DRAW)
}

func (*API) UploadUint32(target gpu.BufferTarget, data []uint32) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTarget(target), len(data)*sizeofUint32, gl.Ptr(data), gl.STATIC_DRAW)
}

func (*API) EnableAttribute(slot uint32, width int32) {
	gl.VertexAttribPointer(slot, width, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(slot)
}

func (*API) UseProgram(program gpu.Program) {
	gl.UseProgram(uint32(program))
}

func (*API) SetUniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*API) DrawIndexedTriangles(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (*API) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*API) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

var _ gpu.API = (*API)(nil)
