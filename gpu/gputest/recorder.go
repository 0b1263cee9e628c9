// Package gputest provides a gpu.API implementation that records calls
// instead of talking to a graphics driver.
package gputest

import (
	"sync"

	"github.com/achilleasa/gloom/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Op names recorded by Recorder.
const (
	OpCreateVertexArray = "CreateVertexArray"
	OpBindVertexArray   = "BindVertexArray"
	OpCreateBuffer      = "CreateBuffer"
	OpUploadFloat32     = "UploadFloat32"
	OpUploadUint32      = "UploadUint32"
	OpEnableAttribute   = "EnableAttribute"
	OpUseProgram        = "UseProgram"
	OpSetUniformMatrix4 = "SetUniformMatrix4"
	OpDrawIndexed       = "DrawIndexedTriangles"
	OpClearColor        = "ClearColor"
	OpClear             = "Clear"
)

// Call captures the arguments of a single API invocation. Only the fields
// relevant to Op are populated.
type Call struct {
	Op       string
	VAO      gpu.VertexArray
	Buffer   gpu.Buffer
	Program  gpu.Program
	Target   gpu.BufferTarget
	Slot     uint32
	Width    int32
	Count    int32
	Location int32
	Matrix   mgl32.Mat4
	Color    [4]float32
	Floats   []float32
	Uints    []uint32
}

// Draw describes an issued draw call together with the state it used.
type Draw struct {
	VAO      gpu.VertexArray
	Count    int32
	Location int32
	Matrix   mgl32.Mat4
}

// Recorder implements gpu.API. It is safe for concurrent use.
type Recorder struct {
	mu sync.Mutex

	calls      []Call
	draws      []Draw
	nextVAO    gpu.VertexArray
	nextBuffer gpu.Buffer
	boundVAO   gpu.VertexArray
	lastLoc    int32
	lastMatrix mgl32.Mat4
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *Recorder) CreateVertexArray() gpu.VertexArray {
	r.mu.Lock()
	r.nextVAO++
	vao := r.nextVAO
	r.boundVAO = vao
	r.calls = append(r.calls, Call{Op: OpCreateVertexArray, VAO: vao})
	r.mu.Unlock()
	return vao
}

func (r *Recorder) BindVertexArray(vao gpu.VertexArray) {
	r.mu.Lock()
	r.boundVAO = vao
	r.calls = append(r.calls, Call{Op: OpBindVertexArray, VAO: vao})
	r.mu.Unlock()
}

func (r *Recorder) CreateBuffer(target gpu.BufferTarget) gpu.Buffer {
	r.mu.Lock()
	r.nextBuffer++
	buf := r.nextBuffer
	r.calls = append(r.calls, Call{Op: OpCreateBuffer, Buffer: buf, Target: target})
	r.mu.Unlock()
	return buf
}

func (r *Recorder) UploadFloat32(target gpu.BufferTarget, data []float32) {
	r.record(Call{Op: OpUploadFloat32, Target: target, Floats: append([]float32(nil), data...)})
}

func (r *Recorder) UploadUint32(target gpu.BufferTarget, data []uint32) {
	r.record(Call{Op: OpUploadUint32, Target: target, Uints: append([]uint32(nil), data...)})
}

func (r *Recorder) EnableAttribute(slot uint32, width int32) {
	r.record(Call{Op: OpEnableAttribute, Slot: slot, Width: width})
}

func (r *Recorder) UseProgram(program gpu.Program) {
	r.record(Call{Op: OpUseProgram, Program: program})
}

func (r *Recorder) SetUniformMatrix4(location int32, m mgl32.Mat4) {
	r.mu.Lock()
	r.lastLoc = location
	r.lastMatrix = m
	r.calls = append(r.calls, Call{Op: OpSetUniformMatrix4, Location: location, Matrix: m})
	r.mu.Unlock()
}

func (r *Recorder) DrawIndexedTriangles(count int32) {
	r.mu.Lock()
	r.draws = append(r.draws, Draw{VAO: r.boundVAO, Count: count, Location: r.lastLoc, Matrix: r.lastMatrix})
	r.calls = append(r.calls, Call{Op: OpDrawIndexed, VAO: r.boundVAO, Count: count})
	r.mu.Unlock()
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record(Call{Op: OpClearColor, Color: [4]float32{red, green, blue, alpha}})
}

func (r *Recorder) Clear() {
	r.record(Call{Op: OpClear})
}

// Calls returns a copy of all recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Ops returns the op names of all recorded calls in order.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Draws returns a copy of all recorded draw calls.
func (r *Recorder) Draws() []Draw {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Draw(nil), r.draws...)
}

// Reset forgets recorded calls but keeps handle counters and bound state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.draws = nil
	r.mu.Unlock()
}

var _ gpu.API = (*Recorder)(nil)
