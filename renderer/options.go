package renderer

import (
	"math"

	"github.com/achilleasa/gloom/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Vertical field of view in radians and clip plane distances.
	FOV       float32
	NearPlane float32
	FarPlane  float32

	ClearColor [4]float32

	// Camera speeds in units and radians per second.
	MoveSpeed   float32
	RotateSpeed float32

	// Apply mouse motion to the camera yaw/pitch. The accumulated motion is
	// consumed every frame either way.
	MouseLook        bool
	MouseSensitivity float32

	// Uniform location of the view-projection matrix in the bound program.
	MatrixUniform int32

	// Stop after this many frames; 0 renders until the process exits.
	MaxFrames uint64
}

// DefaultOptions returns the settings of an 800x600 window with a 90 degree
// field of view.
func DefaultOptions() Options {
	return Options{
		FrameW:           800,
		FrameH:           600,
		FOV:              math.Pi / 2,
		NearPlane:        1,
		FarPlane:         100,
		ClearColor:       [4]float32{0.163, 0.163, 0.163, 1},
		MoveSpeed:        1,
		RotateSpeed:      1,
		MouseSensitivity: 0.005,
		MatrixUniform:    shaders.MatrixUniformLocation,
	}
}

// Projection returns the perspective projection for these options.
func (o Options) Projection() mgl32.Mat4 {
	return mgl32.Perspective(o.FOV, float32(o.FrameW)/float32(o.FrameH), o.NearPlane, o.FarPlane)
}
