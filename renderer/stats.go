package renderer

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type FrameStats struct {
	// Number of presented frames.
	Frames uint64

	// Draw calls issued by the last frame.
	DrawCalls int

	// Render time of the last frame and the running average.
	LastFrameTime time.Duration
	AvgFrameTime  time.Duration

	// Time since the first frame started.
	Uptime time.Duration

	// Camera pose after the last frame.
	CameraPosition mgl32.Vec3
	CameraYaw      float32
	CameraPitch    float32
}

// Average frames per second over the whole run.
func (s FrameStats) FPS() float64 {
	if s.Uptime <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Uptime.Seconds()
}
