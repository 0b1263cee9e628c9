package scene

import (
	"github.com/achilleasa/gloom/input"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraOffset is applied between the projection and the camera rotation.
// It pulls the eye back from the pivot and mirrors the z axis so that
// geometry authored with +z pointing into the screen faces the camera.
var CameraOffset = mgl32.Translate3D(0, 0, -1.2).Mul4(mgl32.Scale3D(1, 1, -1))

// Translation applied by each movement action, before scaling by speed and
// rotating into the camera basis. Position is the translation applied to
// the world, so moving the eye left shifts the world towards +x.
var actionTranslation = map[input.Action]mgl32.Vec3{
	input.ActionStrafeLeft:  {1, 0, 0},
	input.ActionStrafeRight: {-1, 0, 0},
	input.ActionUp:          {0, -1, 0},
	input.ActionDown:        {0, 1, 0},
	input.ActionForward:     {0, 0, -1},
	input.ActionBackward:    {0, 0, 1},
}

// Camera is a free-flying camera. It is owned by the render thread.
type Camera struct {
	Position mgl32.Vec3

	// Rotation angles in radians about the y and x axes.
	Yaw   float32
	Pitch float32

	// Units per second and radians per second.
	MoveSpeed   float32
	RotateSpeed float32
}

// Create a camera at the origin.
func NewCamera(moveSpeed, rotateSpeed float32) *Camera {
	return &Camera{
		MoveSpeed:   moveSpeed,
		RotateSpeed: rotateSpeed,
	}
}

// Rotation that maps camera-local directions to world directions.
func (c *Camera) basis() mgl32.Mat3 {
	return mgl32.Rotate3DY(-c.Yaw).Mul3(mgl32.Rotate3DX(-c.Pitch))
}

// Apply advances the camera by dt seconds for every active action.
//
// Translations are rotated by the orientation the camera had at the start
// of the call and rotations are accumulated into the yaw and pitch scalars,
// so the resulting pose does not depend on the order of actions.
// Actions that do not affect the camera are ignored.
func (c *Camera) Apply(actions []input.Action, dt float32) {
	basis := c.basis()

	var move mgl32.Vec3
	var yaw, pitch float32
	for _, action := range actions {
		if dir, ok := actionTranslation[action]; ok {
			move = move.Add(dir)
			continue
		}

		switch action {
		case input.ActionYawLeft:
			yaw--
		case input.ActionYawRight:
			yaw++
		case input.ActionPitchUp:
			pitch++
		case input.ActionPitchDown:
			pitch--
		}
	}

	if move != (mgl32.Vec3{}) {
		c.Position = c.Position.Add(basis.Mul3x1(move.Mul(c.MoveSpeed * dt)))
	}
	c.Yaw += yaw * c.RotateSpeed * dt
	c.Pitch += pitch * c.RotateSpeed * dt
}

// Look rotates the camera by a mouse movement in pixels.
func (c *Camera) Look(dx, dy, sensitivity float32) {
	c.Yaw += dx * sensitivity
	c.Pitch += dy * sensitivity
}

// ViewProjection composes the matrix used to transform world geometry:
// proj × CameraOffset × Rx(pitch) × Ry(yaw) × T(position).
func (c *Camera) ViewProjection(proj mgl32.Mat4) mgl32.Mat4 {
	return proj.
		Mul4(CameraOffset).
		Mul4(mgl32.HomogRotate3DX(c.Pitch)).
		Mul4(mgl32.HomogRotate3DY(c.Yaw)).
		Mul4(mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]))
}
