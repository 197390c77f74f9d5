// camera.go
package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraMovement int

const (
	Forward CameraMovement = iota
	Backward
	Left
	Right
)

const (
	DefaultSpeed       float32 = 6.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0
	DefaultYaw         float32 = -90.0
	PitchLimit         float32 = 89.0
)

type Camera struct {
	// HOT DATA - read every frame by the renderer and input
	Position mgl32.Vec3 // Camera position in world space
	Front    mgl32.Vec3 // Forward direction vector
	Up       mgl32.Vec3 // Up direction vector
	Right    mgl32.Vec3 // Right direction vector
	Pitch    float32    // Degrees, clamped to +-PitchLimit when constrained
	Yaw      float32    // Degrees

	// COLD DATA - configuration
	WorldUp     mgl32.Vec3
	Speed       float32
	Sensitivity float32
	Zoom        float32 // Field of view in degrees
	Near        float32
	Far         float32
	AspectRatio float32
	Projection  mgl32.Mat4
}

// NewCamera builds a camera at position looking along yaw/pitch.
func NewCamera(position mgl32.Vec3, yaw, pitch float32, width, height int32) *Camera {
	camera := Camera{
		Position:    position,
		Front:       mgl32.Vec3{0, 0, -1},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         yaw,
		Pitch:       pitch,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Zoom:        DefaultZoom,
		Near:        0.1,
		Far:         100.0,
		AspectRatio: float32(width) / float32(height),
	}
	camera.updateCameraVectors()
	camera.UpdateProjection()
	return &camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Zoom), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.WorldUp)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.Position = position
}

// ProcessKeyboard moves the camera. Forward and backward stay on the
// horizontal plane even when the camera is pitched.
func (c *Camera) ProcessKeyboard(direction CameraMovement, deltaTime float32) {
	velocity := c.Speed * deltaTime
	switch direction {
	case Forward:
		y := c.Position.Y()
		c.Position = c.Position.Add(c.Front.Mul(velocity))
		c.Position[1] = y
	case Backward:
		y := c.Position.Y()
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
		c.Position[1] = y
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	c.Yaw += xoffset * c.Sensitivity
	c.Pitch += yoffset * c.Sensitivity

	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -PitchLimit, PitchLimit)
	}

	c.updateCameraVectors()
}

// SetOrientation replaces yaw and pitch and re-derives the basis.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = mgl32.Clamp(pitch, -PitchLimit, PitchLimit)
	c.updateCameraVectors()
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		math32.Cos(yawRad) * math32.Cos(pitchRad),
		math32.Sin(pitchRad),
		math32.Sin(yawRad) * math32.Cos(pitchRad),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
