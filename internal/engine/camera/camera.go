// Package camera provides the perspective camera and orbit controls for the room view.
package camera

import (
	gomath "math"

	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Perspective is a perspective camera looking at a target point.
type Perspective struct {
	FOV    float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	return &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.Vec3{Z: -1},
		Up:     math.Vec3{Y: 1},
	}
}

// SetAspect updates the aspect ratio from a viewport size.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the projection matrix for this camera.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	fovRad := c.FOV * float32(gomath.Pi) / 180
	return math.Perspective(fovRad, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// InverseViewProjection returns the matrix that unprojects normalized device coordinates.
func (c *Perspective) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}
