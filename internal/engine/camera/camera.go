// Package camera provides the per-frame camera uniform for the pipeline.
package camera

import (
	"github.com/Faultbox/glint/pkg/math"
)

// Uniform is the global camera data bound once per frame, before the
// geometry pass runs. It is not mutated mid-frame.
type Uniform struct {
	Projection math.Mat4
	View       math.Mat4
}

// ViewProjection returns projection*view, the matrix world-space quads
// and meshes are transformed by.
func (u Uniform) ViewProjection() math.Mat4 {
	return u.Projection.Mul(u.View)
}

// Orthographic is a 2D world camera with a top-left origin and Y down.
// The view matrix is the inverse of the camera's world transform, so
// moving the camera right moves the world left.
type Orthographic struct {
	// Position is the world coordinate at the top-left of the view.
	Position math.Vec3

	// Viewport extent in pixels.
	Width  float32
	Height float32

	// Zoom scales world units per pixel; 2 shows half the world area.
	Zoom float32

	Near float32
	Far  float32
}

// NewOrthographic creates a camera covering width x height world units
// at zoom 1, with a generous depth range for layered quads and meshes.
func NewOrthographic(width, height float32) *Orthographic {
	return &Orthographic{
		Width:  width,
		Height: height,
		Zoom:   1,
		Near:   -500,
		Far:    500,
	}
}

// ProjectionMatrix returns the orthographic projection for the current
// viewport and zoom.
func (c *Orthographic) ProjectionMatrix() math.Mat4 {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return math.Ortho(0, c.Width/zoom, c.Height/zoom, 0, c.Near, c.Far)
}

// ViewMatrix returns the inverse of the camera's world transform.
func (c *Orthographic) ViewMatrix() math.Mat4 {
	transform := math.Translate(c.Position.X, c.Position.Y, c.Position.Z)
	return transform.Inverse()
}

// Uniform builds the per-frame camera uniform.
func (c *Orthographic) Uniform() Uniform {
	return Uniform{
		Projection: c.ProjectionMatrix(),
		View:       c.ViewMatrix(),
	}
}

// Resize updates the viewport extent, keeping position and zoom.
func (c *Orthographic) Resize(width, height float32) {
	c.Width = width
	c.Height = height
}

// ScreenProjection returns the projection used for screen-space (UI)
// quads: pixel coordinates, origin top-left. UI quads skip the view
// matrix entirely, so this is the only matrix that applies to them.
func ScreenProjection(width, height float32) math.Mat4 {
	return math.Ortho(0, width, height, 0, -1, 1)
}
