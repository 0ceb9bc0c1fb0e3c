package camera

import (
	"testing"

	"github.com/Faultbox/glint/pkg/math"
)

func TestViewMatrixInvertsPosition(t *testing.T) {
	c := NewOrthographic(800, 600)
	c.Position = math.Vec3{X: 100, Y: 50, Z: 0}

	// The world point under the camera origin maps back to local (0,0).
	v := c.ViewMatrix()
	local := v.MulVec4(math.Vec4{100, 50, 0, 1})
	if !near(local[0], 0) || !near(local[1], 0) {
		t.Errorf("expected camera position to map to origin, got %v", local)
	}
}

func TestOrthographicMapsViewportCorners(t *testing.T) {
	c := NewOrthographic(800, 600)
	vp := c.Uniform().ViewProjection()

	topLeft := vp.MulVec4(math.Vec4{0, 0, 0, 1})
	if !near(topLeft[0], -1) || !near(topLeft[1], 1) {
		t.Errorf("top-left corner: expected NDC (-1, 1), got (%f, %f)", topLeft[0], topLeft[1])
	}

	bottomRight := vp.MulVec4(math.Vec4{800, 600, 0, 1})
	if !near(bottomRight[0], 1) || !near(bottomRight[1], -1) {
		t.Errorf("bottom-right corner: expected NDC (1, -1), got (%f, %f)", bottomRight[0], bottomRight[1])
	}
}

func TestZoomHalvesVisibleArea(t *testing.T) {
	c := NewOrthographic(800, 600)
	c.Zoom = 2

	vp := c.Uniform().ViewProjection()
	// At zoom 2 the point (400, 300) is the bottom-right visible corner.
	corner := vp.MulVec4(math.Vec4{400, 300, 0, 1})
	if !near(corner[0], 1) || !near(corner[1], -1) {
		t.Errorf("zoom 2 corner: expected NDC (1, -1), got (%f, %f)", corner[0], corner[1])
	}
}

func TestResize(t *testing.T) {
	c := NewOrthographic(800, 600)
	c.Resize(1920, 1080)

	if c.Width != 1920 || c.Height != 1080 {
		t.Errorf("expected 1920x1080 after resize, got %fx%f", c.Width, c.Height)
	}

	vp := c.Uniform().ViewProjection()
	corner := vp.MulVec4(math.Vec4{1920, 1080, 0, 1})
	if !near(corner[0], 1) || !near(corner[1], -1) {
		t.Errorf("post-resize corner: expected NDC (1, -1), got (%f, %f)", corner[0], corner[1])
	}
}

func TestScreenProjection(t *testing.T) {
	p := ScreenProjection(640, 480)

	center := p.MulVec4(math.Vec4{320, 240, 0, 1})
	if !near(center[0], 0) || !near(center[1], 0) {
		t.Errorf("screen center: expected NDC (0, 0), got (%f, %f)", center[0], center[1])
	}
}

func near(got, want float32) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= 1e-4
}
