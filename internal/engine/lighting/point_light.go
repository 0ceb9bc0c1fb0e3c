// Package lighting provides point lights for the deferred lighting pass.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/glint/pkg/math"
)

// MinRadius is the smallest radius a light may carry. The attenuation
// term divides by radius, so a zero or negative radius is clamped up to
// this instead of producing NaN or Inf.
const MinRadius = 0.001

// DefaultCutoff is the contribution level below which a light is treated
// as invisible when culling, roughly one 8-bit color step.
const DefaultCutoff = 1.0 / 256.0

// PointLight is one point light source. Each active light costs one
// full-screen draw in the lighting pass, all reading the same G-buffer.
type PointLight struct {
	Position math.Vec3
	Radius   float32
	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32
}

// Sanitized returns a copy safe for upload: radius clamped to MinRadius
// and color components clamped to the [0,1] range.
func (l PointLight) Sanitized() PointLight {
	if l.Radius < MinRadius {
		l.Radius = MinRadius
	}
	clampColor(&l.Ambient)
	clampColor(&l.Diffuse)
	clampColor(&l.Specular)
	return l
}

func clampColor(c *[3]float32) {
	for i := 0; i < 3; i++ {
		if c[i] > 1 {
			c[i] = 1
		}
		if c[i] < 0 {
			c[i] = 0
		}
	}
}

// Attenuation is the falloff the lighting shader applies:
//
//	1 / (1 + 25*(d/radius)^2)
//
// It is 1 at the light's position and 1/26 at distance == radius.
// A radius below MinRadius is clamped, matching Sanitized.
func Attenuation(distance, radius float32) float32 {
	if radius < MinRadius {
		radius = MinRadius
	}
	n := distance / radius
	return 1.0 / (1.0 + 25.0*n*n)
}

// InfluenceRadius returns the distance at which the light's attenuation
// falls to cutoff. Beyond it the light cannot produce a visible change,
// which is what the culling test uses.
func InfluenceRadius(radius, cutoff float32) float32 {
	if radius < MinRadius {
		radius = MinRadius
	}
	if cutoff <= 0 || cutoff >= 1 {
		cutoff = DefaultCutoff
	}
	return radius * math32.Sqrt((1.0/cutoff-1.0)/25.0)
}

// Visible filters lights whose influence circle cannot intersect the
// view volume under viewProj. The test is conservative: a light is only
// dropped when its whole influence radius projects outside clip space.
func Visible(lights []PointLight, viewProj math.Mat4, cutoff float32) []PointLight {
	out := make([]PointLight, 0, len(lights))
	for _, l := range lights {
		if inView(l, viewProj, cutoff) {
			out = append(out, l)
		}
	}
	return out
}

func inView(l PointLight, vp math.Mat4, cutoff float32) bool {
	r := InfluenceRadius(l.Radius, cutoff)
	c := vp.MulVec4(math.Vec4{l.Position.X, l.Position.Y, l.Position.Z, 1})
	w := c[3]
	if w <= 0 {
		// Degenerate or behind the projection; keep the light.
		return true
	}

	// Upper bound on how far one world unit can move clip X/Y: the
	// length of the matrix row feeding that clip component.
	sx := math32.Sqrt(vp[0]*vp[0] + vp[4]*vp[4] + vp[8]*vp[8])
	sy := math32.Sqrt(vp[1]*vp[1] + vp[5]*vp[5] + vp[9]*vp[9])

	x := c[0] / w
	y := c[1] / w
	rx := r * sx / w
	ry := r * sy / w

	return x+rx >= -1 && x-rx <= 1 && y+ry >= -1 && y-ry <= 1
}
