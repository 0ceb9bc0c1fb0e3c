package pipeline

import "github.com/Faultbox/glint/pkg/math"

// The normal channel of the G-buffer is RGBA8, so world-space normals in
// [-1,1] are packed into [0,1] on write and unpacked on read. The
// geometry and lighting shaders apply the same mapping.

// EncodeNormal packs a normal into the [0,1] color range.
func EncodeNormal(n math.Vec3) math.Vec3 {
	return math.Vec3{
		X: n.X*0.5 + 0.5,
		Y: n.Y*0.5 + 0.5,
		Z: n.Z*0.5 + 0.5,
	}
}

// DecodeNormal unpacks a [0,1] color back into a signed normal.
func DecodeNormal(c math.Vec3) math.Vec3 {
	return math.Vec3{
		X: c.X*2 - 1,
		Y: c.Y*2 - 1,
		Z: c.Z*2 - 1,
	}
}
