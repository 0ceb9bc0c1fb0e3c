// Package pipeline defines the CPU side of the deferred pipeline: the
// vertex/instance binding layout shared with the shaders, quad batching,
// the G-buffer channel codec, and the per-frame render mode.
package pipeline

import (
	"unsafe"

	"github.com/Faultbox/glint/pkg/math"
)

// Vertex attribute locations. The quad and mesh vertex shaders declare
// these exact locations; changing one side without the other breaks the
// pipeline at link time at best and silently at worst.
const (
	AttribPosition = 0 // vec3, per vertex
	AttribColor    = 1 // vec3, per vertex
	AttribUV       = 2 // vec2, per vertex

	// Per-instance quad attributes (divisor 1).
	AttribModelRow0 = 3 // vec4, model matrix row 0
	AttribModelRow1 = 4 // vec4, model matrix row 1
	AttribModelRow2 = 5 // vec4, model matrix row 2
	AttribModelRow3 = 6 // vec4, model matrix row 3
	AttribTint      = 7 // vec3
	AttribSize      = 8 // vec2

	// Location 9 is unused. The flag has always lived at 10 and shaders
	// compiled against existing tooling expect it there.
	AttribViewFlag = 10 // int, 0 = projection only, 1 = projection*view
)

// Texture units read by the lighting and channel-view passes. The
// geometry pass writes the G-buffer attachments in this same order.
const (
	UnitAlbedo   = 0
	UnitNormal   = 1
	UnitEmission = 2
	UnitPosition = 3
)

// Texture units for material samplers in the geometry pass.
const (
	UnitMatDiffuse  = 0
	UnitMatNormal   = 1
	UnitMatEmission = 2
)

// Texture units for the compositor pass.
const (
	UnitLit = 0
	UnitUI  = 1
)

// Instance is the per-instance attribute block for one quad. Its memory
// layout must match the quad vertex shader bit for bit: four model rows
// at locations 3-6, tint at 7, size at 8 and the view flag at 10. The
// instance buffer is uploaded as raw bytes of an []Instance slice.
type Instance struct {
	ModelRow0 [4]float32
	ModelRow1 [4]float32
	ModelRow2 [4]float32
	ModelRow3 [4]float32
	Tint      [3]float32
	Size      [2]float32
	ViewFlag  int32
}

// InstanceStride is the byte stride between consecutive instances.
const InstanceStride = int32(unsafe.Sizeof(Instance{}))

// Byte offsets of each instance attribute, for vertex attrib setup.
const (
	OffsetModelRow0 = uintptr(unsafe.Offsetof(Instance{}.ModelRow0))
	OffsetModelRow1 = uintptr(unsafe.Offsetof(Instance{}.ModelRow1))
	OffsetModelRow2 = uintptr(unsafe.Offsetof(Instance{}.ModelRow2))
	OffsetModelRow3 = uintptr(unsafe.Offsetof(Instance{}.ModelRow3))
	OffsetTint      = uintptr(unsafe.Offsetof(Instance{}.Tint))
	OffsetSize      = uintptr(unsafe.Offsetof(Instance{}.Size))
	OffsetViewFlag  = uintptr(unsafe.Offsetof(Instance{}.ViewFlag))
)

// SetModel stores the model matrix as four row vectors. math.Mat4 is
// column-major, so row i is every fourth element starting at i. The quad
// vertex shader rebuilds the matrix with a transpose.
func (in *Instance) SetModel(m math.Mat4) {
	in.ModelRow0 = [4]float32{m[0], m[4], m[8], m[12]}
	in.ModelRow1 = [4]float32{m[1], m[5], m[9], m[13]}
	in.ModelRow2 = [4]float32{m[2], m[6], m[10], m[14]}
	in.ModelRow3 = [4]float32{m[3], m[7], m[11], m[15]}
}

// Model reconstructs the column-major model matrix from the stored rows.
func (in *Instance) Model() math.Mat4 {
	var m math.Mat4
	rows := [4][4]float32{in.ModelRow0, in.ModelRow1, in.ModelRow2, in.ModelRow3}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[c*4+r] = rows[r][c]
		}
	}
	return m
}
