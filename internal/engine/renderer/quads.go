package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/renderer/shaders"
	"github.com/Faultbox/glint/internal/engine/shader"
	"github.com/Faultbox/glint/internal/engine/texture"
	"github.com/Faultbox/glint/pkg/math"
)

// quadPass draws quad batches with one instanced call per batch. The
// geometry and UI passes are two instances of it sharing the same
// vertex stage; only the fragment shader differs.
type quadPass struct {
	program uint32

	locProjection int32
	locView       int32
	locDiffuse    int32

	vao     uint32
	quadVBO uint32
	instVBO uint32

	// Allocated instance capacity of instVBO, in instances.
	instCap int
}

// newQuadPass compiles the quad program with the given fragment stage
// and builds the instanced vertex layout.
func newQuadPass(fragmentSrc string, maxQuads int) (*quadPass, error) {
	p := &quadPass{}

	program, err := shader.CompileProgram(shaders.QuadVertexShader, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("quad shader: %w", err)
	}
	p.program = program

	p.locProjection = shader.GetUniform(program, "uProjection")
	p.locView = shader.GetUniform(program, "uView")
	p.locDiffuse = shader.GetUniform(program, "uDiffuse")

	gl.UseProgram(program)
	gl.Uniform1i(p.locDiffuse, pipeline.UnitMatDiffuse)

	if maxQuads < 1 {
		maxQuads = 1
	}
	p.createBuffers(maxQuads)

	return p, nil
}

func (p *quadPass) createBuffers(maxQuads int) {
	// Unit quad spanning [0,1] on X and Y, UV matching the corner so
	// v=0 samples the top image row in screen space.
	vertices := []float32{
		// Position (XYZ), Color (RGB), TexCoord (UV)
		0, 0, 0, 1, 1, 1, 0, 0,
		1, 0, 0, 1, 1, 1, 1, 0,
		1, 1, 0, 1, 1, 1, 1, 1,
		0, 0, 0, 1, 1, 1, 0, 0,
		1, 1, 0, 1, 1, 1, 1, 1,
		0, 1, 0, 1, 1, 1, 0, 1,
	}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(pipeline.AttribPosition, 3, gl.FLOAT, false, 8*4, 0)
	gl.EnableVertexAttribArray(pipeline.AttribPosition)
	gl.VertexAttribPointerWithOffset(pipeline.AttribColor, 3, gl.FLOAT, false, 8*4, 3*4)
	gl.EnableVertexAttribArray(pipeline.AttribColor)
	gl.VertexAttribPointerWithOffset(pipeline.AttribUV, 2, gl.FLOAT, false, 8*4, 6*4)
	gl.EnableVertexAttribArray(pipeline.AttribUV)

	// Per-instance attributes advance once per quad, not per vertex.
	gl.GenBuffers(1, &p.instVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.instVBO)
	gl.BufferData(gl.ARRAY_BUFFER, maxQuads*int(pipeline.InstanceStride), nil, gl.STREAM_DRAW)
	p.instCap = maxQuads

	instAttrib := func(loc uint32, size int32, offset uintptr) {
		gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, pipeline.InstanceStride, offset)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}
	instAttrib(pipeline.AttribModelRow0, 4, pipeline.OffsetModelRow0)
	instAttrib(pipeline.AttribModelRow1, 4, pipeline.OffsetModelRow1)
	instAttrib(pipeline.AttribModelRow2, 4, pipeline.OffsetModelRow2)
	instAttrib(pipeline.AttribModelRow3, 4, pipeline.OffsetModelRow3)
	instAttrib(pipeline.AttribTint, 3, pipeline.OffsetTint)
	instAttrib(pipeline.AttribSize, 2, pipeline.OffsetSize)

	// The view flag is an integer attribute; the float pointer call
	// would silently convert it.
	gl.VertexAttribIPointerWithOffset(pipeline.AttribViewFlag, 1, gl.INT, pipeline.InstanceStride, pipeline.OffsetViewFlag)
	gl.EnableVertexAttribArray(pipeline.AttribViewFlag)
	gl.VertexAttribDivisor(pipeline.AttribViewFlag, 1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// draw issues one instanced call per batch, in batch order. The caller
// owns blend and depth state.
func (p *quadPass) draw(batches []pipeline.Batch, projection, view math.Mat4, fallbacks *texture.Fallbacks) {
	if len(batches) == 0 || p.vao == 0 {
		return
	}

	gl.UseProgram(p.program)
	gl.UniformMatrix4fv(p.locProjection, 1, false, &projection[0])
	gl.UniformMatrix4fv(p.locView, 1, false, &view[0])

	gl.BindVertexArray(p.vao)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitMatDiffuse))

	for _, batch := range batches {
		if len(batch.Instances) == 0 {
			continue
		}
		gl.BindTexture(gl.TEXTURE_2D, fallbacks.Diffuse(batch.Texture))
		p.uploadInstances(batch.Instances)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(len(batch.Instances)))
	}

	gl.BindVertexArray(0)
}

// uploadInstances streams one batch into the instance buffer, growing
// it when a batch outruns the allocation.
func (p *quadPass) uploadInstances(instances []pipeline.Instance) {
	size := len(instances) * int(pipeline.InstanceStride)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.instVBO)
	if len(instances) > p.instCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&instances[0]), gl.STREAM_DRAW)
		p.instCap = len(instances)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&instances[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (p *quadPass) destroy() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.quadVBO != 0 {
		gl.DeleteBuffers(1, &p.quadVBO)
		p.quadVBO = 0
	}
	if p.instVBO != 0 {
		gl.DeleteBuffers(1, &p.instVBO)
		p.instVBO = 0
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}
