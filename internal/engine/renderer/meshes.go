package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/renderer/shaders"
	"github.com/Faultbox/glint/internal/engine/shader"
	"github.com/Faultbox/glint/internal/engine/texture"
	"github.com/Faultbox/glint/internal/logger"
)

// meshPass owns uploaded mesh geometry and draws each submission with
// its material into the G-buffer.
type meshPass struct {
	program uint32

	locProjection int32
	locView       int32
	locModel      int32
	locDiffuse    int32
	locNormal     int32
	locEmission   int32

	meshes []glMesh
}

type glMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func newMeshPass() (*meshPass, error) {
	p := &meshPass{}

	program, err := shader.CompileProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	p.program = program

	p.locProjection = shader.GetUniform(program, "uProjection")
	p.locView = shader.GetUniform(program, "uView")
	p.locModel = shader.GetUniform(program, "uModel")
	p.locDiffuse = shader.GetUniform(program, "uDiffuse")
	p.locNormal = shader.GetUniform(program, "uNormal")
	p.locEmission = shader.GetUniform(program, "uEmission")

	gl.UseProgram(program)
	gl.Uniform1i(p.locDiffuse, pipeline.UnitMatDiffuse)
	gl.Uniform1i(p.locNormal, pipeline.UnitMatNormal)
	gl.Uniform1i(p.locEmission, pipeline.UnitMatEmission)

	return p, nil
}

// register uploads mesh geometry and returns its handle. Handles start
// at 1; zero stays invalid.
func (p *meshPass) register(data pipeline.MeshData) (pipeline.MeshHandle, error) {
	if len(data.Vertices) == 0 {
		return 0, fmt.Errorf("registering mesh: no vertices")
	}
	if len(data.Indices) == 0 || len(data.Indices)%3 != 0 {
		return 0, fmt.Errorf("registering mesh: index count %d is not a triangle list", len(data.Indices))
	}
	for _, idx := range data.Indices {
		if int(idx) >= len(data.Vertices) {
			return 0, fmt.Errorf("registering mesh: index %d out of range for %d vertices", idx, len(data.Vertices))
		}
	}

	var m glMesh
	vertices := data.Interleave()

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(pipeline.AttribPosition, 3, gl.FLOAT, false, pipeline.VertexStride, 0)
	gl.EnableVertexAttribArray(pipeline.AttribPosition)
	gl.VertexAttribPointerWithOffset(pipeline.AttribColor, 3, gl.FLOAT, false, pipeline.VertexStride, 3*4)
	gl.EnableVertexAttribArray(pipeline.AttribColor)
	gl.VertexAttribPointerWithOffset(pipeline.AttribUV, 2, gl.FLOAT, false, pipeline.VertexStride, 6*4)
	gl.EnableVertexAttribArray(pipeline.AttribUV)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, unsafe.Pointer(&data.Indices[0]), gl.STATIC_DRAW)
	m.indexCount = int32(len(data.Indices))

	gl.BindVertexArray(0)

	p.meshes = append(p.meshes, m)
	handle := pipeline.MeshHandle(len(p.meshes))

	logger.Debug("mesh registered",
		zap.Uint32("handle", uint32(handle)),
		zap.Int("vertices", len(data.Vertices)),
		zap.Int32("indices", m.indexCount),
	)
	return handle, nil
}

// draw renders every mesh submission. Unknown handles are skipped; a
// material with zero texture handles samples the fallback set.
func (p *meshPass) draw(draws []pipeline.MeshDraw, cam camera.Uniform, fallbacks *texture.Fallbacks) {
	if len(draws) == 0 {
		return
	}

	gl.UseProgram(p.program)
	gl.UniformMatrix4fv(p.locProjection, 1, false, &cam.Projection[0])
	gl.UniformMatrix4fv(p.locView, 1, false, &cam.View[0])

	for _, d := range draws {
		if d.Mesh == 0 || int(d.Mesh) > len(p.meshes) {
			logger.Debug("skipping unknown mesh handle", zap.Uint32("handle", uint32(d.Mesh)))
			continue
		}
		m := p.meshes[d.Mesh-1]

		model := d.Model
		gl.UniformMatrix4fv(p.locModel, 1, false, &model[0])

		gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitMatDiffuse))
		gl.BindTexture(gl.TEXTURE_2D, fallbacks.Diffuse(d.Material.Diffuse))
		gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitMatNormal))
		gl.BindTexture(gl.TEXTURE_2D, fallbacks.Normal(d.Material.Normal))
		gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitMatEmission))
		gl.BindTexture(gl.TEXTURE_2D, fallbacks.Emission(d.Material.Emission))

		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	}

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (p *meshPass) destroy() {
	for i := range p.meshes {
		m := &p.meshes[i]
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
		}
		if m.vbo != 0 {
			gl.DeleteBuffers(1, &m.vbo)
		}
		if m.ebo != 0 {
			gl.DeleteBuffers(1, &m.ebo)
		}
	}
	p.meshes = nil
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}
