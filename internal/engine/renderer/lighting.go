package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glint/internal/engine/lighting"
	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/renderer/shaders"
	"github.com/Faultbox/glint/internal/engine/shader"
)

// lightPass accumulates lighting into the lit target: one base draw
// for the ambient and emission terms, then one additive draw per light.
type lightPass struct {
	baseProgram  uint32
	pointProgram uint32

	locBaseAmbient         int32
	locBaseEmissionEnabled int32

	locPointLightPos     int32
	locPointLightDiffuse int32
	locPointLightRadius  int32
}

func newLightPass() (*lightPass, error) {
	p := &lightPass{}

	base, err := shader.CompileProgram(shaders.FullscreenVertexShader, shaders.LightBaseFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("light base shader: %w", err)
	}
	p.baseProgram = base

	p.locBaseAmbient = shader.GetUniform(base, "uAmbient")
	p.locBaseEmissionEnabled = shader.GetUniform(base, "uEmissionEnabled")

	gl.UseProgram(base)
	gl.Uniform1i(shader.GetUniform(base, "uAlbedo"), pipeline.UnitAlbedo)
	gl.Uniform1i(shader.GetUniform(base, "uEmission"), pipeline.UnitEmission)

	point, err := shader.CompileProgram(shaders.FullscreenVertexShader, shaders.LightPointFragmentShader)
	if err != nil {
		gl.DeleteProgram(base)
		return nil, fmt.Errorf("point light shader: %w", err)
	}
	p.pointProgram = point

	p.locPointLightPos = shader.GetUniform(point, "uLightPos")
	p.locPointLightDiffuse = shader.GetUniform(point, "uLightDiffuse")
	p.locPointLightRadius = shader.GetUniform(point, "uLightRadius")

	gl.UseProgram(point)
	gl.Uniform1i(shader.GetUniform(point, "uAlbedo"), pipeline.UnitAlbedo)
	gl.Uniform1i(shader.GetUniform(point, "uNormal"), pipeline.UnitNormal)
	gl.Uniform1i(shader.GetUniform(point, "uPosition"), pipeline.UnitPosition)

	return p, nil
}

// draw expects the lit target bound and the G-buffer attachments bound
// for reading. Lights must already be sanitized; their radius is never
// zero here.
func (p *lightPass) draw(fsq *fullscreenQuad, lights []lighting.PointLight, ambient [3]float32, emission bool) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	// The base draw runs unblended right after the clear, so ambient
	// and emission land exactly once per pixel however many lights
	// follow.
	gl.UseProgram(p.baseProgram)
	gl.Uniform3f(p.locBaseAmbient, ambient[0], ambient[1], ambient[2])
	enabled := int32(0)
	if emission {
		enabled = 1
	}
	gl.Uniform1i(p.locBaseEmissionEnabled, enabled)
	fsq.draw()

	if len(lights) == 0 {
		return
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)

	gl.UseProgram(p.pointProgram)
	for _, l := range lights {
		gl.Uniform3f(p.locPointLightPos, l.Position.X, l.Position.Y, l.Position.Z)
		gl.Uniform3f(p.locPointLightDiffuse, l.Diffuse[0], l.Diffuse[1], l.Diffuse[2])
		gl.Uniform1f(p.locPointLightRadius, l.Radius)
		fsq.draw()
	}

	gl.Disable(gl.BLEND)
}

func (p *lightPass) destroy() {
	if p.baseProgram != 0 {
		gl.DeleteProgram(p.baseProgram)
		p.baseProgram = 0
	}
	if p.pointProgram != 0 {
		gl.DeleteProgram(p.pointProgram)
		p.pointProgram = 0
	}
}
