package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/renderer/shaders"
	"github.com/Faultbox/glint/internal/engine/shader"
)

// channelPass shows one raw G-buffer channel full screen, replacing
// the lighting pass for that frame.
type channelPass struct {
	program    uint32
	locChannel int32
}

func newChannelPass() (*channelPass, error) {
	p := &channelPass{}

	program, err := shader.CompileProgram(shaders.FullscreenVertexShader, shaders.ChannelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("channel shader: %w", err)
	}
	p.program = program
	p.locChannel = shader.GetUniform(program, "uChannel")

	gl.UseProgram(program)
	gl.Uniform1i(shader.GetUniform(program, "uAlbedo"), pipeline.UnitAlbedo)
	gl.Uniform1i(shader.GetUniform(program, "uNormal"), pipeline.UnitNormal)
	gl.Uniform1i(shader.GetUniform(program, "uEmission"), pipeline.UnitEmission)
	gl.Uniform1i(shader.GetUniform(program, "uPosition"), pipeline.UnitPosition)

	return p, nil
}

// draw expects the output target bound and the G-buffer attachments
// bound for reading.
func (p *channelPass) draw(fsq *fullscreenQuad, c pipeline.Channel) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	gl.UseProgram(p.program)
	gl.Uniform1i(p.locChannel, int32(c))
	fsq.draw()
}

func (p *channelPass) destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}
