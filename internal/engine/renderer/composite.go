package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/renderer/shaders"
	"github.com/Faultbox/glint/internal/engine/shader"
)

// compositePass merges the lit target and the UI overlay into the
// presented frame with the binary coverage rule.
type compositePass struct {
	program uint32
}

func newCompositePass() (*compositePass, error) {
	p := &compositePass{}

	program, err := shader.CompileProgram(shaders.FullscreenVertexShader, shaders.CompositeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("composite shader: %w", err)
	}
	p.program = program

	gl.UseProgram(program)
	gl.Uniform1i(shader.GetUniform(program, "uLit"), pipeline.UnitLit)
	gl.Uniform1i(shader.GetUniform(program, "uUI"), pipeline.UnitUI)

	return p, nil
}

// draw expects the destination framebuffer bound and blending off; the
// shader itself decides per pixel between scene and UI.
func (p *compositePass) draw(fsq *fullscreenQuad, litTexture, uiTexture uint32) {
	gl.UseProgram(p.program)

	gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitLit))
	gl.BindTexture(gl.TEXTURE_2D, litTexture)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitUI))
	gl.BindTexture(gl.TEXTURE_2D, uiTexture)
	gl.ActiveTexture(gl.TEXTURE0)

	fsq.draw()
}

func (p *compositePass) destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}
