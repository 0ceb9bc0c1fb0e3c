// Package gbuffer owns the multi-target geometry buffer of the
// deferred pipeline. The geometry pass writes all four channels in one
// draw; the lighting and channel-view passes read them back as
// textures.
package gbuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glint/internal/engine/pipeline"
)

// Buffer holds the four color attachments and the shared depth buffer.
//
// Attachment layout, in fragment-output order:
//
//	0 albedo   RGBA8    surface color
//	1 normal   RGBA8    world-space normal, encoded n*0.5+0.5
//	2 emission RGBA8    self-illumination
//	3 position RGBA32F  world-space position
type Buffer struct {
	fbo      uint32
	albedo   uint32
	normal   uint32
	emission uint32
	position uint32
	depthRBO uint32
	width    int32
	height   int32
}

// New creates the geometry buffer at the given pixel size.
func New(width, height int32) (*Buffer, error) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	b := &Buffer{
		width:  width,
		height: height,
	}

	gl.GenFramebuffers(1, &b.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)

	b.albedo = b.colorAttachment(0, gl.RGBA8, gl.UNSIGNED_BYTE)
	b.normal = b.colorAttachment(1, gl.RGBA8, gl.UNSIGNED_BYTE)
	b.emission = b.colorAttachment(2, gl.RGBA8, gl.UNSIGNED_BYTE)
	b.position = b.colorAttachment(3, gl.RGBA32F, gl.FLOAT)

	drawBuffers := []uint32{
		gl.COLOR_ATTACHMENT0,
		gl.COLOR_ATTACHMENT1,
		gl.COLOR_ATTACHMENT2,
		gl.COLOR_ATTACHMENT3,
	}
	gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])

	gl.GenRenderbuffers(1, &b.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, b.width, b.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		b.Destroy()
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, fmt.Errorf("g-buffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return b, nil
}

// colorAttachment allocates one texture and attaches it at the given
// index. Attachments are sampled 1:1 by the full-screen passes, so
// filtering is NEAREST; interpolating normals or positions between
// texels would corrupt them.
func (b *Buffer) colorAttachment(index uint32, internalFormat int32, pixelType uint32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, b.width, b.height, 0, gl.RGBA, pixelType, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+index, gl.TEXTURE_2D, tex, 0)
	return tex
}

// BindDraw makes the geometry buffer the render target and sets the
// viewport to cover it.
func (b *Buffer) BindDraw() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	gl.Viewport(0, 0, b.width, b.height)
}

// Clear resets every attachment to its neutral value. Albedo takes the
// scene clear color; the normal channel clears to the encoding of the
// zero vector so unlit background pixels decode back to no normal at
// all rather than a phantom surface.
func (b *Buffer) Clear(r, g, bl, a float32) {
	albedo := [4]float32{r, g, bl, a}
	normal := [4]float32{0.5, 0.5, 0.5, 1}
	black := [4]float32{0, 0, 0, 1}
	depth := float32(1)

	gl.ClearBufferfv(gl.COLOR, 0, &albedo[0])
	gl.ClearBufferfv(gl.COLOR, 1, &normal[0])
	gl.ClearBufferfv(gl.COLOR, 2, &black[0])
	gl.ClearBufferfv(gl.COLOR, 3, &black[0])
	gl.ClearBufferfv(gl.DEPTH, 0, &depth)
}

// BindRead binds the four attachments to the texture units the
// lighting shaders sample from.
func (b *Buffer) BindRead() {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitAlbedo))
	gl.BindTexture(gl.TEXTURE_2D, b.albedo)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitNormal))
	gl.BindTexture(gl.TEXTURE_2D, b.normal)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitEmission))
	gl.BindTexture(gl.TEXTURE_2D, b.emission)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(pipeline.UnitPosition))
	gl.BindTexture(gl.TEXTURE_2D, b.position)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int32) {
	return b.width, b.height
}

// Resize reallocates every attachment if the dimensions changed.
func (b *Buffer) Resize(width, height int32) {
	if width == b.width && height == b.height {
		return
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	b.width = width
	b.height = height

	realloc := func(tex uint32, internalFormat int32, pixelType uint32) {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, b.width, b.height, 0, gl.RGBA, pixelType, nil)
	}
	realloc(b.albedo, gl.RGBA8, gl.UNSIGNED_BYTE)
	realloc(b.normal, gl.RGBA8, gl.UNSIGNED_BYTE)
	realloc(b.emission, gl.RGBA8, gl.UNSIGNED_BYTE)
	realloc(b.position, gl.RGBA32F, gl.FLOAT)

	gl.BindRenderbuffer(gl.RENDERBUFFER, b.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, b.width, b.height)
}

// Destroy releases all OpenGL resources.
func (b *Buffer) Destroy() {
	if b.fbo != 0 {
		gl.DeleteFramebuffers(1, &b.fbo)
		b.fbo = 0
	}
	for _, tex := range []*uint32{&b.albedo, &b.normal, &b.emission, &b.position} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
			*tex = 0
		}
	}
	if b.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &b.depthRBO)
		b.depthRBO = 0
	}
}
