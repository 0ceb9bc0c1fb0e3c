// Package renderer executes the deferred pipeline: geometry into the
// G-buffer, lighting or a debug channel view into the lit target, UI
// quads into the overlay target, and a final composite to the screen.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/framebuffer"
	"github.com/Faultbox/glint/internal/engine/gbuffer"
	"github.com/Faultbox/glint/internal/engine/lighting"
	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/renderer/shaders"
	"github.com/Faultbox/glint/internal/engine/scene"
	"github.com/Faultbox/glint/internal/engine/texture"
	"github.com/Faultbox/glint/internal/logger"
	"github.com/Faultbox/glint/pkg/math"
)

// ErrSurfaceLost reports that the presentation surface currently has no
// usable size, typically because the window is minimized. The frame is
// skippable; rendering resumes once a resize restores the surface.
var ErrSurfaceLost = errors.New("presentation surface lost")

// Config holds renderer configuration.
type Config struct {
	Width  int32
	Height int32

	// ClearColor fills the albedo channel and shows wherever nothing
	// was drawn.
	ClearColor [4]float32

	// Ambient is the scene ambient term, multiplied with albedo exactly
	// once per pixel in the lighting base draw.
	Ambient [3]float32

	// Emission controls whether the emission channel is added in the
	// base draw.
	Emission bool

	// LightCutoff is the attenuation level below which a light is
	// culled before drawing. Zero selects the default.
	LightCutoff float32

	// MaxQuads sizes the initial instance buffer. The buffer grows past
	// it; this only avoids early reallocations.
	MaxQuads int
}

// Renderer owns every render target and pass program of the pipeline.
// All methods must run on the thread holding the OpenGL context.
type Renderer struct {
	config Config

	gbuf *gbuffer.Buffer
	lit  *framebuffer.Framebuffer
	ui   *framebuffer.Framebuffer

	geomQuads *quadPass
	uiQuads   *quadPass
	meshes    *meshPass
	fsq       *fullscreenQuad
	lights    *lightPass
	channels  *channelPass
	compose   *compositePass

	fallbacks *texture.Fallbacks

	worldBatch *pipeline.QuadBatcher
	uiBatch    *pipeline.QuadBatcher

	mode    pipeline.Mode
	channel pipeline.Channel

	surfaceLost bool
}

// New creates the renderer and all its GPU resources.
// Must be called after the OpenGL context exists, on its thread.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	gpuName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("gpu", gpuName),
	)

	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("invalid renderer size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.LightCutoff <= 0 || cfg.LightCutoff >= 1 {
		cfg.LightCutoff = lighting.DefaultCutoff
	}

	r := &Renderer{
		config:     cfg,
		worldBatch: pipeline.NewQuadBatcher(),
		uiBatch:    pipeline.NewQuadBatcher(),
	}

	var err error
	if r.gbuf, err = gbuffer.New(cfg.Width, cfg.Height); err != nil {
		r.Close()
		return nil, fmt.Errorf("geometry buffer: %w", err)
	}
	if r.lit, err = framebuffer.New(cfg.Width, cfg.Height); err != nil {
		r.Close()
		return nil, fmt.Errorf("lit target: %w", err)
	}
	if r.ui, err = framebuffer.New(cfg.Width, cfg.Height); err != nil {
		r.Close()
		return nil, fmt.Errorf("ui target: %w", err)
	}

	if r.geomQuads, err = newQuadPass(shaders.QuadFragmentShader, cfg.MaxQuads); err != nil {
		r.Close()
		return nil, fmt.Errorf("geometry quad pass: %w", err)
	}
	if r.uiQuads, err = newQuadPass(shaders.UIFragmentShader, cfg.MaxQuads); err != nil {
		r.Close()
		return nil, fmt.Errorf("ui quad pass: %w", err)
	}
	if r.meshes, err = newMeshPass(); err != nil {
		r.Close()
		return nil, fmt.Errorf("mesh pass: %w", err)
	}
	if r.lights, err = newLightPass(); err != nil {
		r.Close()
		return nil, fmt.Errorf("lighting pass: %w", err)
	}
	if r.channels, err = newChannelPass(); err != nil {
		r.Close()
		return nil, fmt.Errorf("channel pass: %w", err)
	}
	if r.compose, err = newCompositePass(); err != nil {
		r.Close()
		return nil, fmt.Errorf("composite pass: %w", err)
	}

	r.fsq = newFullscreenQuad()
	r.fallbacks = texture.NewFallbacks()

	logger.Info("renderer ready",
		zap.Int32("width", cfg.Width),
		zap.Int32("height", cfg.Height),
	)
	return r, nil
}

// Close releases all GPU resources. Safe to call on a partially
// constructed renderer.
func (r *Renderer) Close() {
	if r.fallbacks != nil {
		r.fallbacks.Destroy()
	}
	if r.compose != nil {
		r.compose.destroy()
	}
	if r.channels != nil {
		r.channels.destroy()
	}
	if r.lights != nil {
		r.lights.destroy()
	}
	if r.fsq != nil {
		r.fsq.destroy()
	}
	if r.meshes != nil {
		r.meshes.destroy()
	}
	if r.uiQuads != nil {
		r.uiQuads.destroy()
	}
	if r.geomQuads != nil {
		r.geomQuads.destroy()
	}
	if r.ui != nil {
		r.ui.Destroy()
	}
	if r.lit != nil {
		r.lit.Destroy()
	}
	if r.gbuf != nil {
		r.gbuf.Destroy()
	}
}

// Resize recreates every render target at the new drawable size before
// the next frame. A zero or negative size marks the surface lost until
// a later resize restores it.
func (r *Renderer) Resize(width, height int32) {
	if width < 1 || height < 1 {
		if !r.surfaceLost {
			logger.Debug("surface lost", zap.Int32("width", width), zap.Int32("height", height))
		}
		r.surfaceLost = true
		return
	}
	r.surfaceLost = false

	if width == r.config.Width && height == r.config.Height {
		return
	}
	r.config.Width = width
	r.config.Height = height

	r.gbuf.Resize(width, height)
	r.lit.Resize(width, height)
	r.ui.Resize(width, height)

	logger.Debug("render targets resized",
		zap.Int32("width", width),
		zap.Int32("height", height),
	)
}

// SetMode switches between lit output and the channel debug view.
func (r *Renderer) SetMode(m pipeline.Mode) {
	r.mode = m
}

// Mode returns the current render mode.
func (r *Renderer) Mode() pipeline.Mode {
	return r.mode
}

// SetChannel selects which G-buffer channel the debug view shows.
func (r *Renderer) SetChannel(c pipeline.Channel) {
	r.channel = c
}

// Channel returns the selected debug channel.
func (r *Renderer) Channel() pipeline.Channel {
	return r.channel
}

// RegisterMesh uploads mesh geometry and returns its handle.
func (r *Renderer) RegisterMesh(data pipeline.MeshData) (pipeline.MeshHandle, error) {
	return r.meshes.register(data)
}

// RenderFrame runs the full pass sequence for one snapshot and leaves
// the finished frame in the back buffer; the caller presents it.
// Returns ErrSurfaceLost while the surface has no usable size.
func (r *Renderer) RenderFrame(snap scene.Snapshot) error {
	if r.surfaceLost {
		return ErrSurfaceLost
	}
	if err := r.checkTargets(); err != nil {
		return err
	}

	r.drawUI(snap.UIQuads)
	r.drawGeometry(snap)

	r.lit.Bind()
	r.lit.Clear(0, 0, 0, 1)
	r.gbuf.BindRead()
	if r.mode == pipeline.ModeChannel {
		r.channels.draw(r.fsq, r.channel)
	} else {
		visible := lighting.Visible(snap.Lights, snap.Camera.ViewProjection(), r.config.LightCutoff)
		r.lights.draw(r.fsq, visible, r.config.Ambient, r.config.Emission)
	}

	r.composite()
	return nil
}

// checkTargets verifies every intermediate target matches the surface
// size. Targets are recreated together in Resize, so a mismatch means
// state corruption rather than a stale frame.
func (r *Renderer) checkTargets() error {
	gw, gh := r.gbuf.Size()
	lw, lh := r.lit.Size()
	uw, uh := r.ui.Size()
	w, h := r.config.Width, r.config.Height
	if gw != w || gh != h || lw != w || lh != h || uw != w || uh != h {
		return fmt.Errorf("render target size mismatch: surface %dx%d, g-buffer %dx%d, lit %dx%d, ui %dx%d",
			w, h, gw, gh, lw, lh, uw, uh)
	}
	return nil
}

// drawUI renders screen-space quads into the UI overlay target. The
// target clears to alpha zero; only covered pixels end up opaque, which
// is what the compositor keys on.
func (r *Renderer) drawUI(quads []pipeline.QuadDraw) {
	r.ui.Bind()
	r.ui.Clear(0, 0, 0, 0)

	if len(quads) == 0 {
		return
	}

	r.uiBatch.Reset()
	for _, q := range quads {
		r.uiBatch.Append(q)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	proj := camera.ScreenProjection(float32(r.config.Width), float32(r.config.Height))
	r.uiQuads.draw(r.uiBatch.Batches(), proj, math.Identity(), r.fallbacks)

	gl.Disable(gl.BLEND)
}

// drawGeometry rasterizes all world quads and meshes into the G-buffer
// in a single pass over its four attachments.
func (r *Renderer) drawGeometry(snap scene.Snapshot) {
	r.gbuf.BindDraw()
	c := r.config.ClearColor
	r.gbuf.Clear(c[0], c[1], c[2], c[3])

	// LEQUAL, not LESS: quads at equal depth must resolve in submission
	// order, with the later draw winning.
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.BLEND)

	r.worldBatch.Reset()
	for _, q := range snap.Quads {
		r.worldBatch.Append(q)
	}
	r.geomQuads.draw(r.worldBatch.Batches(), snap.Camera.Projection, snap.Camera.View, r.fallbacks)

	r.meshes.draw(snap.Meshes, snap.Camera, r.fallbacks)

	gl.Disable(gl.DEPTH_TEST)
}

// composite merges the lit (or channel-view) target with the UI overlay
// into the default framebuffer.
func (r *Renderer) composite() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.config.Width, r.config.Height)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	r.compose.draw(r.fsq, r.lit.ColorTexture(), r.ui.ColorTexture())
}

// QuadStats reports how many world quads were drawn and skipped as
// degenerate in the last frame.
func (r *Renderer) QuadStats() (drawn, skipped int) {
	return r.worldBatch.Len(), r.worldBatch.Skipped()
}

// Size returns the current surface size.
func (r *Renderer) Size() (width, height int32) {
	return r.config.Width, r.config.Height
}

// CapturePixels reads the finished frame from the back buffer as RGBA
// bytes, bottom row first. Call it after RenderFrame and before the
// buffer swap.
func (r *Renderer) CapturePixels() ([]byte, int32, int32) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
