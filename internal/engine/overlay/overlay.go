// Package overlay renders the HUD: text labels and solid panels,
// emitted as screen-space quads for the UI pass. Label strings are
// rasterized once into textures and cached across frames.
package overlay

import (
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/scene"
	"github.com/Faultbox/glint/internal/engine/texture"
	"github.com/Faultbox/glint/internal/logger"
	"github.com/Faultbox/glint/pkg/math"
)

// evictAfter is how many frames an unused label texture survives in
// the cache before it is freed.
const evictAfter = 600

// Overlay draws HUD elements into a frame's command buffer. All
// methods must run on the GL thread; label textures are created lazily.
type Overlay struct {
	// Scale multiplies the bitmap font size. 2 keeps the 7x13 glyphs
	// readable on high-density displays.
	Scale float32

	labels map[string]*labelEntry
	frame  uint64
}

type labelEntry struct {
	tex      uint32
	width    int
	height   int
	lastUsed uint64
}

// New creates an empty overlay.
func New() *Overlay {
	return &Overlay{
		Scale:  2,
		labels: make(map[string]*labelEntry),
	}
}

// Label draws a text string with its top-left corner at x, y in screen
// pixels.
func (o *Overlay) Label(cb *scene.CommandBuffer, text string, x, y float32, c Color) {
	if text == "" {
		return
	}

	entry, ok := o.labels[text]
	if !ok {
		img := renderText(text)
		tex, err := texture.FromRGBA(img, texture.FilterNearest)
		if err != nil {
			logger.Warn("label texture failed", zap.String("text", text), zap.Error(err))
			return
		}
		entry = &labelEntry{tex: tex, width: img.Bounds().Dx(), height: img.Bounds().Dy()}
		o.labels[text] = entry
	}
	entry.lastUsed = o.frame

	cb.SubmitUIQuad(pipeline.QuadDraw{
		Model:   math.Translate(x, y, 0),
		Tint:    c.tint(),
		Size:    [2]float32{float32(entry.width) * o.Scale, float32(entry.height) * o.Scale},
		Texture: entry.tex,
	})
}

// Panel draws a solid rectangle with its top-left corner at x, y.
func (o *Overlay) Panel(cb *scene.CommandBuffer, x, y, width, height float32, c Color) {
	cb.SubmitUIQuad(pipeline.QuadDraw{
		Model: math.Translate(x, y, 0),
		Tint:  c.tint(),
		Size:  [2]float32{width, height},
	})
}

// LabelSize returns the on-screen pixel size a string will occupy.
func (o *Overlay) LabelSize(text string) (width, height float32) {
	w, h := MeasureText(text)
	return float32(w) * o.Scale, float32(h) * o.Scale
}

// FrameEnd advances the frame counter and frees label textures that
// have not been drawn recently. Call once per frame after submission.
func (o *Overlay) FrameEnd() {
	o.frame++
	if o.frame%evictAfter != 0 {
		return
	}
	for text, entry := range o.labels {
		if o.frame-entry.lastUsed > evictAfter {
			texture.Destroy(entry.tex)
			delete(o.labels, text)
		}
	}
}

// Destroy frees every cached label texture.
func (o *Overlay) Destroy() {
	for text, entry := range o.labels {
		texture.Destroy(entry.tex)
		delete(o.labels, text)
	}
}
