package overlay

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// face is the bitmap font used for all HUD text. It rasterizes without
// anti-aliasing, so glyph alpha stays strictly 0 or 1 and survives the
// binary compositor untouched.
var face = basicfont.Face7x13

// renderText rasterizes a string as white-on-transparent pixels. The
// tint colors it at draw time.
func renderText(text string) *image.RGBA {
	d := &font.Drawer{Face: face}
	width := d.MeasureString(text).Ceil()
	if width < 1 {
		width = 1
	}
	metrics := face.Metrics()
	height := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d.Dst = img
	d.Src = image.White
	d.Dot = fixed.P(0, ascent)
	d.DrawString(text)
	return img
}

// MeasureText returns the unscaled pixel size of a string in the HUD
// font.
func MeasureText(text string) (width, height int) {
	d := &font.Drawer{Face: face}
	return d.MeasureString(text).Ceil(), face.Metrics().Height.Ceil()
}
