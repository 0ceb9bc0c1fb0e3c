// Package texture creates OpenGL textures from CPU images and owns the
// fallback set substituted for materials with no texture assigned.
package texture

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Filter selects the sampling mode for a texture.
type Filter int

const (
	// FilterNearest samples the nearest texel. Used for UI text and
	// pixel-exact sprites.
	FilterNearest Filter = iota
	// FilterLinear samples with bilinear filtering and mipmaps.
	FilterLinear
)

// FromRGBA uploads an image as a 2D texture and returns its handle.
// Row 0 of the image maps to texture coordinate v=0.
func FromRGBA(img *image.RGBA, filter Filter) (uint32, error) {
	if img == nil {
		return 0, fmt.Errorf("uploading texture: nil image")
	}
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	if width < 1 || height < 1 || len(img.Pix) < width*height*4 {
		return 0, fmt.Errorf("uploading texture: empty %dx%d image", width, height)
	}
	// Upload reads rows back to back; a sub-image with a wider stride
	// would shear.
	if img.Stride != width*4 {
		return 0, fmt.Errorf("uploading texture: stride %d for width %d, want tightly packed rows", img.Stride, width)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	switch filter {
	case FilterLinear:
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 4)
	default:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex, nil
}

// Solid creates a 1x1 texture of a single color.
func Solid(r, g, b, a uint8) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	pixel := []uint8{r, g, b, a}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixel))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Destroy releases a texture handle. Zero and missing handles are
// ignored.
func Destroy(tex uint32) {
	if tex != 0 && tex != MissingHandle {
		gl.DeleteTextures(1, &tex)
	}
}
