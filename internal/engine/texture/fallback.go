package texture

import (
	"image"
	"image/color"
)

// MissingHandle marks a texture that was referenced but failed to
// load. Resolvers substitute the checkerboard for it, so the failure
// shows on screen instead of aborting the frame.
const MissingHandle = ^uint32(0)

// Fallbacks are the textures substituted when a material slot has no
// texture assigned, so a draw never fails on a missing map.
//
//	White      diffuse default, leaves the instance tint untouched
//	FlatNormal encoded +Z, a normal map that changes nothing
//	Black      emission default, no self-illumination
//	Missing    magenta/black checkerboard for assets that failed to load
type Fallbacks struct {
	White      uint32
	FlatNormal uint32
	Black      uint32
	Missing    uint32
}

// NewFallbacks creates the fallback set. Must run on the GL thread.
func NewFallbacks() *Fallbacks {
	return &Fallbacks{
		White:      Solid(255, 255, 255, 255),
		FlatNormal: Solid(128, 128, 255, 255),
		Black:      Solid(0, 0, 0, 255),
		Missing:    missingTexture(),
	}
}

// Diffuse resolves a diffuse handle, substituting white for zero and
// the checkerboard for MissingHandle.
func (f *Fallbacks) Diffuse(handle uint32) uint32 {
	switch handle {
	case 0:
		return f.White
	case MissingHandle:
		return f.Missing
	}
	return handle
}

// Normal resolves a normal-map handle, substituting flat +Z for zero.
// A missing normal map also resolves flat: shading stays correct, the
// checkerboard already shows in the diffuse channel.
func (f *Fallbacks) Normal(handle uint32) uint32 {
	switch handle {
	case 0, MissingHandle:
		return f.FlatNormal
	}
	return handle
}

// Emission resolves an emission handle, substituting black for zero
// and for MissingHandle.
func (f *Fallbacks) Emission(handle uint32) uint32 {
	switch handle {
	case 0, MissingHandle:
		return f.Black
	}
	return handle
}

// Destroy releases all fallback textures.
func (f *Fallbacks) Destroy() {
	for _, tex := range []*uint32{&f.White, &f.FlatNormal, &f.Black, &f.Missing} {
		Destroy(*tex)
		*tex = 0
	}
}

// missingTexture builds the 8x8 magenta/black checkerboard that marks
// an asset which was referenced but never loaded.
func missingTexture() uint32 {
	const size = 8
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	magenta := color.RGBA{R: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, magenta)
			} else {
				img.SetRGBA(x, y, black)
			}
		}
	}
	tex, err := FromRGBA(img, FilterNearest)
	if err != nil {
		return Solid(255, 0, 255, 255)
	}
	return tex
}
