package overlay

// Color is an RGB color with float components (0.0 to 1.0). Overlay
// coverage is binary at the compositor, so there is no alpha here;
// transparency comes from the glyph textures alone.
type Color struct {
	R, G, B float32
}

// Predefined colors for HUD theming.
var (
	ColorWhite = Color{1, 1, 1}
	ColorBlack = Color{0, 0, 0}

	ColorPanelBg   = Color{0.08, 0.08, 0.12}
	ColorText      = Color{0.9, 0.9, 0.9}
	ColorTextDim   = Color{0.5, 0.5, 0.6}
	ColorHighlight = Color{0.2, 0.6, 0.9}
	ColorWarning   = Color{0.9, 0.7, 0.2}
)

// RGB creates a color from 8-bit values (0-255).
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
	}
}

// Darken returns a darker version of the color.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
	}
}

func (c Color) tint() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
