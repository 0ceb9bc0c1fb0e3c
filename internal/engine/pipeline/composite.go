package pipeline

// CompositePixel is the compositor's per-pixel rule, exactly as the
// composite shader applies it: a UI pixel with alpha 0 lets the lit
// pixel through, any other alpha replaces the lit pixel with the UI
// pixel as-is. There is no blending; UI art is authored with hard
// edges and fractional alpha still means "UI wins".
func CompositePixel(lit, ui [4]float32) [4]float32 {
	if ui[3] == 0 {
		return lit
	}
	return ui
}
