package overlay

import "testing"

func TestRenderTextMatchesMeasure(t *testing.T) {
	text := "FPS: 60"
	img := renderText(text)
	w, h := MeasureText(text)

	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Errorf("rendered %dx%d, measured %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), w, h)
	}
	if w < len(text) {
		t.Errorf("width %d too small for %d glyphs", w, len(text))
	}
}

// Glyph coverage must stay strictly binary: the compositor replaces
// the scene pixel wherever alpha is nonzero, so partial alpha would
// render as solid fringes.
func TestRenderTextBinaryAlpha(t *testing.T) {
	img := renderText("Ab!")

	covered := 0
	for i := 3; i < len(img.Pix); i += 4 {
		switch a := img.Pix[i]; a {
		case 0:
		case 255:
			covered++
		default:
			t.Fatalf("pixel %d has fractional alpha %d", i/4, a)
		}
	}
	if covered == 0 {
		t.Fatal("no glyph pixels rendered")
	}
}

func TestRenderTextEmptyIsSafe(t *testing.T) {
	img := renderText("")
	if img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		t.Errorf("empty string produced %v image", img.Bounds())
	}
}

func TestColorRGB(t *testing.T) {
	c := RGB(255, 0, 127)
	if c.R != 1 || c.G != 0 {
		t.Errorf("RGB(255,0,127) = %+v", c)
	}
	if c.B < 0.49 || c.B > 0.51 {
		t.Errorf("blue component = %v, want ~0.498", c.B)
	}
}

func TestColorDarken(t *testing.T) {
	c := Color{1, 0.5, 0.2}.Darken(0.5)
	want := Color{0.5, 0.25, 0.1}
	if c != want {
		t.Errorf("Darken(0.5) = %+v, want %+v", c, want)
	}
}
