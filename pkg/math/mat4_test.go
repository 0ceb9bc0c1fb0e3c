package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func approx(got, want float32) bool {
	return math32.Abs(got-want) <= 1e-4
}

func matApprox(t *testing.T, got, want Mat4) {
	t.Helper()
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIdentityMulIsNoop(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Scale(2, 4, 8))
	matApprox(t, m.Mul(Identity()), m)
	matApprox(t, Identity().Mul(m), m)
}

func TestTranslateColumn(t *testing.T) {
	m := Translate(5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("translation column: got (%v, %v, %v), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScaleDiagonal(t *testing.T) {
	m := Scale(2, 3, 4)
	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("scale diagonal: got (%v, %v, %v), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestMulComposesRightToLeft(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	got := m.MulVec4(Vec4{1, 1, 1, 1})
	want := Vec4{12, 2, 2, 1}
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Fatalf("composed transform: got %v, want %v", got, want)
		}
	}
}

func TestRotateZQuarterTurn(t *testing.T) {
	m := RotateZ(math32.Pi / 2)
	got := m.MulVec4(Vec4{1, 0, 0, 0})
	// The x axis lands on y.
	if !approx(got[0], 0) || !approx(got[1], 1) || !approx(got[2], 0) {
		t.Errorf("rotated x axis: got %v, want (0, 1, 0)", got)
	}
}

func TestOrthoMapsCorners(t *testing.T) {
	m := Ortho(0, 800, 600, 0, -500, 500)

	tl := m.MulVec4(Vec4{0, 0, 0, 1})
	if !approx(tl[0], -1) || !approx(tl[1], 1) {
		t.Errorf("top left: got (%v, %v), want (-1, 1)", tl[0], tl[1])
	}

	br := m.MulVec4(Vec4{800, 600, 0, 1})
	if !approx(br[0], 1) || !approx(br[1], -1) {
		t.Errorf("bottom right: got (%v, %v), want (1, -1)", br[0], br[1])
	}
}

func TestOrthoDepthOrder(t *testing.T) {
	m := Ortho(0, 800, 600, 0, -500, 500)

	// Larger world z must land at a smaller depth value, nearer the
	// viewer.
	hi := m.MulVec4(Vec4{0, 0, 100, 1})
	lo := m.MulVec4(Vec4{0, 0, 10, 1})
	if hi[2] >= lo[2] {
		t.Errorf("depth order: z=100 maps to %v, z=10 to %v", hi[2], lo[2])
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(3, -2, 5).Mul(Scale(2, 2, 2))
	matApprox(t, m.Mul(m.Inverse()), Identity())
}

func TestInverseSingular(t *testing.T) {
	inv := Scale(1, 1, 0).Inverse()
	if inv != Identity() {
		t.Errorf("singular matrix: got %v, want identity", inv)
	}
}

func TestMulVec4Direction(t *testing.T) {
	m := Translate(1, 2, 3)

	p := m.MulVec4(Vec4{1, 1, 1, 1})
	if p != (Vec4{2, 3, 4, 1}) {
		t.Errorf("point: got %v, want [2 3 4 1]", p)
	}

	// w=0 vectors are directions and ignore translation.
	d := m.MulVec4(Vec4{1, 1, 1, 0})
	if d != (Vec4{1, 1, 1, 0}) {
		t.Errorf("direction: got %v, want [1 1 1 0]", d)
	}
}
