package math

import "testing"

func TestVec2Ops(t *testing.T) {
	a := Vec2{5, 7}
	b := Vec2{2, 3}

	if got, want := a.Add(b), (Vec2{7, 10}); got != want {
		t.Errorf("Add: got %v, want %v", got, want)
	}
	if got, want := a.Sub(b), (Vec2{3, 4}); got != want {
		t.Errorf("Sub: got %v, want %v", got, want)
	}
	if got, want := b.Scale(2), (Vec2{4, 6}); got != want {
		t.Errorf("Scale: got %v, want %v", got, want)
	}
	if got, want := a.Dot(b), float32(31); got != want {
		t.Errorf("Dot: got %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	if got := (Vec2{3, 4}).Length(); got != 5 {
		t.Errorf("Length: got %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := (Vec2{3, 4}).Normalize()
	if !approx(n.X, 0.6) || !approx(n.Y, 0.8) {
		t.Errorf("Normalize: got %v, want (0.6, 0.8)", n)
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("normalizing the zero vector must stay zero")
	}
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 6, 3}

	if got, want := a.Add(b), (Vec3{5, 8, 6}); got != want {
		t.Errorf("Add: got %v, want %v", got, want)
	}
	if got, want := b.Sub(a), (Vec3{3, 4, 0}); got != want {
		t.Errorf("Sub: got %v, want %v", got, want)
	}
	if got, want := a.Scale(3), (Vec3{3, 6, 9}); got != want {
		t.Errorf("Scale: got %v, want %v", got, want)
	}
	if got, want := a.Dot(b), float32(25); got != want {
		t.Errorf("Dot: got %v, want %v", got, want)
	}
}

func TestVec3CrossRightHanded(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	if got := x.Cross(y); got != (Vec3{Z: 1}) {
		t.Errorf("x cross y: got %v, want +z", got)
	}
	if got := y.Cross(x); got != (Vec3{Z: -1}) {
		t.Errorf("y cross x: got %v, want -z", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := (Vec3{0, 3, 4}).Normalize()
	if !approx(n.Length(), 1) {
		t.Errorf("unit length: got %v", n.Length())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("normalizing the zero vector must stay zero")
	}
}
