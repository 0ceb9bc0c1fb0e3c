package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Y: 1}, math32.Pi/2)

	if !approx(q.W, math32.Cos(math32.Pi/4)) {
		t.Errorf("W: got %v, want cos(pi/4)", q.W)
	}
	if !approx(q.Y, math32.Sin(math32.Pi/4)) {
		t.Errorf("Y: got %v, want sin(pi/4)", q.Y)
	}
	if !approx(q.X, 0) || !approx(q.Z, 0) {
		t.Errorf("off-axis components: got (%v, %v), want 0", q.X, q.Z)
	}
}

func TestQuatMulComposesAngles(t *testing.T) {
	y := Vec3{Y: 1}
	got := QuatFromAxisAngle(y, 0.6).Mul(QuatFromAxisAngle(y, 0.9))
	want := QuatFromAxisAngle(y, 1.5)

	if !approx(got.Y, want.Y) || !approx(got.W, want.W) {
		t.Errorf("composed rotation: got %+v, want %+v", got, want)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := (Quat{X: 1, Y: 2, Z: 3, W: 4}).Normalize()
	l := math32.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if !approx(l, 1) {
		t.Errorf("unit length: got %v", l)
	}

	if (Quat{}).Normalize() != (Quat{W: 1}) {
		t.Error("degenerate quaternion must normalize to identity")
	}
}

func TestQuatToMat4Identity(t *testing.T) {
	matApprox(t, (Quat{W: 1}).ToMat4(), Identity())
}

func TestQuatToMat4MatchesRotateZ(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Z: 1}, 0.7)
	matApprox(t, q.ToMat4(), RotateZ(0.7))
}
