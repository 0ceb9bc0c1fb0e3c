package pipeline

import (
	"testing"

	"github.com/Faultbox/glint/pkg/math"
)

func TestInstanceLayout(t *testing.T) {
	// The shader reads the instance block with these exact byte offsets.
	// If the struct gains padding or a field moves, every quad renders
	// garbage, so pin the layout here.
	if InstanceStride != 88 {
		t.Errorf("expected instance stride 88, got %d", InstanceStride)
	}

	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"ModelRow0", OffsetModelRow0, 0},
		{"ModelRow1", OffsetModelRow1, 16},
		{"ModelRow2", OffsetModelRow2, 32},
		{"ModelRow3", OffsetModelRow3, 48},
		{"Tint", OffsetTint, 64},
		{"Size", OffsetSize, 76},
		{"ViewFlag", OffsetViewFlag, 84},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offset of %s: expected %d, got %d", o.name, o.want, o.got)
		}
	}
}

func TestInstanceModelRoundTrip(t *testing.T) {
	m := math.Translate(3, -2, 7).Mul(math.RotateZ(0.7)).Mul(math.Scale(2, 2, 1))

	var in Instance
	in.SetModel(m)
	got := in.Model()

	for i := range m {
		if diff := got[i] - m[i]; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("element %d: expected %f, got %f", i, m[i], got[i])
		}
	}
}

func TestInstanceModelRows(t *testing.T) {
	// Row vectors are laid out row-major: row i holds every fourth
	// element of the column-major matrix starting at i.
	m := math.Mat4{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
		12, 13, 14, 15,
	}

	var in Instance
	in.SetModel(m)

	if in.ModelRow0 != [4]float32{0, 4, 8, 12} {
		t.Errorf("row 0: got %v", in.ModelRow0)
	}
	if in.ModelRow3 != [4]float32{3, 7, 11, 15} {
		t.Errorf("row 3: got %v", in.ModelRow3)
	}
}

func TestMeshInterleave(t *testing.T) {
	data := MeshData{
		Vertices: []Vertex{
			{
				Position: math.Vec3{X: 1, Y: 2, Z: 3},
				Color:    math.Vec3{X: 0.5, Y: 0.25, Z: 1},
				UV:       math.Vec2{X: 0, Y: 1},
			},
		},
	}

	flat := data.Interleave()
	want := []float32{1, 2, 3, 0.5, 0.25, 1, 0, 1}
	if len(flat) != len(want) {
		t.Fatalf("expected %d floats, got %d", len(want), len(flat))
	}
	for i := range want {
		if flat[i] != want[i] {
			t.Errorf("float %d: expected %f, got %f", i, want[i], flat[i])
		}
	}

	if VertexStride != 32 {
		t.Errorf("expected vertex stride 32, got %d", VertexStride)
	}
}
