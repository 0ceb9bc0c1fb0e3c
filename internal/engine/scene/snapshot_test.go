package scene

import (
	"testing"

	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/lighting"
	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/pkg/math"
)

func quadAt(z float32, tint float32) pipeline.QuadDraw {
	return pipeline.QuadDraw{
		Model: math.Translate(0, 0, z),
		Tint:  [3]float32{tint, 0, 0},
		Size:  [2]float32{1, 1},
	}
}

func TestSnapshotSortsQuadsByDepth(t *testing.T) {
	cb := NewCommandBuffer()
	cb.SubmitQuad(quadAt(5, 0))
	cb.SubmitQuad(quadAt(-2, 1))
	cb.SubmitQuad(quadAt(1, 2))

	snap := cb.Snapshot(camera.Uniform{})

	wantZ := []float32{-2, 1, 5}
	for i, q := range snap.Quads {
		if got := q.Model[14]; got != wantZ[i] {
			t.Errorf("quad %d: expected z %f, got %f", i, wantZ[i], got)
		}
	}
}

func TestSnapshotKeepsOrderAtEqualDepth(t *testing.T) {
	cb := NewCommandBuffer()
	for i := 0; i < 6; i++ {
		cb.SubmitQuad(quadAt(3, float32(i)))
	}

	snap := cb.Snapshot(camera.Uniform{})
	for i, q := range snap.Quads {
		if got := q.Tint[0]; got != float32(i) {
			t.Errorf("equal-depth quad %d: expected submission order %d, got %f", i, i, got)
		}
	}
}

func TestSubmitQuadForcesViewFlag(t *testing.T) {
	cb := NewCommandBuffer()
	cb.SubmitQuad(pipeline.QuadDraw{Model: math.Identity(), Size: [2]float32{1, 1}})
	cb.SubmitUIQuad(pipeline.QuadDraw{Model: math.Identity(), Size: [2]float32{1, 1}, ApplyView: true})

	snap := cb.Snapshot(camera.Uniform{})
	if !snap.Quads[0].ApplyView {
		t.Error("world quad must apply the view transform")
	}
	if snap.UIQuads[0].ApplyView {
		t.Error("ui quad must not apply the view transform")
	}
}

func TestSubmitLightSanitizes(t *testing.T) {
	cb := NewCommandBuffer()
	cb.SubmitLight(lighting.PointLight{Radius: 0, Diffuse: [3]float32{3, 1, 1}})

	snap := cb.Snapshot(camera.Uniform{})
	if len(snap.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(snap.Lights))
	}
	if snap.Lights[0].Radius != lighting.MinRadius {
		t.Errorf("expected clamped radius %f, got %f", lighting.MinRadius, snap.Lights[0].Radius)
	}
	if snap.Lights[0].Diffuse[0] != 1 {
		t.Errorf("expected clamped diffuse 1, got %f", snap.Lights[0].Diffuse[0])
	}
}

func TestResetClearsEverything(t *testing.T) {
	cb := NewCommandBuffer()
	cb.SubmitQuad(quadAt(0, 0))
	cb.SubmitUIQuad(quadAt(0, 0))
	cb.SubmitMesh(pipeline.MeshDraw{Mesh: 1, Model: math.Identity()})
	cb.SubmitLight(lighting.PointLight{Radius: 10})
	cb.Reset()

	snap := cb.Snapshot(camera.Uniform{})
	if len(snap.Quads) != 0 || len(snap.UIQuads) != 0 || len(snap.Meshes) != 0 || len(snap.Lights) != 0 {
		t.Errorf("reset buffer not empty: %d quads, %d ui, %d meshes, %d lights",
			len(snap.Quads), len(snap.UIQuads), len(snap.Meshes), len(snap.Lights))
	}
}
