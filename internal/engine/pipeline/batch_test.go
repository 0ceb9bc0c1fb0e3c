package pipeline

import (
	"testing"

	"github.com/Faultbox/glint/pkg/math"
)

// clipPosition mirrors the quad vertex shader: the unit-quad corner is
// scaled per axis by size, transformed by the instance model matrix and
// then by projection (and view, when the flag is set).
func clipPosition(in Instance, proj, view math.Mat4, corner math.Vec2) math.Vec4 {
	local := math.Vec4{corner.X * in.Size[0], corner.Y * in.Size[1], 0, 1}
	pv := proj
	if in.ViewFlag != 0 {
		pv = proj.Mul(view)
	}
	return pv.Mul(in.Model()).MulVec4(local)
}

func TestQuadCornerTransform(t *testing.T) {
	// Corner (0.5, 0.5) with size (2, 3) and identity matrices lands at
	// clip (1.0, 1.5, 0, 1).
	b := NewQuadBatcher()
	b.Append(QuadDraw{
		Model: math.Identity(),
		Size:  [2]float32{2, 3},
	})

	batches := b.Batches()
	if len(batches) != 1 || len(batches[0].Instances) != 1 {
		t.Fatalf("expected 1 batch with 1 instance, got %d batches", len(batches))
	}

	got := clipPosition(batches[0].Instances[0], math.Identity(), math.Identity(), math.Vec2{X: 0.5, Y: 0.5})
	want := math.Vec4{1.0, 1.5, 0, 1}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("component %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestViewFlag(t *testing.T) {
	view := math.Translate(10, -5, 0)
	proj := math.Ortho(0, 100, 100, 0, -1, 1)
	corner := math.Vec2{X: 1, Y: 1}

	screen := QuadDraw{Model: math.Translate(20, 20, 0), Size: [2]float32{8, 8}}
	world := screen
	world.ApplyView = true

	b := NewQuadBatcher()
	b.Append(screen)
	b.Append(world)
	ins := b.Batches()[0].Instances

	// Screen-space quads ignore the view matrix entirely.
	withView := clipPosition(ins[0], proj, view, corner)
	withoutView := clipPosition(ins[0], proj, math.Identity(), corner)
	if withView != withoutView {
		t.Errorf("flag 0: view matrix leaked into clip position: %v vs %v", withView, withoutView)
	}

	// World-space quads move when the view moves.
	moved := clipPosition(ins[1], proj, view, corner)
	still := clipPosition(ins[1], proj, math.Identity(), corner)
	if moved == still {
		t.Error("flag 1: non-identity view produced identical clip position")
	}
}

func TestBatchSplitsOnTextureChange(t *testing.T) {
	b := NewQuadBatcher()
	quad := func(tex uint32) QuadDraw {
		return QuadDraw{Model: math.Identity(), Size: [2]float32{1, 1}, Texture: tex}
	}

	b.Append(quad(1))
	b.Append(quad(1))
	b.Append(quad(2))
	b.Append(quad(1)) // same texture as the first run, must NOT merge

	batches := b.Batches()
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}

	wantTex := []uint32{1, 2, 1}
	wantLen := []int{2, 1, 1}
	for i := range batches {
		if batches[i].Texture != wantTex[i] {
			t.Errorf("batch %d: expected texture %d, got %d", i, wantTex[i], batches[i].Texture)
		}
		if len(batches[i].Instances) != wantLen[i] {
			t.Errorf("batch %d: expected %d instances, got %d", i, wantLen[i], len(batches[i].Instances))
		}
	}
	if b.Len() != 4 {
		t.Errorf("expected 4 quads total, got %d", b.Len())
	}
}

func TestBatchPreservesSubmissionOrder(t *testing.T) {
	b := NewQuadBatcher()
	for i := 0; i < 5; i++ {
		b.Append(QuadDraw{
			Model: math.Translate(float32(i), 0, 0),
			Size:  [2]float32{1, 1},
		})
	}

	ins := b.Batches()[0].Instances
	for i := range ins {
		// Translation X identifies the submission; row 0 element 3 holds it.
		if got := ins[i].ModelRow0[3]; got != float32(i) {
			t.Errorf("instance %d: expected translation %d, got %f", i, i, got)
		}
	}
}

func TestDegenerateQuadsSkipped(t *testing.T) {
	b := NewQuadBatcher()
	b.Append(QuadDraw{Model: math.Identity(), Size: [2]float32{0, 5}})
	b.Append(QuadDraw{Model: math.Identity(), Size: [2]float32{5, 0}})
	b.Append(QuadDraw{Model: math.Identity(), Size: [2]float32{-1, 5}})
	b.Append(QuadDraw{Model: math.Identity(), Size: [2]float32{5, 5}})

	if b.Len() != 1 {
		t.Errorf("expected 1 packed quad, got %d", b.Len())
	}
	if b.Skipped() != 3 {
		t.Errorf("expected 3 skipped quads, got %d", b.Skipped())
	}
}

func TestBatcherReset(t *testing.T) {
	b := NewQuadBatcher()
	for i := 0; i < 3; i++ {
		b.Append(QuadDraw{Model: math.Translate(float32(i), 0, 0), Size: [2]float32{1, 1}, Texture: 7})
	}
	b.Append(QuadDraw{Model: math.Identity(), Size: [2]float32{0, 0}})
	b.Reset()

	if b.Len() != 0 || b.Skipped() != 0 || len(b.Batches()) != 0 {
		t.Errorf("reset batcher not empty: len=%d skipped=%d batches=%d",
			b.Len(), b.Skipped(), len(b.Batches()))
	}

	// The reused slot must hold only this frame's quad, not the three
	// from before the reset.
	b.Append(QuadDraw{Model: math.Translate(42, 0, 0), Size: [2]float32{1, 1}, Texture: 9})
	batches := b.Batches()
	if len(batches) != 1 || batches[0].Texture != 9 {
		t.Fatal("batcher unusable after reset")
	}
	if len(batches[0].Instances) != 1 {
		t.Fatalf("expected 1 instance after reset, got %d", len(batches[0].Instances))
	}
	if got := batches[0].Instances[0].ModelRow0[3]; got != 42 {
		t.Errorf("expected translation 42 in reused slot, got %f", got)
	}
}
