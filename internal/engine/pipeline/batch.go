package pipeline

import "github.com/Faultbox/glint/pkg/math"

// QuadDraw is one quad submission. The unit quad spans [0,1] on X and Y;
// Size scales it per axis before Model is applied. Texture is the diffuse
// texture handle, zero meaning the white fallback. When ApplyView is
// false the quad is screen-space: only the projection matrix is applied.
type QuadDraw struct {
	Model     math.Mat4
	Tint      [3]float32
	Size      [2]float32
	Texture   uint32
	ApplyView bool
}

// Batch is a run of consecutive quads sharing one diffuse texture,
// drawn with a single instanced call.
type Batch struct {
	Texture   uint32
	Instances []Instance
}

// QuadBatcher packs quad submissions into per-instance attribute data.
// Submission order is preserved exactly: batches split only where the
// texture changes and are never merged or reordered, so later quads
// paint over earlier ones at equal depth.
type QuadBatcher struct {
	batches []Batch
	count   int
	skipped int
}

// NewQuadBatcher returns an empty batcher.
func NewQuadBatcher() *QuadBatcher {
	return &QuadBatcher{}
}

// Reset clears all batches while keeping allocations for reuse.
func (b *QuadBatcher) Reset() {
	b.batches = b.batches[:0]
	b.count = 0
	b.skipped = 0
}

// Append adds one quad to the current frame. Quads with a zero or
// negative size component are degenerate and are discarded, not errors.
func (b *QuadBatcher) Append(q QuadDraw) {
	if q.Size[0] <= 0 || q.Size[1] <= 0 {
		b.skipped++
		return
	}

	var in Instance
	in.SetModel(q.Model)
	in.Tint = q.Tint
	in.Size = q.Size
	if q.ApplyView {
		in.ViewFlag = 1
	}

	n := len(b.batches)
	if n == 0 || b.batches[n-1].Texture != q.Texture {
		if n < cap(b.batches) {
			// Slots past len keep their instance buffers from
			// earlier frames.
			b.batches = b.batches[:n+1]
			b.batches[n].Texture = q.Texture
			b.batches[n].Instances = b.batches[n].Instances[:0]
		} else {
			b.batches = append(b.batches, Batch{Texture: q.Texture})
		}
		n++
	}
	b.batches[n-1].Instances = append(b.batches[n-1].Instances, in)
	b.count++
}

// Batches returns the packed batches in submission order. The returned
// slices are valid until the next Reset.
func (b *QuadBatcher) Batches() []Batch {
	return b.batches
}

// Len returns the number of quads packed this frame.
func (b *QuadBatcher) Len() int {
	return b.count
}

// Skipped returns the number of degenerate quads discarded this frame.
func (b *QuadBatcher) Skipped() int {
	return b.skipped
}
