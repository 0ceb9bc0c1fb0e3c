// Package scene collects per-frame draw submissions into the snapshot
// the renderer consumes. It owns no GPU state.
package scene

import (
	"sort"

	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/lighting"
	"github.com/Faultbox/glint/internal/engine/pipeline"
)

// Snapshot is everything the pipeline needs for one frame: the camera
// uniform, world and UI quads in draw order, meshes, and active lights.
// The slices stay valid until the producing CommandBuffer is reset.
type Snapshot struct {
	Camera  camera.Uniform
	Quads   []pipeline.QuadDraw
	UIQuads []pipeline.QuadDraw
	Meshes  []pipeline.MeshDraw
	Lights  []lighting.PointLight
}

// CommandBuffer accumulates draw submissions between frames. Submit
// calls may come in any order; Snapshot fixes the final draw order.
type CommandBuffer struct {
	quads   []pipeline.QuadDraw
	uiQuads []pipeline.QuadDraw
	meshes  []pipeline.MeshDraw
	lights  []lighting.PointLight
}

// NewCommandBuffer returns an empty command buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

// SubmitQuad adds a world-space quad. The view transform always applies
// to world quads, whatever the submission says.
func (cb *CommandBuffer) SubmitQuad(q pipeline.QuadDraw) {
	q.ApplyView = true
	cb.quads = append(cb.quads, q)
}

// SubmitUIQuad adds a screen-space quad drawn into the UI target. UI
// quads never see the view matrix.
func (cb *CommandBuffer) SubmitUIQuad(q pipeline.QuadDraw) {
	q.ApplyView = false
	cb.uiQuads = append(cb.uiQuads, q)
}

// SubmitMesh adds a mesh draw for this frame.
func (cb *CommandBuffer) SubmitMesh(m pipeline.MeshDraw) {
	cb.meshes = append(cb.meshes, m)
}

// SubmitLight adds a point light for this frame.
func (cb *CommandBuffer) SubmitLight(l lighting.PointLight) {
	cb.lights = append(cb.lights, l.Sanitized())
}

// Snapshot freezes the frame. World quads are stable-sorted by the Z
// translation of their model matrix, so quads submitted later keep
// drawing over earlier ones at equal depth. UI quads and meshes stay in
// submission order.
func (cb *CommandBuffer) Snapshot(cam camera.Uniform) Snapshot {
	sort.SliceStable(cb.quads, func(i, j int) bool {
		return cb.quads[i].Model[14] < cb.quads[j].Model[14]
	})

	return Snapshot{
		Camera:  cam,
		Quads:   cb.quads,
		UIQuads: cb.uiQuads,
		Meshes:  cb.meshes,
		Lights:  cb.lights,
	}
}

// Reset clears all submissions, keeping allocations for the next frame.
func (cb *CommandBuffer) Reset() {
	cb.quads = cb.quads[:0]
	cb.uiQuads = cb.uiQuads[:0]
	cb.meshes = cb.meshes[:0]
	cb.lights = cb.lights[:0]
}
