package app

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/lighting"
	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/renderer"
	"github.com/Faultbox/glint/internal/engine/scene"
	"github.com/Faultbox/glint/internal/engine/texture"
	"github.com/Faultbox/glint/internal/logger"
	"github.com/Faultbox/glint/pkg/math"
)

const (
	floorExtent = 4096
	cubeSize    = 150
	cubeHeight  = 120

	tileCols = 14
	tileRows = 8
	tileSize = 34
	tileGap  = 10
	tileZ    = 30
)

// demoScene owns the procedural demo content: a checkered floor mesh, a
// spinning plated cube with a full material set, a field of animated
// quads, and orbiting point lights marked by emissive billboards. All
// textures and meshes are generated at startup; nothing is loaded from
// disk.
type demoScene struct {
	time   float32
	paused bool

	floor     pipeline.MeshHandle
	cube      pipeline.MeshHandle
	billboard pipeline.MeshHandle

	checkerTex     uint32
	plateTex       uint32
	plateNormalTex uint32
	plateGlowTex   uint32
	dotTex         uint32

	lights []demoLight
}

// demoLight is one orbiting light plus the tinted sprite that marks it.
type demoLight struct {
	color  [3]float32
	orbit  float32
	speed  float32
	phase  float32
	radius float32
	height float32
	sprite uint32
}

func (l demoLight) position(t, cx, cy float32) math.Vec3 {
	a := l.phase + t*l.speed
	return math.Vec3{
		X: cx + math32.Cos(a)*l.orbit,
		Y: cy + math32.Sin(a)*l.orbit,
		Z: l.height,
	}
}

func newDemoScene(r *renderer.Renderer) (*demoScene, error) {
	d := &demoScene{}

	d.checkerTex = loadTexture("floor checker", checkerImage(512, 32))
	diffuseImg, normalImg, glowImg := cubeAtlasImages(128, 32, 4)
	d.plateTex = loadTexture("cube diffuse", diffuseImg)
	d.plateNormalTex = loadTexture("cube normal map", normalImg)
	d.plateGlowTex = loadTexture("cube emission map", glowImg)
	d.dotTex = loadTexture("tile dot", dotImage(32))

	var err error
	if d.floor, err = r.RegisterMesh(floorMesh()); err != nil {
		d.destroy()
		return nil, fmt.Errorf("floor mesh: %w", err)
	}
	if d.cube, err = r.RegisterMesh(cubeMesh()); err != nil {
		d.destroy()
		return nil, fmt.Errorf("cube mesh: %w", err)
	}
	if d.billboard, err = r.RegisterMesh(quadMesh()); err != nil {
		d.destroy()
		return nil, fmt.Errorf("billboard mesh: %w", err)
	}

	d.lights = []demoLight{
		{color: [3]float32{1, 0.55, 0.25}, orbit: 170, speed: 0.8, phase: 0, radius: 850, height: 130},
		{color: [3]float32{0.3, 0.55, 1}, orbit: 270, speed: -0.55, phase: 2.1, radius: 950, height: 150},
		{color: [3]float32{0.35, 1, 0.5}, orbit: 370, speed: 1.25, phase: 4.2, radius: 700, height: 110},
	}
	for i := range d.lights {
		d.lights[i].sprite = loadTexture("light sprite", glowImage(d.lights[i].color, 64))
	}

	return d, nil
}

// loadTexture uploads a generated image, substituting the missing
// checker when the upload fails. A bad texture shows as magenta squares
// on screen; it never takes the demo down.
func loadTexture(name string, img *image.RGBA) uint32 {
	tex, err := texture.FromRGBA(img, texture.FilterLinear)
	if err != nil {
		logger.Warn("texture load failed", zap.String("texture", name), zap.Error(err))
		return texture.MissingHandle
	}
	return tex
}

// advance moves scene time forward unless the scene is paused.
func (d *demoScene) advance(dt float32) {
	if d.paused {
		return
	}
	d.time += dt
}

// lightCount reports how many lights the scene submits per frame.
func (d *demoScene) lightCount() int {
	return len(d.lights)
}

// submit records the whole scene for one frame. w and h are the current
// surface size in pixels; content is laid out relative to them.
func (d *demoScene) submit(cb *scene.CommandBuffer, w, h float32) {
	t := d.time
	cx, cy := w/2, h*0.38

	// Floor, centered under the view so panning stays on it.
	cb.SubmitMesh(pipeline.MeshDraw{
		Mesh: d.floor,
		Model: math.Translate((w-floorExtent)/2, (h-floorExtent)/2, 0).
			Mul(math.Scale(floorExtent, floorExtent, 1)),
		Material: pipeline.Material{Diffuse: d.checkerTex},
	})

	// Spinning plated cube. The two-axis tumble composes cleanly as
	// quaternions.
	spin := math.QuatFromAxisAngle(math.Vec3{Y: 1}, t*0.7).
		Mul(math.QuatFromAxisAngle(math.Vec3{X: 1}, t*0.45))
	cb.SubmitMesh(pipeline.MeshDraw{
		Mesh: d.cube,
		Model: math.Translate(cx, cy, cubeHeight).
			Mul(spin.ToMat4()).
			Mul(math.Scale(cubeSize, cubeSize, cubeSize)),
		Material: pipeline.Material{
			Diffuse:  d.plateTex,
			Normal:   d.plateNormalTex,
			Emission: d.plateGlowTex,
		},
	})

	d.submitTiles(cb, w, h)

	for _, l := range d.lights {
		pos := l.position(t, cx, cy)
		cb.SubmitLight(lighting.PointLight{
			Position: pos,
			Radius:   l.radius,
			Diffuse:  l.color,
		})
		cb.SubmitMesh(pipeline.MeshDraw{
			Mesh:     d.billboard,
			Model:    math.Translate(pos.X, pos.Y, pos.Z).Mul(math.Scale(30, 30, 1)),
			Material: pipeline.Material{Diffuse: l.sprite, Emission: l.sprite},
		})
	}
}

// submitTiles draws the animated quad field along the bottom of the
// view. Rows alternate between untextured and dotted tiles, so the
// batcher has to split runs on the texture change.
func (d *demoScene) submitTiles(cb *scene.CommandBuffer, w, h float32) {
	gridW := float32(tileCols)*(tileSize+tileGap) - tileGap
	x0 := (w - gridW) / 2
	y0 := h - float32(tileRows)*(tileSize+tileGap) - 28

	for row := 0; row < tileRows; row++ {
		tex := uint32(0)
		if row%2 == 1 {
			tex = d.dotTex
		}
		for col := 0; col < tileCols; col++ {
			fx := float32(col) / (tileCols - 1)
			fy := float32(row) / (tileRows - 1)
			bob := 9 * math32.Sin(d.time*2.1+0.45*float32(col)+0.8*float32(row))

			cb.SubmitQuad(pipeline.QuadDraw{
				Model: math.Translate(
					x0+float32(col)*(tileSize+tileGap),
					y0+float32(row)*(tileSize+tileGap)+bob,
					tileZ,
				),
				Tint: [3]float32{
					0.25 + 0.6*fx,
					0.75 - 0.4*fx,
					0.9 - 0.25*fy,
				},
				Size:    [2]float32{tileSize, tileSize},
				Texture: tex,
			})
		}
	}
}

func (d *demoScene) destroy() {
	texture.Destroy(d.checkerTex)
	texture.Destroy(d.plateTex)
	texture.Destroy(d.plateNormalTex)
	texture.Destroy(d.plateGlowTex)
	texture.Destroy(d.dotTex)
	for _, l := range d.lights {
		texture.Destroy(l.sprite)
	}
}

// checkerImage builds the floor texture: cell-pixel checker squares in
// two muted tones, dark enough that moving light pools read clearly.
func checkerImage(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	a := color.RGBA{58, 60, 72, 255}
	b := color.RGBA{44, 46, 56, 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// cubeFaceCorners lists each cube face as four corners in UV order
// (0,0), (1,0), (1,1), (0,1). The atlas builder derives the face basis
// from the same table, keeping mesh UVs and baked normals in agreement.
var cubeFaceCorners = [6][4]math.Vec3{
	{{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5}},
	{{X: 0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5}},
	{{X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: 0.5}},
	{{X: -0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: -0.5}},
	{{X: -0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}},
	{{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: 0.5}, {X: -0.5, Y: -0.5, Z: 0.5}},
}

// cubeMesh builds a unit cube with each face mapped to its own tile in
// the 3x2 material atlas.
func cubeMesh() pipeline.MeshData {
	white := math.Vec3{X: 1, Y: 1, Z: 1}
	var m pipeline.MeshData
	for face, corners := range cubeFaceCorners {
		u0 := float32(face%3) / 3
		v0 := float32(face/3) / 2
		u1 := u0 + 1.0/3
		v1 := v0 + 0.5
		uvs := [4]math.Vec2{{X: u0, Y: v0}, {X: u1, Y: v0}, {X: u1, Y: v1}, {X: u0, Y: v1}}

		base := uint32(len(m.Vertices))
		for i, p := range corners {
			m.Vertices = append(m.Vertices, pipeline.Vertex{Position: p, Color: white, UV: uvs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// cubeAtlasImages bakes the cube's material set into a 3x2 atlas of
// tile-pixel faces: square plates separated by grooves. The diffuse map
// darkens the grooves, the emission map lights them, and the normal map
// slopes into them. Normals are object-space: the flat bump is rotated
// into each face's basis, which is what lets a mesh without normal
// attributes still light correctly on all six sides.
func cubeAtlasImages(tile, plate, groove int) (diffuse, normals, glow *image.RGBA) {
	bounds := image.Rect(0, 0, tile*3, tile*2)
	diffuse = image.NewRGBA(bounds)
	normals = image.NewRGBA(bounds)
	glow = image.NewRGBA(bounds)

	// Plate surface height: 0 in the grooves, ramping to 1 over groove
	// pixels into each plate. Wrapped so sampling past a tile edge
	// continues the pattern.
	height := func(x, y int) float32 {
		px := ((x % plate) + plate) % plate
		py := ((y % plate) + plate) % plate
		d := px
		if plate-1-px < d {
			d = plate - 1 - px
		}
		if py < d {
			d = py
		}
		if plate-1-py < d {
			d = plate - 1 - py
		}
		v := float32(d) / float32(groove)
		if v > 1 {
			v = 1
		}
		return v
	}

	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }
	encode := func(v float32) uint8 { return uint8((v*0.5 + 0.5) * 255) }

	faceShade := [6]float32{1, 0.88, 0.96, 0.9, 0.99, 0.85}
	const bumpScale = 1.6

	for face := 0; face < 6; face++ {
		ox, oy := (face%3)*tile, (face/3)*tile
		c := cubeFaceCorners[face]
		tAxis := c[1].Sub(c[0]).Normalize()
		bAxis := c[3].Sub(c[0]).Normalize()
		nAxis := tAxis.Cross(bAxis)
		shade := faceShade[face]

		for y := 0; y < tile; y++ {
			for x := 0; x < tile; x++ {
				h := height(x, y)
				bx := -(height(x+1, y) - height(x-1, y)) * bumpScale
				by := -(height(x, y+1) - height(x, y-1)) * bumpScale
				n := tAxis.Scale(bx).Add(bAxis.Scale(by)).Add(nAxis).Normalize()

				diffuse.SetRGBA(ox+x, oy+y, color.RGBA{
					uint8(lerp(84, 156, h) * shade),
					uint8(lerp(86, 158, h) * shade),
					uint8(lerp(96, 168, h) * shade),
					255,
				})
				normals.SetRGBA(ox+x, oy+y, color.RGBA{
					encode(n.X), encode(n.Y), encode(n.Z), 255,
				})
				grooveGlow := 1 - h
				glow.SetRGBA(ox+x, oy+y, color.RGBA{
					uint8(30 * grooveGlow),
					uint8(205 * grooveGlow),
					uint8(240 * grooveGlow),
					255,
				})
			}
		}
	}
	return diffuse, normals, glow
}

// glowImage builds a tinted radial sprite with a squared falloff. The
// alpha follows the falloff, so the geometry pass discards the corners.
func glowImage(c [3]float32, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float32(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) + 0.5 - half) / half
			dy := (float32(y) + 0.5 - half) / half
			fall := 1 - math32.Sqrt(dx*dx+dy*dy)
			if fall < 0 {
				fall = 0
			}
			fall *= fall
			img.SetRGBA(x, y, color.RGBA{
				uint8(c[0] * fall * 255),
				uint8(c[1] * fall * 255),
				uint8(c[2] * fall * 255),
				uint8(fall * 255),
			})
		}
	}
	return img
}

// dotImage builds a white disc with a short premultiplied edge ramp.
// There is no blending in the geometry pass, so the ramp darkens toward
// the edge instead of fading.
func dotImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float32(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) + 0.5 - half) / half
			dy := (float32(y) + 0.5 - half) / half
			d := math32.Sqrt(dx*dx + dy*dy)
			fall := (0.95 - d) / 0.23
			if fall > 1 {
				fall = 1
			}
			if fall < 0 {
				fall = 0
			}
			v := uint8(fall * 255)
			img.SetRGBA(x, y, color.RGBA{v, v, v, v})
		}
	}
	return img
}

// floorMesh is a unit quad in the XY plane, scaled up by its model
// matrix. World position interpolates across it per fragment, which is
// all the lighting pass needs for correct pools on a two-triangle floor.
func floorMesh() pipeline.MeshData {
	white := math.Vec3{X: 1, Y: 1, Z: 1}
	return pipeline.MeshData{
		Vertices: []pipeline.Vertex{
			{Position: math.Vec3{}, Color: white, UV: math.Vec2{}},
			{Position: math.Vec3{X: 1}, Color: white, UV: math.Vec2{X: 1}},
			{Position: math.Vec3{X: 1, Y: 1}, Color: white, UV: math.Vec2{X: 1, Y: 1}},
			{Position: math.Vec3{Y: 1}, Color: white, UV: math.Vec2{Y: 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// quadMesh is a centered unit quad used for the light billboards.
func quadMesh() pipeline.MeshData {
	white := math.Vec3{X: 1, Y: 1, Z: 1}
	return pipeline.MeshData{
		Vertices: []pipeline.Vertex{
			{Position: math.Vec3{X: -0.5, Y: -0.5}, Color: white, UV: math.Vec2{}},
			{Position: math.Vec3{X: 0.5, Y: -0.5}, Color: white, UV: math.Vec2{X: 1}},
			{Position: math.Vec3{X: 0.5, Y: 0.5}, Color: white, UV: math.Vec2{X: 1, Y: 1}},
			{Position: math.Vec3{X: -0.5, Y: 0.5}, Color: white, UV: math.Vec2{Y: 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
