// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// QuadVertexShader is the instanced vertex shader for quad batches,
// shared by the geometry and UI passes.
//
//go:embed quad.vert
var QuadVertexShader string

// QuadFragmentShader writes quad fragments into all four geometry
// buffer channels.
//
//go:embed quad.frag
var QuadFragmentShader string

// MeshVertexShader is the vertex shader for per-mesh indexed draws.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader writes mesh fragments into all four geometry
// buffer channels, sampling the material maps.
//
//go:embed mesh.frag
var MeshFragmentShader string

// FullscreenVertexShader is the shared vertex shader for every
// full-screen pass.
//
//go:embed fullscreen.vert
var FullscreenVertexShader string

// LightBaseFragmentShader writes the ambient and emission terms once
// per pixel before the per-light accumulation.
//
//go:embed light_base.frag
var LightBaseFragmentShader string

// LightPointFragmentShader accumulates one point light's diffuse
// contribution.
//
//go:embed light_point.frag
var LightPointFragmentShader string

// ChannelFragmentShader displays a single geometry buffer channel.
//
//go:embed channel.frag
var ChannelFragmentShader string

// CompositeFragmentShader merges the lit scene and the UI overlay into
// the presented frame.
//
//go:embed composite.frag
var CompositeFragmentShader string

// UIFragmentShader draws textured UI quads into the overlay target.
//
//go:embed ui.frag
var UIFragmentShader string
