package material

import _ "embed"

// RoomVertexShader transforms room-section meshes.
//
//go:embed shaders/room.vert
var RoomVertexShader string

// RoomFragmentShader blends day and night textures.
//
//go:embed shaders/room.frag
var RoomFragmentShader string

// SmokeVertexShader twists and bends the plume.
//
//go:embed shaders/smoke.vert
var SmokeVertexShader string

// SmokeFragmentShader sculpts the plume alpha.
//
//go:embed shaders/smoke.frag
var SmokeFragmentShader string

// GlassVertexShader transforms glass meshes.
//
//go:embed shaders/glass.vert
var GlassVertexShader string

// GlassFragmentShader shades glass from the environment map.
//
//go:embed shaders/glass.frag
var GlassFragmentShader string

// BasicVertexShader is shared by the unlit and lit mesh programs.
//
//go:embed shaders/mesh.vert
var BasicVertexShader string

// BasicFragmentShader draws a flat colour.
//
//go:embed shaders/basic.frag
var BasicFragmentShader string

// StandardFragmentShader applies ambient and directional light to authored materials.
//
//go:embed shaders/standard.frag
var StandardFragmentShader string

//go:embed shaders/line.vert
var LineVertexShader string

//go:embed shaders/line.frag
var LineFragmentShader string
