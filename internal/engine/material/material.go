// Package material implements the concrete materials drawn by the renderer: the day/night
// room sections, glass, smoke and the small unlit helpers.
package material

import (
	"github.com/Faultbox/portfolio-room/internal/engine/gpu"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
)

// Base carries the name and render state shared by every material.
type Base struct {
	gpu.Resource

	name  string
	state scene.RenderState
}

func newBase(name string) Base {
	return Base{name: name, state: scene.DefaultRenderState()}
}

// Name returns the material name.
func (b *Base) Name() string {
	return b.name
}

// SetName renames the material.
func (b *Base) SetName(name string) {
	b.name = name
}

// State returns the mutable render state.
func (b *Base) State() *scene.RenderState {
	return &b.state
}

// cloneBase copies name and state but not disposal bookkeeping.
func (b *Base) cloneBase() Base {
	return Base{name: b.name, state: b.state}
}

// RGB converts a 0xRRGGBB colour to linear-space floats in [0,1].
func RGB(hex uint32) [3]float32 {
	return [3]float32{
		float32(hex>>16&0xFF) / 255,
		float32(hex>>8&0xFF) / 255,
		float32(hex&0xFF) / 255,
	}
}

// Basic is an unlit flat-colour material.
type Basic struct {
	Base
	Color [3]float32
}

// NewBasic creates an unlit material.
func NewBasic(name string, color uint32) *Basic {
	return &Basic{Base: newBase(name), Color: RGB(color)}
}

// Clone implements scene.Material.
func (m *Basic) Clone() scene.Material {
	return &Basic{Base: m.cloneBase(), Color: m.Color}
}

// Standard is an authored lit material decoded from a model file.
type Standard struct {
	Base
	Color     [4]float32
	Map       *texture.Texture
	Metallic  float32
	Roughness float32
}

// NewStandard creates a white, fully rough lit material.
func NewStandard(name string) *Standard {
	return &Standard{
		Base:      newBase(name),
		Color:     [4]float32{1, 1, 1, 1},
		Roughness: 1,
	}
}

// Clone implements scene.Material. The colour map is shared.
func (m *Standard) Clone() scene.Material {
	c := *m
	c.Base = m.cloneBase()
	return &c
}
