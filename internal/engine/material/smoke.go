package material

import (
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
)

// Smoke is the animated steam plume. Time is advanced once per frame.
type Smoke struct {
	Base
	Time  float32
	Noise *texture.Texture
}

// BuildSmokeMaterial creates the plume material over a tileable noise texture.
func BuildSmokeMaterial(noise *texture.Texture) *Smoke {
	s := &Smoke{Base: newBase("Smoke"), Noise: noise}
	s.state.Side = scene.DoubleSide
	s.state.Transparent = true
	s.state.DepthWrite = false
	return s
}

// Clone implements scene.Material.
func (m *Smoke) Clone() scene.Material {
	c := *m
	c.Base = m.cloneBase()
	return &c
}
