package material

import (
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
)

// Glass is a transmissive physical material lit by an environment cube map.
type Glass struct {
	Base
	Color             [3]float32
	SpecularColor     [3]float32
	Transmission      float32
	Metalness         float32
	Roughness         float32
	IOR               float32
	Thickness         float32
	SpecularIntensity float32
	EnvMap            *texture.Cube
	EnvMapIntensity   float32
}

// BuildGlassMaterial creates the shared glass material. env may still be loading.
func BuildGlassMaterial(env *texture.Cube) *Glass {
	g := &Glass{
		Base:              newBase("Glass"),
		Color:             RGB(0xFBFBFB),
		SpecularColor:     RGB(0xFBFBFB),
		Transmission:      1,
		IOR:               3,
		Thickness:         0.01,
		SpecularIntensity: 1,
		EnvMap:            env,
		EnvMapIntensity:   1,
	}
	g.state.DepthWrite = false
	return g
}

// Clone implements scene.Material.
func (m *Glass) Clone() scene.Material {
	c := *m
	c.Base = m.cloneBase()
	return &c
}
