package room

import (
	"strings"

	"github.com/Faultbox/portfolio-room/internal/assets"
	"github.com/Faultbox/portfolio-room/internal/config"
	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
)

// Bank owns the shared materials and the textures behind them.
type Bank struct {
	Mix      *material.Mix
	Sections [4]*material.Room
	Glass    *material.Glass
	Smoke    *material.Smoke

	textures []*texture.Texture
	env      *texture.Cube
}

// NewBank builds the shared materials over textures that may still be loading.
func NewBank(textures material.RoomTextures, env *texture.Cube, noise *texture.Texture) *Bank {
	b := &Bank{Mix: &material.Mix{}, env: env}
	b.Sections = material.BuildRoomMaterials(textures, b.Mix)
	b.Glass = material.BuildGlassMaterial(env)
	b.Smoke = material.BuildSmokeMaterial(noise)
	for _, dn := range textures {
		b.textures = append(b.textures, dn.Day, dn.Night)
	}
	b.textures = append(b.textures, noise)
	return b
}

// Section returns the room material for s, or nil for SectionNone.
func (b *Bank) Section(s material.Section) *material.Room {
	if i := s.Index(); i >= 0 {
		return b.Sections[i]
	}
	return nil
}

// Dispose releases the materials and textures. Safe to call more than once.
func (b *Bank) Dispose() {
	for _, m := range b.Sections {
		if m != nil {
			m.Dispose()
		}
	}
	b.Glass.Dispose()
	b.Smoke.Dispose()
	for _, t := range b.textures {
		if t != nil {
			t.Dispose()
		}
	}
	if b.env != nil {
		for _, f := range b.env.Faces {
			f.Dispose()
		}
		b.env.Dispose()
	}
}

// SkyboxFaces are the environment map files in px, nx, py, ny, pz, nz order.
var SkyboxFaces = [6]string{"px.webp", "nx.webp", "py.webp", "ny.webp", "pz.webp", "nz.webp"}

// TexturePath returns the day or night texture path of a section.
func TexturePath(cfg config.AssetsConfig, s material.Section, night bool) string {
	variant := "day"
	if night {
		variant = "night"
	}
	p := strings.TrimSuffix(cfg.TextureDir, "/") + "/" + variant + "/" + s.FilePrefix() + "_texture_set_" + variant + ".webp"
	if cfg.TextureVersion != "" {
		p += "?" + cfg.TextureVersion
	}
	return p
}

// LoadBank issues every texture request and returns the bank at once. Textures fill in
// as their fetches complete.
func LoadBank(l *assets.Loader, cfg config.AssetsConfig) *Bank {
	roomOpts := texture.Options{SRGB: true}
	var textures material.RoomTextures
	for i, s := range material.Sections {
		textures[i] = material.DayNight{
			Day:   l.LoadTexture(TexturePath(cfg, s, false), roomOpts),
			Night: l.LoadTexture(TexturePath(cfg, s, true), roomOpts),
		}
	}
	env := l.LoadCubeTexture(cfg.SkyboxDir, SkyboxFaces)
	noise := l.LoadTexture(cfg.NoiseTexture, texture.Options{Wrap: texture.Repeat})
	return NewBank(textures, env, noise)
}
