package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/portfolio-room/internal/engine/texture"
)

type glTexture struct {
	id      uint32
	version int
}

func (t *glTexture) delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// newBlankTexture creates the 1x1 white texture bound in place of textures that are
// still loading.
func newBlankTexture() uint32 {
	var id uint32
	white := []uint8{255, 255, 255, 255}
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return id
}

// texture returns the GL name for t, or the blank texture while t has no pixels.
func (r *Renderer) texture(t *texture.Texture) uint32 {
	if t == nil || t.Disposed() || !t.Loaded() {
		return r.blank
	}
	gt, ok := r.textures[t]
	if ok && gt.version == t.Version() {
		return gt.id
	}
	if !ok {
		gt = &glTexture{}
		gl.GenTextures(1, &gt.id)
		r.textures[t] = gt
		t.OnDispose(func() { r.releaseTexture(t) })
	}

	gl.BindTexture(gl.TEXTURE_2D, gt.id)
	uploadImage(gl.TEXTURE_2D, t)
	applySampling(gl.TEXTURE_2D, t.Options)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gt.version = t.Version()
	return gt.id
}

func (r *Renderer) releaseTexture(t *texture.Texture) {
	if r.disposed {
		return
	}
	if gt, ok := r.textures[t]; ok {
		gt.delete()
		delete(r.textures, t)
	}
}

// cube returns the GL name for c once all six faces have loaded, or 0.
func (r *Renderer) cube(c *texture.Cube) uint32 {
	if c == nil || c.Disposed() || !c.Loaded() {
		return 0
	}
	gt, ok := r.cubes[c]
	if ok && gt.version == c.Version() {
		return gt.id
	}
	if !ok {
		gt = &glTexture{}
		gl.GenTextures(1, &gt.id)
		r.cubes[c] = gt
		c.OnDispose(func() {
			if r.disposed {
				return
			}
			gt.delete()
			delete(r.cubes, c)
		})
	}

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, gt.id)
	for i, face := range c.Faces {
		uploadImage(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), face)
	}
	applySampling(gl.TEXTURE_CUBE_MAP, texture.Options{})
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gt.version = c.Version()
	return gt.id
}

func uploadImage(target uint32, t *texture.Texture) {
	rgba := texture.RGBA(t.Image(), t.Options.FlipY)
	internal := int32(gl.RGBA8)
	if t.Options.SRGB {
		internal = gl.SRGB8_ALPHA8
	}
	b := rgba.Bounds()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(target, 0, internal, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
}

func applySampling(target uint32, opts texture.Options) {
	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Wrap == texture.Repeat {
		wrap = gl.REPEAT
	}
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, wrap)

	if opts.Nearest {
		gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		return
	}
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}
