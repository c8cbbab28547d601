// Package texture provides image-backed textures and the decoding used to fill them.
package texture

import (
	"image"

	"github.com/Faultbox/portfolio-room/internal/engine/gpu"
)

// Wrap selects the texture coordinate wrapping mode.
type Wrap int

const (
	ClampToEdge Wrap = iota
	Repeat
)

// Options control how a texture is sampled and uploaded.
type Options struct {
	// FlipY flips rows on upload. glTF and the room texture sets are authored top-down
	// and keep FlipY false.
	FlipY bool
	// SRGB marks colour data that is stored gamma encoded.
	SRGB bool
	// Nearest disables linear filtering.
	Nearest bool
	Wrap    Wrap
}

// Texture is a 2D image that may be bound before its pixels arrive. Until SetImage is
// called the renderer treats it as absent.
type Texture struct {
	gpu.Resource

	Name    string
	Options Options

	image   image.Image
	version int
}

// New creates an empty texture.
func New(name string, opts Options) *Texture {
	return &Texture{Name: name, Options: opts}
}

// FromImage creates a texture that is already loaded.
func FromImage(name string, img image.Image, opts Options) *Texture {
	t := New(name, opts)
	t.SetImage(img)
	return t
}

// SetImage supplies the pixel data. Calls after Dispose are ignored.
func (t *Texture) SetImage(img image.Image) {
	if t.Disposed() {
		return
	}
	t.image = img
	t.version++
}

// Image returns the decoded image or nil while loading.
func (t *Texture) Image() image.Image {
	return t.image
}

// Loaded reports whether pixel data is available.
func (t *Texture) Loaded() bool {
	return t.image != nil
}

// Version increments every time the image changes.
func (t *Texture) Version() int {
	return t.version
}

// Size returns the image dimensions or zero while loading.
func (t *Texture) Size() (width, height int) {
	if t.image == nil {
		return 0, 0
	}
	b := t.image.Bounds()
	return b.Dx(), b.Dy()
}

// CubeFaces lists the cube map faces in upload order.
var CubeFaces = [6]string{"px", "nx", "py", "ny", "pz", "nz"}

// Cube is a six-face environment map. Each face loads independently.
type Cube struct {
	gpu.Resource

	Name  string
	Faces [6]*Texture
}

// NewCube creates a cube map with empty faces.
func NewCube(name string) *Cube {
	c := &Cube{Name: name}
	for i, face := range CubeFaces {
		c.Faces[i] = New(name+"/"+face, Options{SRGB: true})
	}
	return c
}

// Loaded reports whether every face has pixel data.
func (c *Cube) Loaded() bool {
	for _, f := range c.Faces {
		if f == nil || !f.Loaded() {
			return false
		}
	}
	return true
}

// Version changes whenever any face changes.
func (c *Cube) Version() int {
	v := 0
	for _, f := range c.Faces {
		if f != nil {
			v += f.Version()
		}
	}
	return v
}
