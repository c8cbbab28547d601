// Package renderer draws a scene graph with OpenGL.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/portfolio-room/internal/engine/camera"
	"github.com/Faultbox/portfolio-room/internal/engine/lighting"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
	"github.com/Faultbox/portfolio-room/internal/logger"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	PixelRatio float32
	ClearColor [3]float32
	Lights     lighting.Rig
}

// Renderer handles all OpenGL rendering. GPU copies of geometries and textures are
// created on first use and released when their owner is disposed.
type Renderer struct {
	config Config

	programs *programs
	meshes   map[*scene.Geometry]*meshBuffers
	textures map[*texture.Texture]*glTexture
	cubes    map[*texture.Cube]*glTexture
	blank    uint32

	lines   lineBuffer
	overlay []float32

	drawCalls int
	disposed  bool
	log       *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	r := &Renderer{
		config:   cfg,
		meshes:   make(map[*scene.Geometry]*meshBuffers),
		textures: make(map[*texture.Texture]*glTexture),
		cubes:    make(map[*texture.Cube]*glTexture),
		log:      logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	var err error
	if r.programs, err = newPrograms(); err != nil {
		return nil, err
	}
	r.blank = newBlankTexture()
	r.viewport()

	return r, nil
}

// SetSize updates the logical drawing size.
func (r *Renderer) SetSize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.viewport()
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetPixelRatio sets the device pixel ratio. Callers apply any cap.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.config.PixelRatio = ratio
	r.viewport()
}

// SetClearColor sets the background colour.
func (r *Renderer) SetClearColor(rgb [3]float32) {
	r.config.ClearColor = rgb
}

// SetOverlay replaces the debug line list drawn over the scene. Vertices are world
// space xyz triples, two per segment.
func (r *Renderer) SetOverlay(vertices []float32) {
	r.overlay = vertices
}

// DrawingBufferSize returns the framebuffer size in pixels.
func (r *Renderer) DrawingBufferSize() (int, int) {
	return int(float32(r.config.Width) * r.config.PixelRatio), int(float32(r.config.Height) * r.config.PixelRatio)
}

func (r *Renderer) viewport() {
	if r.disposed {
		return
	}
	w, h := r.DrawingBufferSize()
	gl.Viewport(0, 0, int32(w), int32(h))
}

// DrawCalls returns the number of meshes drawn in the last frame.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}

// Render draws the scene from the camera.
func (r *Renderer) Render(root *scene.Node, cam *camera.Perspective) {
	if r.disposed {
		return
	}
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.drawCalls = 0
	if root == nil || cam == nil {
		return
	}

	f := frame{
		view:       cam.ViewMatrix(),
		projection: cam.ProjectionMatrix(),
		eye:        cam.Position,
		lights:     r.config.Lights,
	}
	for _, item := range collect(root, cam.Position) {
		if r.draw(item, &f) {
			r.drawCalls++
		}
	}

	if len(r.overlay) > 0 {
		r.drawOverlay(f.projection.Mul(f.view))
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

type frame struct {
	view       math.Mat4
	projection math.Mat4
	eye        math.Vec3
	lights     lighting.Rig
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.DrawingBufferSize()
	if r.disposed || w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Dispose releases every GPU object the renderer created. The renderer draws nothing
// afterwards. Calling it more than once is a no-op.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.log.Info("disposing renderer",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("textures", len(r.textures)+len(r.cubes)),
	)
	for g, mb := range r.meshes {
		mb.delete()
		delete(r.meshes, g)
	}
	for t, gt := range r.textures {
		gt.delete()
		delete(r.textures, t)
	}
	for c, gt := range r.cubes {
		gt.delete()
		delete(r.cubes, c)
	}
	if r.blank != 0 {
		gl.DeleteTextures(1, &r.blank)
		r.blank = 0
	}
	r.lines.delete()
	r.programs.delete()
	r.overlay = nil
	r.disposed = true
}

// Disposed reports whether Dispose has been called.
func (r *Renderer) Disposed() bool {
	return r.disposed
}
