package room

import (
	"errors"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/assets"
	"github.com/Faultbox/portfolio-room/internal/config"
	"github.com/Faultbox/portfolio-room/internal/engine/camera"
	"github.com/Faultbox/portfolio-room/internal/engine/debug"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/engine/loop"
	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/logger"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Camera placement and orbit limits.
const (
	cameraFOV  = 35
	cameraNear = 0.1
	cameraFar  = 200

	orbitMinDistance = 5
	orbitMaxDistance = 45
	orbitDamping     = 0.05
)

var (
	narrowCamera = cameraPose{
		position: math.Vec3{X: 29.57, Y: 14.02, Z: 31.37},
		target:   math.Vec3{X: -0.08, Y: 3.31, Z: -0.74},
	}
	wideCamera = cameraPose{
		position: math.Vec3{X: 17.49, Y: 9.11, Z: 17.85},
		target:   math.Vec3{X: 0.46, Y: 1.97, Z: -0.83},
	}
)

type cameraPose struct {
	position, target math.Vec3
}

// Surface is where the room is presented: a window with a GL context and input events.
type Surface interface {
	Size() (width, height int)
	PixelRatio() float32
	SetCursor(input.Cursor)
	Events() *input.Dispatcher
	Attach()
	Detach()
}

// Renderer draws the scene onto the surface.
type Renderer interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
	SetClearColor(rgb [3]float32)
	SetOverlay(vertices []float32)
	Render(root *scene.Node, cam *camera.Perspective)
	Dispose()
}

// Options configures a Controller.
type Options struct {
	Surface   Surface
	Renderer  Renderer
	Navigator Navigator
	Opener    Opener
	Scheduler *loop.Scheduler
	Manager   *assets.Manager
	Config    *config.Config

	// Decoders handle compressed primitives, keyed by glTF extension name. They are
	// released when the controller is disposed.
	Decoders map[string]assets.PrimitiveDecoder
	// OnLoadComplete runs once, after the model is assembled and the intro has started.
	OnLoadComplete func()
	// Now supplies the time shown by the wall clock. Defaults to time.Now.
	Now func() time.Time
}

// Controller owns the room scene: it loads and assembles the model, drives the frame
// loop and input, and tears everything down on Dispose.
type Controller struct {
	surface   Surface
	renderer  Renderer
	sched     *loop.Scheduler
	loader    *assets.Loader
	cfg       *config.Config
	listeners *input.Listeners
	log       *zap.Logger

	world       *scene.Node
	cam         *camera.Perspective
	controls    *camera.OrbitControls
	bank        *Bank
	asm         *Assembly
	director    *Director
	interaction *Interaction

	onLoad      func()
	frameID     loop.FrameID
	frames      int
	touchActive bool
	hitboxes    bool
	loaded      bool
	loadErr     error
	disposed    bool
}

// New builds the room on opts.Surface and starts loading. The frame loop runs from the
// first scheduler tick; the model appears when its load completes.
func New(opts Options) (*Controller, error) {
	if opts.Surface == nil || opts.Renderer == nil || opts.Scheduler == nil || opts.Manager == nil {
		return nil, errors.New("room: surface, renderer, scheduler and manager are required")
	}
	if opts.Navigator == nil || opts.Opener == nil {
		return nil, errors.New("room: navigator and opener are required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Controller{
		surface:  opts.Surface,
		renderer: opts.Renderer,
		sched:    opts.Scheduler,
		cfg:      cfg,
		log:      logger.Named("room"),
		world:    scene.NewNode("World", scene.KindGroup),
		onLoad:   opts.OnLoadComplete,
		hitboxes: cfg.Debug.ShowHitboxes,
	}

	width, height := c.surface.Size()
	c.setupRenderer(width, height)
	c.setupCamera(width, height)

	c.loader = assets.NewLoader(opts.Manager)
	for ext, d := range opts.Decoders {
		c.loader.RegisterDecoder(ext, d)
	}
	c.bank = LoadBank(c.loader, cfg.Assets)
	if cfg.Scene.Night {
		c.bank.Mix.Ratio = 1
	}
	c.director = NewDirector(nil, c.bank, opts.Now, cfg.Scene.NightTransition)
	c.interaction = NewInteraction(c.cam, nil, c.director, RoutesFromConfig(cfg.Routes),
		opts.Navigator, opts.Opener, c.surface.SetCursor, c.log)

	c.log.Info("loading room", zap.String("model", cfg.Assets.Model))
	c.loader.LoadModelAsync(cfg.Assets.Model, c.onModel)

	c.listen()
	c.frameID = c.sched.Request(c.frame)
	return c, nil
}

func (c *Controller) setupRenderer(width, height int) {
	bg, err := c.cfg.Scene.BackgroundRGB()
	if err != nil {
		c.log.Warn("invalid background colour", zap.String("background", c.cfg.Scene.Background), zap.Error(err))
	} else {
		c.renderer.SetClearColor(bg)
	}
	c.renderer.SetPixelRatio(c.pixelRatio())
	c.renderer.SetSize(width, height)
	c.surface.Attach()
}

func (c *Controller) pixelRatio() float32 {
	ratio := c.surface.PixelRatio()
	if limit := c.cfg.Window.MaxPixelRatio; limit > 0 {
		ratio = min(ratio, limit)
	}
	return ratio
}

func (c *Controller) setupCamera(width, height int) {
	c.cam = camera.NewPerspective(cameraFOV, 1, cameraNear, cameraFar)
	c.cam.SetAspect(width, height)

	pose := wideCamera
	if width < c.cfg.Scene.NarrowWidth {
		pose = narrowCamera
	}
	c.cam.Position = pose.position
	c.cam.Target = pose.target

	c.controls = camera.NewOrbitControls(c.cam)
	c.controls.Limits = camera.OrbitLimits{
		MinDistance:     orbitMinDistance,
		MaxDistance:     orbitMaxDistance,
		MinPolarAngle:   0,
		MaxPolarAngle:   gomath.Pi / 2,
		MinAzimuthAngle: 0,
		MaxAzimuthAngle: gomath.Pi / 2,
	}
	c.controls.EnableDamping = true
	c.controls.DampingFactor = orbitDamping
	c.controls.EnablePan = false
	c.controls.SetViewport(width, height)
	c.controls.Update()
	c.controls.Connect(c.surface.Events())
}

func (c *Controller) listen() {
	l := input.NewListeners(c.surface.Events())
	l.On(input.EventWindowResize, func(e input.Event) { c.resize(e.Width, e.Height) })
	l.On(input.EventMouseMove, func(e input.Event) {
		w, h := c.surface.Size()
		c.interaction.SetPointer(e.MouseX, e.MouseY, w, h)
	})
	l.On(input.EventMouseUp, func(e input.Event) {
		if e.Button != input.ButtonLeft {
			return
		}
		w, h := c.surface.Size()
		c.interaction.SetPointer(e.MouseX, e.MouseY, w, h)
		c.interaction.Click()
	})
	l.On(input.EventTouchStart, func(e input.Event) {
		w, h := c.surface.Size()
		c.interaction.SetPointer(e.MouseX, e.MouseY, w, h)
		c.touchActive = true
	})
	l.On(input.EventTouchEnd, func(input.Event) {
		if !c.touchActive {
			return
		}
		c.touchActive = false
		c.interaction.Click()
	})
	l.On(input.EventPointerLeave, func(input.Event) {
		c.touchActive = false
		c.interaction.Reset()
	})
	l.On(input.EventKeyDown, func(e input.Event) {
		switch e.Key {
		case input.KeyN:
			c.director.ToggleNight()
			c.log.Debug("toggled night", zap.Bool("night", c.director.Night()))
		case input.KeyH:
			c.hitboxes = !c.hitboxes
			if !c.hitboxes {
				c.renderer.SetOverlay(nil)
			}
		}
	})
	c.listeners = l
}

func (c *Controller) resize(width, height int) {
	if c.disposed || width <= 0 || height <= 0 {
		return
	}
	c.cam.SetAspect(width, height)
	c.controls.SetViewport(width, height)
	c.renderer.SetPixelRatio(c.pixelRatio())
	c.renderer.SetSize(width, height)
}

func (c *Controller) frame(now time.Duration) {
	if c.disposed {
		return
	}
	c.frameID = c.sched.Request(c.frame)

	c.director.Update(now)
	c.controls.Update()
	c.interaction.Update()
	if c.hitboxes && c.asm != nil {
		c.renderer.SetOverlay(debug.HitboxWireframe(c.asm.Proxies()))
	}
	c.renderer.Render(c.world, c.cam)
	c.frames++
}

func (c *Controller) onModel(root *scene.Node, err error) {
	if c.disposed {
		scene.Dispose(root)
		return
	}
	if err != nil {
		c.loadErr = err
		c.log.Error("failed to load room model", zap.String("model", c.cfg.Assets.Model), zap.Error(err))
		return
	}

	asm := Assemble(root, c.bank)
	c.asm = asm
	c.world.Add(root)
	for _, n := range asm.Extras {
		c.world.Add(n)
	}
	c.director.attach(asm)
	c.interaction.hitboxes = asm.Hitboxes
	c.log.Info("room assembled",
		zap.Int("hitboxes", asm.Hitboxes.Len()),
		zap.Int("intro", len(asm.Intro)))

	if legacy := c.cfg.Assets.LegacyModel; legacy != "" {
		box := ReferenceBounds(root)
		if box.IsEmpty() {
			c.log.Warn("no reference sections for wall patch")
		} else {
			c.loader.LoadModelAsync(legacy, func(n *scene.Node, err error) { c.onLegacy(n, box, err) })
		}
	}

	c.director.PlayIntro()
	c.loaded = true
	if c.onLoad != nil {
		c.onLoad()
	}
}

func (c *Controller) onLegacy(legacy *scene.Node, box math.Box3, err error) {
	if err != nil {
		c.log.Warn("wall patch skipped", zap.String("model", c.cfg.Assets.LegacyModel), zap.Error(err))
		return
	}
	defer scene.Dispose(legacy)
	if c.disposed {
		return
	}
	patched := PatchMissingSection(legacy, box, c.bank.Section(material.SectionSecond))
	for _, n := range patched {
		c.world.Add(n)
	}
	c.log.Debug("patched missing wall", zap.Int("meshes", len(patched)))
}

// Loaded reports whether the model has been assembled.
func (c *Controller) Loaded() bool {
	return c.loaded
}

// LoadError returns the error that stopped the model from loading, if any.
func (c *Controller) LoadError() error {
	return c.loadErr
}

// World returns the root of everything drawn.
func (c *Controller) World() *scene.Node {
	return c.world
}

// Assembly returns the assembled model, or nil before it loads.
func (c *Controller) Assembly() *Assembly {
	return c.asm
}

// Director returns the animation director.
func (c *Controller) Director() *Director {
	return c.director
}

// Interaction returns the pointer and hover controller.
func (c *Controller) Interaction() *Interaction {
	return c.interaction
}

// Camera returns the room camera.
func (c *Controller) Camera() *camera.Perspective {
	return c.cam
}

// Frames returns the number of frames rendered.
func (c *Controller) Frames() int {
	return c.frames
}

// Dispose stops the frame loop, removes every listener, releases the loader and all GPU
// resources, and detaches from the surface. Later calls do nothing.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	c.sched.Cancel(c.frameID)
	c.listeners.RemoveAll()
	c.controls.Dispose()
	c.loader.Close()

	scene.Dispose(c.world)
	if c.asm != nil {
		for _, m := range c.asm.Replaced {
			m.Dispose()
		}
	}
	c.bank.Dispose()

	c.renderer.Dispose()
	c.surface.Detach()
	c.log.Info("room disposed", zap.Int("frames", c.frames))
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	return c.disposed
}
