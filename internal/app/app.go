// Package app wires the window, renderer, asset loading and screens into the main loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/app/states"
	"github.com/Faultbox/portfolio-room/internal/assets"
	"github.com/Faultbox/portfolio-room/internal/config"
	"github.com/Faultbox/portfolio-room/internal/engine/debug"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/engine/lighting"
	"github.com/Faultbox/portfolio-room/internal/engine/loop"
	"github.com/Faultbox/portfolio-room/internal/engine/renderer"
	"github.com/Faultbox/portfolio-room/internal/engine/window"
	"github.com/Faultbox/portfolio-room/internal/logger"
)

// App is the running application.
type App struct {
	cfg     *config.Config
	window  *window.Window
	sched   *loop.Scheduler
	clock   *loop.Clock
	assets  *assets.Manager
	env     *states.Env
	shots   *debug.Snapshots
	keys    *input.Listeners
	running bool

	screenshotPending bool
	log               *zap.Logger
}

// New opens the window and prepares the room. Nothing is loaded until Run.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		sched: loop.New(),
		clock: loop.NewClock(),
		shots: debug.NewSnapshots(cfg.Debug.ScreenshotDir, "room"),
		log:   logger.Named("app"),
	}
	a.log.Info("initializing",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("assets", cfg.Assets.BaseURL),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      states.LoadingTitle,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.assets = assets.NewManager(a.sched, assets.NewSource(cfg.Assets.BaseURL, cfg.Assets.FetchTimeout))
	a.env = &states.Env{
		Surface:     a.window,
		Scheduler:   a.sched,
		Assets:      a.assets,
		Config:      cfg,
		Opener:      NewSystemOpener(),
		States:      states.NewManager(),
		NewRenderer: a.newRenderer,
		Decoders:    newDecoders,
		Quit:        func() { a.running = false },
	}

	a.keys = input.NewListeners(a.window.Events())
	a.keys.On(input.EventKeyDown, func(e input.Event) {
		switch e.Key {
		case input.KeyF11:
			a.window.ToggleFullscreen()
		case input.KeyF12:
			a.screenshotPending = true
		}
	})

	a.env.States.Change(states.NewRoomState(a.env))
	return a, nil
}

// newDecoders gives each room its own Draco decoder; the room's loader closes it.
func newDecoders() map[string]assets.PrimitiveDecoder {
	return map[string]assets.PrimitiveDecoder{assets.DracoExtension: assets.NewDracoDecoder()}
}

func (a *App) newRenderer() (states.Renderer, error) {
	w, h := a.window.Size()
	r, err := renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		PixelRatio: a.window.PixelRatio(),
		Lights:     lighting.DefaultRig(),
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Run drives the main loop until the window closes or a state asks to quit.
func (a *App) Run() error {
	a.running = true
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")
	for a.running {
		if !a.window.Poll() {
			break
		}

		now := a.clock.Elapsed()
		if err := a.env.States.Update(now); err != nil {
			return fmt.Errorf("state %s: %w", a.stateName(), err)
		}
		a.sched.Tick(now)

		if a.screenshotPending {
			a.screenshotPending = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if a.cfg.Debug.LogFPS && time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.String("state", a.stateName()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *App) stateName() string {
	if s := a.env.States.Current(); s != nil {
		return s.Name()
	}
	return "none"
}

func (a *App) screenshot() {
	r := a.env.Renderer
	if r == nil {
		return
	}
	pixels, w, h := r.ReadPixels()
	if pixels == nil {
		return
	}
	path, err := a.shots.Save(debug.Frame{Pixels: pixels, Width: w, Height: h})
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close tears down the active screen and the window.
func (a *App) Close() {
	a.log.Info("closing")
	if err := a.env.States.Close(); err != nil {
		a.log.Warn("closing state", zap.Error(err))
	}
	a.keys.RemoveAll()
	stats := a.assets.Cache().Stats()
	a.log.Info("asset cache",
		zap.Int("entries", a.assets.Cache().Len()),
		zap.Int("hits", stats.Hits),
		zap.Int("shared", stats.Shared),
		zap.Int("misses", stats.Misses),
	)
	if a.window != nil {
		a.window.Close()
	}
}
