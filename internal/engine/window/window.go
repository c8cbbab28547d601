// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps SDL2 window and OpenGL context. It is also the surface the room draws
// into: it reports its size and pixel ratio, dispatches input and shows the cursor.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	events   *input.Dispatcher
	cursors  map[input.Cursor]*sdl.Cursor
	cursor   input.Cursor
	attached bool

	log *zap.Logger
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config:  cfg,
		events:  input.NewDispatcher(),
		cursors: make(map[input.Cursor]*sdl.Cursor),
		log:     logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	// 4x MSAA stands in for the antialias flag of the original surface
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.cursors[input.CursorDefault] = sdl.CreateSystemCursor(sdl.SYSTEM_CURSOR_ARROW)
	w.cursors[input.CursorPointer] = sdl.CreateSystemCursor(sdl.SYSTEM_CURSOR_HAND)

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	for _, c := range w.cursors {
		if c != nil {
			sdl.FreeCursor(c)
		}
	}
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the current window size in logical pixels.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// PixelRatio returns drawable pixels per logical pixel.
func (w *Window) PixelRatio() float32 {
	ww, _ := w.sdlWindow.GetSize()
	dw, _ := w.sdlWindow.GLGetDrawableSize()
	if ww <= 0 || dw <= 0 {
		return 1
	}
	return float32(dw) / float32(ww)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Events returns the dispatcher fed by Poll.
func (w *Window) Events() *input.Dispatcher {
	return w.events
}

// SetCursor changes the pointer shape shown over the window.
func (w *Window) SetCursor(c input.Cursor) {
	if c == w.cursor {
		return
	}
	w.cursor = c
	if sc := w.cursors[c]; sc != nil {
		sdl.SetCursor(sc)
	}
}

// Cursor returns the current pointer shape.
func (w *Window) Cursor() input.Cursor {
	return w.cursor
}

// Attach hands the drawing surface to a renderer.
func (w *Window) Attach() {
	w.attached = true
}

// Detach takes the drawing surface back, restoring the default cursor.
func (w *Window) Detach() {
	w.attached = false
	w.SetCursor(input.CursorDefault)
}

// Attached reports whether a renderer currently owns the surface.
func (w *Window) Attached() bool {
	return w.attached
}

// ToggleFullscreen switches between windowed and desktop fullscreen.
func (w *Window) ToggleFullscreen() {
	w.config.Fullscreen = !w.config.Fullscreen
	var flags uint32
	if w.config.Fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := w.sdlWindow.SetFullscreen(flags); err != nil {
		w.log.Warn("failed to toggle fullscreen", zap.Error(err))
	}
}

// Poll drains pending SDL events into the dispatcher. It returns false once the user
// asked to quit.
func (w *Window) Poll() bool {
	running := true
	width, height := w.Size()
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		e, ok := translate(ev, width, height)
		if !ok {
			continue
		}
		if e.Type == input.EventQuit {
			running = false
		}
		if e.Type == input.EventWindowResize {
			width, height = e.Width, e.Height
		}
		w.events.Dispatch(e)
	}
	return running
}
