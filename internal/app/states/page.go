package states

import (
	"fmt"
	"time"

	"github.com/Faultbox/portfolio-room/internal/engine/camera"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/engine/loop"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
)

// pageColor is the page background, a lighter tint of the room backdrop.
var pageColor = [3]float32{0.93, 0.94, 0.91}

// PageState stands in for a content page reached from the room. Escape or Backspace
// returns to a freshly built room.
type PageState struct {
	env  *Env
	path string

	renderer  Renderer
	listeners *input.Listeners
	frameID   loop.FrameID
	empty     *scene.Node
	cam       *camera.Perspective
	active    bool
}

// NewPageState creates a page state for path.
func NewPageState(env *Env, path string) *PageState {
	return &PageState{
		env:   env,
		path:  path,
		empty: scene.NewNode("Page", scene.KindGroup),
		cam:   camera.NewPerspective(35, 1, 0.1, 200),
	}
}

// Name implements State.
func (s *PageState) Name() string { return "page " + s.path }

// Path returns the route the page shows.
func (s *PageState) Path() string { return s.path }

// Enter implements State.
func (s *PageState) Enter() error {
	r, err := s.env.NewRenderer()
	if err != nil {
		return fmt.Errorf("creating page renderer: %w", err)
	}
	s.renderer = r
	s.env.Renderer = r
	s.active = true

	w, h := s.env.Surface.Size()
	r.SetClearColor(pageColor)
	r.SetPixelRatio(s.env.Surface.PixelRatio())
	r.SetSize(w, h)
	s.env.Surface.Attach()
	s.env.Surface.SetCursor(input.CursorDefault)
	s.env.Surface.SetTitle(fmt.Sprintf("%s - %s", s.env.Config.Window.Title, s.path))

	s.listeners = input.NewListeners(s.env.Surface.Events())
	s.listeners.On(input.EventKeyDown, func(e input.Event) {
		switch e.Key {
		case input.KeyEscape, input.KeyBackspace:
			s.env.States.Change(NewRoomState(s.env))
		}
	})
	s.listeners.On(input.EventWindowResize, func(e input.Event) {
		s.renderer.SetSize(e.Width, e.Height)
	})
	s.frameID = s.env.Scheduler.Request(s.frame)
	return nil
}

func (s *PageState) frame(time.Duration) {
	if !s.active {
		return
	}
	s.frameID = s.env.Scheduler.Request(s.frame)
	s.renderer.Render(s.empty, s.cam)
}

// Exit implements State.
func (s *PageState) Exit() error {
	s.active = false
	s.env.Scheduler.Cancel(s.frameID)
	if s.listeners != nil {
		s.listeners.RemoveAll()
		s.listeners = nil
	}
	if s.renderer != nil {
		s.renderer.Dispose()
		s.renderer = nil
	}
	s.env.Renderer = nil
	s.env.Surface.Detach()
	return nil
}

// Update implements State.
func (s *PageState) Update(time.Duration) error { return nil }
