package states

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/assets"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/logger"
	"github.com/Faultbox/portfolio-room/internal/room"
)

// LoadingTitle is shown in the window title until the room has loaded.
const LoadingTitle = "Loading room..."

// RoomState shows the interactive room. Each entry builds a fresh controller and each
// exit disposes it.
type RoomState struct {
	env       *Env
	ctrl      *room.Controller
	listeners *input.Listeners
	log       *zap.Logger
}

// NewRoomState creates the room state.
func NewRoomState(env *Env) *RoomState {
	return &RoomState{env: env, log: logger.Named("room-state")}
}

// Name implements State.
func (s *RoomState) Name() string { return "room" }

// Enter implements State.
func (s *RoomState) Enter() error {
	r, err := s.env.NewRenderer()
	if err != nil {
		return fmt.Errorf("creating room renderer: %w", err)
	}
	s.env.Renderer = r
	s.env.Surface.SetTitle(LoadingTitle)

	title := s.env.Config.Window.Title
	var decoders map[string]assets.PrimitiveDecoder
	if s.env.Decoders != nil {
		decoders = s.env.Decoders()
	}
	ctrl, err := room.New(room.Options{
		Surface:   s.env.Surface,
		Renderer:  r,
		Navigator: navigator{s.env},
		Opener:    s.env.Opener,
		Scheduler: s.env.Scheduler,
		Manager:   s.env.Assets,
		Config:    s.env.Config,
		Decoders:  decoders,
		OnLoadComplete: func() {
			s.env.Surface.SetTitle(title)
		},
	})
	if err != nil {
		r.Dispose()
		s.env.Renderer = nil
		return fmt.Errorf("creating room: %w", err)
	}
	s.ctrl = ctrl

	s.listeners = input.NewListeners(s.env.Surface.Events())
	s.listeners.On(input.EventKeyDown, func(e input.Event) {
		if e.Key == input.KeyEscape && s.env.Quit != nil {
			s.env.Quit()
		}
	})
	s.log.Info("entered room")
	return nil
}

// Exit implements State.
func (s *RoomState) Exit() error {
	if s.listeners != nil {
		s.listeners.RemoveAll()
		s.listeners = nil
	}
	if s.ctrl != nil {
		s.ctrl.Dispose()
		s.ctrl = nil
	}
	// The controller disposed the renderer.
	s.env.Renderer = nil
	return nil
}

// Update implements State.
func (s *RoomState) Update(time.Duration) error { return nil }

// Controller returns the active room controller, or nil outside the state.
func (s *RoomState) Controller() *room.Controller {
	return s.ctrl
}

// navigator turns in-app routes into a page state.
type navigator struct {
	env *Env
}

func (n navigator) Push(path string) {
	logger.Info("navigating", zap.String("path", path))
	n.env.States.Change(NewPageState(n.env, path))
}
