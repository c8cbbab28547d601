// Package states implements the application screens and the transitions between them.
package states

import (
	"time"

	"github.com/Faultbox/portfolio-room/internal/assets"
	"github.com/Faultbox/portfolio-room/internal/config"
	"github.com/Faultbox/portfolio-room/internal/engine/loop"
	"github.com/Faultbox/portfolio-room/internal/room"
)

// State represents one screen: the room or a content page.
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every loop iteration before frames are ticked.
	Update(now time.Duration) error

	// Name identifies the state in logs and the window title.
	Name() string
}

// Surface is the window the states present on.
type Surface interface {
	room.Surface
	SetTitle(title string)
}

// Renderer is the drawing backend a state owns while it is active.
type Renderer interface {
	room.Renderer
	ReadPixels() ([]byte, int, int)
}

// Env carries the long-lived collaborators shared by every state.
type Env struct {
	Surface   Surface
	Scheduler *loop.Scheduler
	Assets    *assets.Manager
	Config    *config.Config
	Opener    room.Opener
	States    *Manager

	// NewRenderer creates a renderer on the surface's GL context.
	NewRenderer func() (Renderer, error)
	// Quit asks the application to stop.
	Quit func()
	// Decoders returns fresh decoders for compressed primitives. Each room takes its own
	// set and releases it on exit. May be nil.
	Decoders func() map[string]assets.PrimitiveDecoder

	// Renderer is the renderer of the active state, or nil.
	Renderer Renderer
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the next Update. It is safe to call from inside
// an event handler of the current state.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates the current state.
func (m *Manager) Update(now time.Duration) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(now)
	}
	return nil
}

// Close exits the current state and drops any pending one.
func (m *Manager) Close() error {
	m.next = nil
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}
