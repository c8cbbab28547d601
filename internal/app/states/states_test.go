package states

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/portfolio-room/internal/assets"
	"github.com/Faultbox/portfolio-room/internal/config"
	"github.com/Faultbox/portfolio-room/internal/engine/camera"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/engine/loop"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
)

type recordState struct {
	name  string
	log   *[]string
	fails bool
}

func (s *recordState) Enter() error {
	*s.log = append(*s.log, "enter "+s.name)
	if s.fails {
		return errors.New("enter failed")
	}
	return nil
}

func (s *recordState) Exit() error {
	*s.log = append(*s.log, "exit "+s.name)
	return nil
}

func (s *recordState) Update(time.Duration) error {
	*s.log = append(*s.log, "update "+s.name)
	return nil
}

func (s *recordState) Name() string { return s.name }

func TestManagerTransitions(t *testing.T) {
	var log []string
	m := NewManager()
	a := &recordState{name: "a", log: &log}
	b := &recordState{name: "b", log: &log}

	m.Change(a)
	if m.Current() != nil {
		t.Error("change should wait for Update")
	}
	if err := m.Update(0); err != nil {
		t.Fatal(err)
	}
	m.Change(b)
	if err := m.Update(0); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	want := []string{"enter a", "update a", "exit a", "enter b", "update b", "exit b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
	if m.Current() != nil {
		t.Error("Close should clear the current state")
	}
}

func TestManagerEnterError(t *testing.T) {
	var log []string
	m := NewManager()
	m.Change(&recordState{name: "bad", log: &log, fails: true})
	if err := m.Update(0); err == nil {
		t.Error("enter error should be returned")
	}
}

type fakeSurface struct {
	title    string
	events   *input.Dispatcher
	attached bool
	cursor   input.Cursor
}

func (s *fakeSurface) Size() (int, int)          { return 1280, 800 }
func (s *fakeSurface) PixelRatio() float32       { return 1 }
func (s *fakeSurface) SetCursor(c input.Cursor)  { s.cursor = c }
func (s *fakeSurface) Events() *input.Dispatcher { return s.events }
func (s *fakeSurface) Attach()                   { s.attached = true }
func (s *fakeSurface) Detach()                   { s.attached = false }
func (s *fakeSurface) SetTitle(title string)     { s.title = title }

type fakeRenderer struct {
	renders  int
	disposed bool
}

func (r *fakeRenderer) SetSize(int, int)                        {}
func (r *fakeRenderer) SetPixelRatio(float32)                   {}
func (r *fakeRenderer) SetClearColor([3]float32)                {}
func (r *fakeRenderer) SetOverlay([]float32)                    {}
func (r *fakeRenderer) Render(*scene.Node, *camera.Perspective) { r.renders++ }
func (r *fakeRenderer) Dispose()                                { r.disposed = true }
func (r *fakeRenderer) ReadPixels() ([]byte, int, int)          { return make([]byte, 4), 1, 1 }

type emptySource struct{}

func (emptySource) Open(context.Context, string) ([]byte, error) { return nil, assets.ErrNotFound }
func (emptySource) String() string                               { return "empty" }

type nopOpener struct{}

func (nopOpener) Open(string) error   { return nil }
func (nopOpener) Assign(string) error { return nil }

func newTestEnv() (*Env, *[]*fakeRenderer) {
	sched := loop.New()
	var renderers []*fakeRenderer
	env := &Env{
		Surface:   &fakeSurface{events: input.NewDispatcher()},
		Scheduler: sched,
		Assets:    assets.NewManager(sched, emptySource{}),
		Config:    config.Default(),
		Opener:    nopOpener{},
		States:    NewManager(),
	}
	env.NewRenderer = func() (Renderer, error) {
		r := &fakeRenderer{}
		renderers = append(renderers, r)
		return r, nil
	}
	return env, &renderers
}

func TestRoomToPageAndBack(t *testing.T) {
	env, renderers := newTestEnv()
	surface := env.Surface.(*fakeSurface)

	first := NewRoomState(env)
	env.States.Change(first)
	if err := env.States.Update(0); err != nil {
		t.Fatalf("enter room: %v", err)
	}
	if surface.title != LoadingTitle {
		t.Errorf("title = %q, want loading title", surface.title)
	}
	ctrl := first.Controller()
	if ctrl == nil || env.Renderer != (*renderers)[0] {
		t.Fatal("room should own the first renderer")
	}

	navigator{env}.Push("/about")
	if err := env.States.Update(0); err != nil {
		t.Fatalf("enter page: %v", err)
	}
	page, ok := env.States.Current().(*PageState)
	if !ok || page.Path() != "/about" {
		t.Fatalf("current = %v, want the about page", env.States.Current())
	}
	if !ctrl.Disposed() || !(*renderers)[0].disposed {
		t.Error("leaving the room should dispose it")
	}
	if surface.title != env.Config.Window.Title+" - /about" {
		t.Errorf("page title = %q", surface.title)
	}

	env.Scheduler.Tick(time.Millisecond)
	if (*renderers)[1].renders != 1 {
		t.Error("page should render each frame")
	}

	surface.events.Dispatch(input.Event{Type: input.EventKeyDown, Key: input.KeyBackspace})
	if err := env.States.Update(0); err != nil {
		t.Fatalf("re-enter room: %v", err)
	}
	again, ok := env.States.Current().(*RoomState)
	if !ok || again == first || again.Controller() == ctrl {
		t.Fatal("returning should build a fresh room")
	}
	if !(*renderers)[1].disposed || len(*renderers) != 3 {
		t.Error("page renderer should be released and a new one created for the room")
	}
	if surface.events.Count() == 0 {
		t.Error("new room should listen for input")
	}

	last := again.Controller()
	if err := env.States.Close(); err != nil {
		t.Fatal(err)
	}
	if !last.Disposed() {
		t.Error("closing should dispose the room")
	}
	if surface.events.Count() != 0 {
		t.Errorf("listeners left after close: %d", surface.events.Count())
	}
}

func TestRoomEscapeQuits(t *testing.T) {
	env, _ := newTestEnv()
	quit := false
	env.Quit = func() { quit = true }
	env.States.Change(NewRoomState(env))
	if err := env.States.Update(0); err != nil {
		t.Fatal(err)
	}
	env.Surface.Events().Dispatch(input.Event{Type: input.EventKeyDown, Key: input.KeyEscape})
	if !quit {
		t.Error("escape in the room should quit")
	}
	env.States.Close()
}

func TestRoomRendererError(t *testing.T) {
	env, _ := newTestEnv()
	env.NewRenderer = func() (Renderer, error) { return nil, errors.New("no gl") }
	env.States.Change(NewRoomState(env))
	if err := env.States.Update(0); err == nil {
		t.Error("renderer failure should fail the state")
	}
}

type closeDecoder struct{ closed bool }

func (d *closeDecoder) DecodePrimitive(*gltf.Document, *gltf.Primitive) (*scene.Geometry, error) {
	return scene.NewBoxGeometry(1, 1, 1), nil
}

func (d *closeDecoder) Close() error {
	d.closed = true
	return nil
}

func TestRoomDecodersPerEntry(t *testing.T) {
	env, _ := newTestEnv()
	var made []*closeDecoder
	env.Decoders = func() map[string]assets.PrimitiveDecoder {
		d := &closeDecoder{}
		made = append(made, d)
		return map[string]assets.PrimitiveDecoder{assets.DracoExtension: d}
	}

	env.States.Change(NewRoomState(env))
	if err := env.States.Update(0); err != nil {
		t.Fatal(err)
	}
	navigator{env}.Push("/about")
	if err := env.States.Update(0); err != nil {
		t.Fatal(err)
	}
	if len(made) != 1 || !made[0].closed {
		t.Fatal("leaving the room should close its decoders")
	}

	env.States.Change(NewRoomState(env))
	if err := env.States.Update(0); err != nil {
		t.Fatal(err)
	}
	if len(made) != 2 || made[1].closed {
		t.Error("re-entering should get fresh, open decoders")
	}
	env.States.Close()
	if !made[1].closed {
		t.Error("closing should release the second room's decoders")
	}
}
