package room

import (
	"testing"
	"time"

	"github.com/Faultbox/portfolio-room/internal/config"
	"github.com/Faultbox/portfolio-room/internal/engine/camera"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

type fakeNavigator struct {
	pushed []string
}

func (n *fakeNavigator) Push(path string) { n.pushed = append(n.pushed, path) }

type fakeOpener struct {
	opened, assigned []string
}

func (o *fakeOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return nil
}

func (o *fakeOpener) Assign(url string) error {
	o.assigned = append(o.assigned, url)
	return nil
}

type interactionFixture struct {
	in      *Interaction
	asm     *Assembly
	dir     *Director
	nav     *fakeNavigator
	opener  *fakeOpener
	cursors []input.Cursor
}

// newInteractionFixture places the room's children at the origin in front of a camera
// looking down -Z from z=10.
func newInteractionFixture(t *testing.T, routes []config.RouteConfig, nodes ...*scene.Node) *interactionFixture {
	t.Helper()
	bank := testBank()
	asm := Assemble(group("Scene", nodes...), bank)

	cam := camera.NewPerspective(35, 1, 0.1, 200)
	cam.Position = math.Vec3{Z: 10}
	cam.Target = math.Vec3{}

	f := &interactionFixture{asm: asm, nav: &fakeNavigator{}, opener: &fakeOpener{}}
	f.dir = NewDirector(asm, bank, nil, time.Second)
	f.in = NewInteraction(cam, asm.Hitboxes, f.dir, RoutesFromConfig(routes), f.nav, f.opener,
		func(c input.Cursor) { f.cursors = append(f.cursors, c) }, nil)
	return f
}

func (f *interactionFixture) pointAtCentre() { f.in.SetPointer(50, 50, 100, 100) }
func (f *interactionFixture) pointAtCorner() { f.in.SetPointer(1, 1, 100, 100) }

func TestClickInternalRoute(t *testing.T) {
	f := newInteractionFixture(t, config.DefaultRoutes(), box("About_Button_Hover_Raycaster_Pointer", 1, math.Vec3{}))

	f.pointAtCentre()
	if !f.in.Click() {
		t.Fatal("click on the about button should follow a route")
	}
	if len(f.nav.pushed) != 1 || f.nav.pushed[0] != "/about" {
		t.Errorf("pushed = %v, want [/about]", f.nav.pushed)
	}
	if len(f.opener.opened)+len(f.opener.assigned) != 0 {
		t.Error("internal route should not reach the opener")
	}
}

func TestClickExternalRoute(t *testing.T) {
	github := group("GitHub_Hover_Raycaster_Pointer",
		box("GitHub_Icon_Backing", 1, math.Vec3{}),
		box("GitHub_Icon_Logo", 0.5, math.Vec3{Z: 0.2}),
	)
	f := newInteractionFixture(t, config.DefaultRoutes(), github)

	f.pointAtCentre()
	f.in.Click()
	if len(f.opener.opened) != 1 || f.opener.opened[0] != "https://github.com/dannywillowliu-uchi" {
		t.Errorf("opened = %v", f.opener.opened)
	}
	if len(f.nav.pushed) != 0 || len(f.opener.assigned) != 0 {
		t.Error("external route should only open a new context")
	}
}

func TestClickMailto(t *testing.T) {
	routes := []config.RouteConfig{{Tag: "Contact_Button", Route: "mailto:hello@example.com", External: true}}
	f := newInteractionFixture(t, routes, box("Contact_Button_Hover_Raycaster_Pointer", 1, math.Vec3{}))

	f.pointAtCentre()
	f.in.Click()
	if len(f.opener.assigned) != 1 || len(f.opener.opened) != 0 {
		t.Errorf("mailto should replace the location: assigned %v opened %v", f.opener.assigned, f.opener.opened)
	}
}

func TestClickMisses(t *testing.T) {
	f := newInteractionFixture(t, config.DefaultRoutes(),
		box("About_Button_Hover_Raycaster_Pointer", 1, math.Vec3{}))

	if f.in.Click() {
		t.Error("click without a pointer should do nothing")
	}
	f.pointAtCorner()
	if f.in.Click() {
		t.Error("click on empty space should do nothing")
	}

	g := newInteractionFixture(t, config.DefaultRoutes(), box("Bulb_Raycaster_Pointer", 1, math.Vec3{}))
	g.pointAtCentre()
	if g.in.Click() {
		t.Error("hit without a route should do nothing")
	}
	if len(f.nav.pushed)+len(g.nav.pushed) != 0 {
		t.Error("nothing should navigate")
	}
}

func TestHoverStateMachine(t *testing.T) {
	f := newInteractionFixture(t, config.DefaultRoutes(), box("About_Button_Hover_Raycaster_Pointer", 1, math.Vec3{}))
	about := f.asm.Root.Find("About_Button_Hover_Raycaster_Pointer")

	f.pointAtCentre()
	f.in.Update()
	if f.in.Hovered() != about {
		t.Fatal("pointer over the button should hover it")
	}
	tw, ok := f.dir.Tweens().Active(about, ChannelScale)
	if !ok || tw.Duration != 500*time.Millisecond {
		t.Error("hover start should tween the scale up")
	}
	if len(f.cursors) != 1 || f.cursors[0] != input.CursorPointer {
		t.Errorf("cursors = %v, want [pointer]", f.cursors)
	}

	f.in.Update()
	if len(f.cursors) != 1 {
		t.Error("cursor should only be set when it changes")
	}

	f.pointAtCorner()
	f.in.Update()
	if f.in.Hovered() != nil {
		t.Error("leaving should clear the hover")
	}
	tw, ok = f.dir.Tweens().Active(about, ChannelScale)
	if !ok || tw.Duration != 300*time.Millisecond || tw.To != f.asm.Baselines[about].Scale {
		t.Errorf("hover end should tween back to the baseline, got %+v", tw)
	}
	if f.cursors[len(f.cursors)-1] != input.CursorDefault {
		t.Error("cursor should return to default")
	}
}

func TestHoverIgnoresNonHoverTargets(t *testing.T) {
	f := newInteractionFixture(t, config.DefaultRoutes(), box("Bulb_Raycaster_Pointer", 1, math.Vec3{}))

	f.pointAtCentre()
	f.in.Update()
	if f.in.Hovered() != nil {
		t.Error("a target without the hover tag should not hover")
	}
	if f.dir.Tweens().Len() != 0 {
		t.Error("no hover tweens expected")
	}
	if len(f.cursors) != 1 || f.cursors[0] != input.CursorPointer {
		t.Errorf("pointer tag should still set the cursor, got %v", f.cursors)
	}
}

func TestResetEndsHover(t *testing.T) {
	f := newInteractionFixture(t, config.DefaultRoutes(), box("About_Button_Hover_Raycaster_Pointer", 1, math.Vec3{}))
	f.pointAtCentre()
	f.in.Update()

	f.in.Reset()
	if f.in.Hovered() != nil || f.cursors[len(f.cursors)-1] != input.CursorDefault {
		t.Error("Reset should end the hover and restore the cursor")
	}
	f.in.Update()
	if f.in.Hovered() != nil {
		t.Error("pointer should be forgotten after Reset")
	}
}
