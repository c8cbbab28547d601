package room

import (
	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/engine/camera"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/engine/picking"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
)

// Navigator follows in-app routes.
type Navigator interface {
	Push(path string)
}

// Opener hands URLs to the host. Open shows the URL in a new browsing context and Assign
// replaces the current one.
type Opener interface {
	Open(url string) error
	Assign(url string) error
}

// Interaction tracks the pointer, runs the hover state machine and turns clicks into
// navigation.
type Interaction struct {
	cam      *camera.Perspective
	hitboxes *HitboxTable
	director *Director
	routes   RouteTable
	nav      Navigator
	opener   Opener
	cursor   func(input.Cursor)
	log      *zap.Logger

	ndcX, ndcY float32
	hasPointer bool
	hovered    *scene.Node
	current    input.Cursor
}

// NewInteraction creates an interaction controller with the pointer off screen.
func NewInteraction(cam *camera.Perspective, hitboxes *HitboxTable, director *Director, routes RouteTable,
	nav Navigator, opener Opener, cursor func(input.Cursor), log *zap.Logger) *Interaction {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interaction{
		cam:      cam,
		hitboxes: hitboxes,
		director: director,
		routes:   routes,
		nav:      nav,
		opener:   opener,
		cursor:   cursor,
		log:      log,
	}
}

// SetPointer records the pointer position in window pixels.
func (in *Interaction) SetPointer(x, y float32, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	in.ndcX, in.ndcY = picking.ScreenToNDC(x, y, float32(width), float32(height))
	in.hasPointer = true
}

// Pointer returns the pointer in normalized device coordinates.
func (in *Interaction) Pointer() (x, y float32) {
	return in.ndcX, in.ndcY
}

// Hovered returns the target currently in its hover pose, if any.
func (in *Interaction) Hovered() *scene.Node {
	return in.hovered
}

func (in *Interaction) pick() (*HitboxEntry, bool) {
	if !in.hasPointer || in.hitboxes == nil || in.hitboxes.Len() == 0 {
		return nil, false
	}
	ray := picking.RayFromNDC(in.ndcX, in.ndcY, in.cam.InverseViewProjection())
	hit, ok := picking.Nearest(ray, in.hitboxes.Proxies())
	if !ok {
		return nil, false
	}
	return in.hitboxes.Lookup(hit.Node)
}

// Update picks under the pointer, moves the hover between targets and sets the cursor.
func (in *Interaction) Update() {
	entry, ok := in.pick()
	if !ok {
		in.leave()
		in.setCursor(input.CursorDefault)
		return
	}

	if entry.Target != in.hovered {
		in.leave()
		if entry.Hover {
			in.hovered = entry.Target
			in.director.HoverStart(entry.Target)
		}
	}

	if entry.Pointer {
		in.setCursor(input.CursorPointer)
	} else {
		in.setCursor(input.CursorDefault)
	}
}

func (in *Interaction) leave() {
	if in.hovered == nil {
		return
	}
	in.director.HoverEnd(in.hovered)
	in.hovered = nil
}

func (in *Interaction) setCursor(c input.Cursor) {
	if c == in.current {
		return
	}
	in.current = c
	if in.cursor != nil {
		in.cursor(c)
	}
}

// Reset ends any hover and restores the default cursor.
func (in *Interaction) Reset() {
	in.leave()
	in.hasPointer = false
	in.setCursor(input.CursorDefault)
}

// Click resolves the object under the pointer against the route table and follows it.
// It reports whether a route was followed.
func (in *Interaction) Click() bool {
	entry, ok := in.pick()
	if !ok {
		return false
	}
	route, ok := in.routes.Resolve(entry.Target.Name)
	if !ok {
		return false
	}

	log := in.log.With(zap.String("target", entry.Target.Name), zap.String("route", route.Target))
	switch route.Kind() {
	case RouteDirect:
		if err := in.opener.Assign(route.Target); err != nil {
			log.Warn("failed to assign location", zap.Error(err))
		}
	case RouteExternal:
		if err := in.opener.Open(route.Target); err != nil {
			log.Warn("failed to open url", zap.Error(err))
		}
	default:
		log.Debug("navigating")
		in.nav.Push(route.Target)
	}
	return true
}
