package room

import (
	"strings"

	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Placement corrections for objects authored slightly off in the model.
var (
	fishOffset = math.Vec3{X: 0.04, Z: -0.03}
	tftOffset  = math.Vec3{Y: -0.45, Z: -0.05}
)

const (
	backingSize   = 0.55
	backingOffset = 0.01
	smokeLift     = 0.2
	smokeDefaultY = 1.83
)

// Baseline is a node's rest transform, the state every tween returns to.
type Baseline struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// Assembly is everything derived from one pass over the loaded model.
type Assembly struct {
	Root      *scene.Node
	Classes   map[*scene.Node]Class
	Baselines map[*scene.Node]Baseline
	Hitboxes  *HitboxTable
	Intro     map[string]*scene.Node

	XFans, YFans []*scene.Node
	Fish         *scene.Node
	ChairTop     *scene.Node
	HourHand     *scene.Node
	MinuteHand   *scene.Node
	Smoke        *scene.Node
	TFTBacking   *scene.Node

	// Extras are nodes that live beside the model rather than inside it: box hitboxes
	// and the smoke plume.
	Extras []*scene.Node
	// Replaced are authored materials that were swapped out and are no longer drawn.
	Replaced []scene.Material

	bank   *Bank
	groups []*scene.Node
}

// Assemble classifies every node of root once and builds the hitboxes, animation
// registry, material assignment, TFT backing and smoke plume.
func Assemble(root *scene.Node, bank *Bank) *Assembly {
	a := &Assembly{
		Root:      root,
		Classes:   make(map[*scene.Node]Class),
		Baselines: make(map[*scene.Node]Baseline),
		Hitboxes:  NewHitboxTable(),
		Intro:     make(map[string]*scene.Node),
		bank:      bank,
	}

	var (
		coffee  *math.Vec3
		tft     *scene.Node
		backing scene.Material
		inGroup = make(map[*scene.Node]bool)
	)

	root.Traverse(func(n *scene.Node) {
		c := Classify(n.Name, n.Kind)
		a.Classes[n] = c

		if c.IconGroup {
			a.groups = append(a.groups, n)
			inGroup[n] = true
			a.capture(n, c)
			return
		}
		grouped := n.Parent() != nil && inGroup[n.Parent()]
		if grouped {
			inGroup[n] = true
		}
		if !n.IsMesh() {
			return
		}

		if !grouped {
			a.special(n, c)
		}
		if c.Baseline {
			a.capture(n, c)
		}
		if c.Coffee {
			p := n.Position
			coffee = &p
		}
		a.applyMaterial(n, c)

		if c.Icon == IconTFT {
			tft = n
		}
		if backing == nil && grouped {
			if m := n.Material(); m != nil && strings.Contains(m.Name(), "Backing") {
				backing = m
			}
		}
		if !grouped {
			a.interactive(n, c)
		}
	})

	for _, g := range a.groups {
		a.groupInteractive(g)
	}
	if tft != nil {
		a.TFTBacking = synthesizeBacking(root, tft, backing)
	}
	a.Smoke = newSmoke(bank.Smoke, coffee)
	a.Baselines[a.Smoke] = Baseline{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
	a.Extras = append(a.Extras, a.Smoke)
	return a
}

func (a *Assembly) capture(n *scene.Node, c Class) {
	b := Baseline{Position: n.Position, Rotation: n.Rotation, Scale: n.Scale}
	if c.Intro != "" {
		// Intro objects are authored near zero and scaled up to unit size.
		b.Scale = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	a.Baselines[n] = b
}

// special records the distinguished nodes and fixes known misplacements.
func (a *Assembly) special(n *scene.Node, c Class) {
	if c.Fish && a.Fish == nil {
		n.Position = n.Position.Add(fishOffset)
		a.Fish = n
	}
	if c.ChairTop && a.ChairTop == nil {
		a.ChairTop = n
	}
	switch c.Hand {
	case HandHour:
		if a.HourHand == nil {
			a.HourHand = n
		}
	case HandMinute:
		if a.MinuteHand == nil {
			a.MinuteHand = n
		}
	}
	switch c.Fan {
	case FanX:
		a.XFans = append(a.XFans, n)
	case FanY:
		a.YFans = append(a.YFans, n)
	}
	if c.Icon == IconTFT {
		n.Position = n.Position.Add(tftOffset)
	}
	if c.Intro != "" {
		if _, taken := a.Intro[c.Intro]; !taken {
			a.Intro[c.Intro] = n
		}
	}
}

func (a *Assembly) applyMaterial(n *scene.Node, c Class) {
	var m scene.Material
	switch c.Surface {
	case SurfaceWater:
		m = material.NewWaterMaterial()
	case SurfaceGlass:
		m = a.bank.Glass
	case SurfaceBubble:
		m = material.NewBubbleMaterial()
	case SurfaceRoom:
		if r := a.bank.Section(c.Section); r != nil {
			m = r
		}
	}
	if m == nil {
		return
	}
	a.Replaced = append(a.Replaced, n.Materials...)
	n.SetMaterial(m)
}

func (a *Assembly) interactive(n *scene.Node, c Class) {
	var proxy *scene.Node
	switch c.Hitbox {
	case HitboxNone:
		return
	case HitboxSelf:
		proxy = n
	default:
		proxy = NewBoxHitbox(n, c.Hitbox == HitboxRotated)
		if proxy == nil {
			return
		}
	}
	if !a.Hitboxes.Register(proxy, n) {
		return
	}
	if proxy != n {
		a.Extras = append(a.Extras, proxy)
	}
}

func (a *Assembly) groupInteractive(g *scene.Node) {
	proxy := NewBoxHitbox(g, false)
	if proxy == nil || !a.Hitboxes.Register(proxy, g) {
		return
	}
	a.Extras = append(a.Extras, proxy)

	key := a.Classes[g].Intro
	if _, taken := a.Intro[key]; key != "" && !taken {
		a.Intro[key] = g
	}
}

// synthesizeBacking adds a tile behind the TFT icon matching the other icons, which
// carry their own backing primitive.
func synthesizeBacking(root, tft *scene.Node, backing scene.Material) *scene.Node {
	var mat scene.Material
	if backing != nil {
		mat = backing.Clone()
		mat.State().Side = scene.DoubleSide
	} else {
		mat = material.NewBackingFallback()
	}

	pos := tft.WorldPosition()
	rot := tft.WorldQuaternion()
	behind := rot.Rotate(math.Vec3{Z: -1}).Scale(backingOffset)

	plane := scene.NewMesh("TFT_Backing", scene.NewPlaneGeometry(backingSize, backingSize, 1, 1), mat)
	plane.Position = pos.Add(behind)
	plane.Rotation = rot.Euler()
	root.Add(plane)
	return plane
}

func newSmoke(mat scene.Material, coffee *math.Vec3) *scene.Node {
	geom := scene.NewPlaneGeometry(1, 1, 16, 64)
	geom.Translate(0, 0.5, 0)
	geom.ScaleBy(0.33, 1, 0.33)

	smoke := scene.NewMesh("Smoke", geom, mat)
	if coffee != nil {
		smoke.Position = coffee.Add(math.Vec3{Y: smokeLift})
	} else {
		smoke.Position.Y = smokeDefaultY
	}
	return smoke
}

// Proxies returns the pickable hitbox nodes.
func (a *Assembly) Proxies() []*scene.Node {
	return a.Hitboxes.Proxies()
}
