package room

import (
	gomath "math"

	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Hitbox proxies are enlarged from the target's world bounds by these factors.
var hitboxPadding = math.Vec3{X: 1.1, Y: 1.75, Z: 1.1}

// HitboxEntry pairs a pickable proxy with the logical object it stands for.
type HitboxEntry struct {
	Proxy  *scene.Node
	Target *scene.Node
	// Hover and Pointer are read from the proxy name when the entry is registered.
	Hover   bool
	Pointer bool
}

// HitboxTable maps proxies to targets one to one.
type HitboxTable struct {
	entries  []*HitboxEntry
	byProxy  map[*scene.Node]*HitboxEntry
	byTarget map[*scene.Node]*HitboxEntry
}

// NewHitboxTable creates an empty table.
func NewHitboxTable() *HitboxTable {
	return &HitboxTable{
		byProxy:  make(map[*scene.Node]*HitboxEntry),
		byTarget: make(map[*scene.Node]*HitboxEntry),
	}
}

// Register adds a proxy for target. It returns false, changing nothing, when either
// already has an entry.
func (t *HitboxTable) Register(proxy, target *scene.Node) bool {
	if proxy == nil || target == nil {
		return false
	}
	if _, ok := t.byProxy[proxy]; ok {
		return false
	}
	if _, ok := t.byTarget[target]; ok {
		return false
	}
	e := &HitboxEntry{
		Proxy:   proxy,
		Target:  target,
		Hover:   HoverEligible(proxy.Name),
		Pointer: PointerAffordance(proxy.Name),
	}
	t.entries = append(t.entries, e)
	t.byProxy[proxy] = e
	t.byTarget[target] = e
	return true
}

// Lookup returns the entry for a proxy.
func (t *HitboxTable) Lookup(proxy *scene.Node) (*HitboxEntry, bool) {
	e, ok := t.byProxy[proxy]
	return e, ok
}

// forTarget returns the entry whose target is n.
func (t *HitboxTable) forTarget(n *scene.Node) (*HitboxEntry, bool) {
	e, ok := t.byTarget[n]
	return e, ok
}

// Proxies returns the pickable nodes in registration order.
func (t *HitboxTable) Proxies() []*scene.Node {
	out := make([]*scene.Node, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Proxy
	}
	return out
}

// Len returns the number of entries.
func (t *HitboxTable) Len() int {
	return len(t.entries)
}

// NewBoxHitbox builds an invisible box around target's world bounds, padded by
// (1.1, 1.75, 1.1) and centred on them. It returns nil for targets without geometry.
func NewBoxHitbox(target *scene.Node, rotated bool) *scene.Node {
	box := scene.WorldBounds(target)
	if box.IsEmpty() {
		return nil
	}
	size := box.Size().Mul(hitboxPadding)
	proxy := scene.NewMesh(target.Name+"_Hitbox",
		scene.NewBoxGeometry(size.X, size.Y, size.Z),
		material.NewHitboxMaterial())
	proxy.Position = box.Center()
	if rotated {
		proxy.Rotation.Y = gomath.Pi / 4
	}
	return proxy
}
