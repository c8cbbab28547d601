package picking

import (
	"sort"

	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Hit is one ray intersection.
type Hit struct {
	Node     *scene.Node
	Distance float32
	Point    math.Vec3
}

// IntersectNode tests the ray against the triangles of a single mesh node. Material
// visibility is ignored so invisible hitbox proxies still register hits.
func IntersectNode(r Ray, n *scene.Node) (Hit, bool) {
	geom := n.Geometry
	if geom == nil || len(geom.Positions) == 0 {
		return Hit{}, false
	}

	world := n.WorldMatrix()
	local := r.Transform(world.Inverse())
	if _, ok := local.IntersectBox(geom.Bounds()); !ok {
		return Hit{}, false
	}

	cullBack := true
	if mat := n.Material(); mat != nil && mat.State().Side != scene.FrontSide {
		cullBack = false
	}

	best := float32(-1)
	for i := 0; i < geom.TriangleCount(); i++ {
		ia, ib, ic := geom.Triangle(i)
		if int(max(ia, ib, ic)) >= len(geom.Positions) {
			continue
		}
		a := math.Vec3FromArray(geom.Positions[ia])
		b := math.Vec3FromArray(geom.Positions[ib])
		c := math.Vec3FromArray(geom.Positions[ic])
		if t, ok := local.IntersectTriangle(a, b, c, cullBack); ok && (best < 0 || t < best) {
			best = t
		}
	}
	if best < 0 {
		return Hit{}, false
	}

	point := world.TransformVec3(local.At(best))
	return Hit{Node: n, Distance: point.Distance(r.Origin), Point: point}, true
}

// Intersect tests the ray against each target and returns the hits sorted nearest first.
// Only the targets themselves are tested, not their descendants.
func Intersect(r Ray, targets []*scene.Node) []Hit {
	var hits []Hit
	for _, n := range targets {
		if hit, ok := IntersectNode(r, n); ok {
			hits = append(hits, hit)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Nearest returns the closest hit among targets.
func Nearest(r Ray, targets []*scene.Node) (Hit, bool) {
	hits := Intersect(r, targets)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}
