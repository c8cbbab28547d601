package room

import (
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// The curated model lost the "Second" wall during editing. The older model still has it,
// with extra geometry that now sits outside the room, so the wall is recovered from the
// older file and clipped to the bounds of the three sections that survived.
const missingSection = "Second"

var referenceSections = []string{"First", "Third", "Fourth"}

// ReferenceBounds returns the world bounds of the meshes named exactly First, Third or
// Fourth under root.
func ReferenceBounds(root *scene.Node) math.Box3 {
	box := math.EmptyBox3()
	root.Traverse(func(n *scene.Node) {
		if !n.IsMesh() {
			return
		}
		for _, name := range referenceSections {
			if n.Name == name {
				box = box.Union(scene.WorldBounds(n))
				return
			}
		}
	})
	return box
}

// ClipTriangles returns a non-indexed geometry holding the triangles of g whose centroid
// lies inside box. Positions and UVs are carried over; normals are dropped. The decision
// looks only at the centroid, so triangles straddling the boundary are kept or dropped
// whole.
func ClipTriangles(g *scene.Geometry, box math.Box3) *scene.Geometry {
	out := &scene.Geometry{}
	hasUV := len(g.UVs) == len(g.Positions) && len(g.UVs) > 0

	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c := g.Triangle(i)
		pa, pb, pc := g.Positions[a], g.Positions[b], g.Positions[c]
		centroid := math.Vec3{
			X: (pa[0] + pb[0] + pc[0]) / 3,
			Y: (pa[1] + pb[1] + pc[1]) / 3,
			Z: (pa[2] + pb[2] + pc[2]) / 3,
		}
		if !box.ContainsPoint(centroid) {
			continue
		}
		out.Positions = append(out.Positions, pa, pb, pc)
		if hasUV {
			out.UVs = append(out.UVs, g.UVs[a], g.UVs[b], g.UVs[c])
		}
	}
	return out
}

// PatchMissingSection finds meshes named "Second" in the older model, bakes their world
// transform into a copy of their geometry, clips it to box and returns new meshes at the
// origin wearing mat.
func PatchMissingSection(legacy *scene.Node, box math.Box3, mat scene.Material) []*scene.Node {
	var patched []*scene.Node
	legacy.Traverse(func(n *scene.Node) {
		if !n.IsMesh() || n.Name != missingSection || n.Geometry == nil {
			return
		}
		baked := n.Geometry.Clone()
		baked.ApplyMatrix(n.WorldMatrix())
		clipped := ClipTriangles(baked, box)
		patched = append(patched, scene.NewMesh(missingSection, clipped, mat))
	})
	return patched
}
