package renderer

import (
	"sort"

	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

type drawItem struct {
	node     *scene.Node
	material scene.Material
	world    math.Mat4
	depth    float32
	blended  bool
}

// collect gathers visible meshes. Opaque meshes keep traversal order; blended meshes
// (transparent or not writing depth) follow, sorted back to front from eye.
func collect(root *scene.Node, eye math.Vec3) []drawItem {
	var opaque, blended []drawItem
	root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if !n.IsMesh() || n.Geometry == nil || n.Geometry.Disposed() {
			return true
		}
		mat := n.Material()
		if mat == nil || mat.Disposed() || !mat.State().Visible {
			return true
		}
		world := n.WorldMatrix()
		item := drawItem{
			node:     n,
			material: mat,
			world:    world,
			depth:    world.Translation().Distance(eye),
			blended:  mat.State().Transparent || !mat.State().DepthWrite,
		}
		if item.blended {
			blended = append(blended, item)
		} else {
			opaque = append(opaque, item)
		}
		return true
	})

	sort.SliceStable(blended, func(i, j int) bool {
		return blended[i].depth > blended[j].depth
	})
	return append(opaque, blended...)
}
