// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// boxEdges lists corner index pairs; corner i has bit 0 = max X, bit 1 = max Y, bit 2 = max Z.
var boxEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

func corners(box math.Box3, m math.Mat4) [8]math.Vec3 {
	var out [8]math.Vec3
	for i := range out {
		c := box.Min
		if i&1 != 0 {
			c.X = box.Max.X
		}
		if i&2 != 0 {
			c.Y = box.Max.Y
		}
		if i&4 != 0 {
			c.Z = box.Max.Z
		}
		out[i] = m.TransformVec3(c)
	}
	return out
}

// BoxWireframeVertices creates line vertices for box transformed by m.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BoxWireframeVertices(box math.Box3, m math.Mat4) []float32 {
	if box.IsEmpty() {
		return nil
	}
	c := corners(box, m)
	verts := make([]float32, 0, BBoxWireframeVertexCount*3)
	for _, e := range boxEdges {
		a, b := c[e[0]], c[e[1]]
		verts = append(verts, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	return verts
}

// HitboxWireframe creates line vertices outlining the geometry bounds of every node in
// world space. Rotated hitboxes keep their orientation.
func HitboxWireframe(nodes []*scene.Node) []float32 {
	var verts []float32
	for _, n := range nodes {
		if n.Geometry == nil {
			continue
		}
		verts = append(verts, BoxWireframeVertices(n.Geometry.Bounds(), n.WorldMatrix())...)
	}
	return verts
}
