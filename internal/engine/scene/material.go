package scene

import "github.com/Faultbox/portfolio-room/internal/engine/gpu"

// Side selects which triangle faces are rasterised.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// RenderState is the fixed-function state shared by every material.
type RenderState struct {
	Side        Side
	Transparent bool
	Opacity     float32
	DepthWrite  bool
	Visible     bool
}

// DefaultRenderState returns an opaque, front-sided, depth-writing state.
func DefaultRenderState() RenderState {
	return RenderState{
		Side:       FrontSide,
		Opacity:    1,
		DepthWrite: true,
		Visible:    true,
	}
}

// Material describes how a mesh is shaded. Concrete materials live in the material package.
type Material interface {
	gpu.Disposable
	Name() string
	State() *RenderState
	// Clone returns an independent copy that has not been uploaded or disposed.
	Clone() Material
}

// Materials returns the distinct materials referenced by n and its descendants, in
// traversal order.
func Materials(n *Node) []Material {
	seen := make(map[Material]bool)
	var out []Material
	n.Traverse(func(node *Node) {
		for _, m := range node.Materials {
			if m != nil && !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	})
	return out
}

// Geometries returns the distinct geometries referenced by n and its descendants.
func Geometries(n *Node) []*Geometry {
	seen := make(map[*Geometry]bool)
	var out []*Geometry
	n.Traverse(func(node *Node) {
		if node.Geometry != nil && !seen[node.Geometry] {
			seen[node.Geometry] = true
			out = append(out, node.Geometry)
		}
	})
	return out
}

// Dispose releases every geometry and material under n. A nil node is ignored.
func Dispose(n *Node) {
	if n == nil {
		return
	}
	for _, g := range Geometries(n) {
		g.Dispose()
	}
	for _, m := range Materials(n) {
		m.Dispose()
	}
}
