// Package scene provides the retained scene graph: transform nodes, triangle geometry and
// the material interface the renderer draws with.
package scene

import (
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Kind identifies what a node carries.
type Kind int

const (
	// KindObject is a plain transform node.
	KindObject Kind = iota
	// KindGroup is a transform node created for a mesh split into several primitives.
	KindGroup
	// KindMesh carries geometry and materials.
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	default:
		return "object"
	}
}

// Node is an element of the scene graph. Rotation holds XYZ Euler angles in radians.
type Node struct {
	Name     string
	Kind     Kind
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
	Visible  bool

	// Geometry and Materials are set on mesh nodes. Most meshes carry one material; glTF
	// primitives split into groups keep one material per child instead.
	Geometry  *Geometry
	Materials []Material

	parent   *Node
	children []*Node
}

// NewNode creates a visible node with unit scale.
func NewNode(name string, kind Kind) *Node {
	return &Node{
		Name:    name,
		Kind:    kind,
		Scale:   math.One,
		Visible: true,
	}
}

// NewMesh creates a mesh node.
func NewMesh(name string, geom *Geometry, mat Material) *Node {
	n := NewNode(name, KindMesh)
	n.Geometry = geom
	if mat != nil {
		n.Materials = []Material{mat}
	}
	return n
}

// IsMesh reports whether the node carries geometry.
func (n *Node) IsMesh() bool {
	return n.Kind == KindMesh
}

// Material returns the first material slot, or nil.
func (n *Node) Material() Material {
	if len(n.Materials) == 0 {
		return nil
	}
	return n.Materials[0]
}

// SetMaterial replaces every material slot with mat.
func (n *Node) SetMaterial(mat Material) {
	n.Materials = []Material{mat}
}

// Parent returns the parent node or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was attached.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Traverse calls fn for n and every descendant in depth-first pre-order. Children added
// during the walk are not visited.
func (n *Node) Traverse(fn func(*Node)) {
	n.Walk(func(node *Node) bool {
		fn(node)
		return true
	})
}

// Walk is like Traverse but skips the descendants of any node for which fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	children := append([]*Node(nil), n.children...)
	for _, c := range children {
		c.Walk(fn)
	}
}

// Find returns the first node in pre-order whose name equals name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

// Quaternion returns the local rotation as a quaternion.
func (n *Node) Quaternion() math.Quat {
	return math.QuatFromEuler(n.Rotation)
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Quaternion(), n.Scale)
}

// WorldMatrix returns the node transform relative to the root.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Translation()
}

// WorldQuaternion returns the accumulated rotation of the node and its ancestors.
func (n *Node) WorldQuaternion() math.Quat {
	q := n.Quaternion()
	for p := n.parent; p != nil; p = p.parent {
		q = p.Quaternion().Mul(q)
	}
	return q.Normalize()
}

// WorldVisible reports whether n and all of its ancestors are visible.
func (n *Node) WorldVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// WorldBounds returns the world-space box around every geometry under n, computed from
// each geometry's local bounds.
func WorldBounds(n *Node) math.Box3 {
	box := math.EmptyBox3()
	n.Traverse(func(node *Node) {
		if node.Geometry == nil {
			return
		}
		box = box.Union(node.Geometry.Bounds().Transform(node.WorldMatrix()))
	})
	return box
}
