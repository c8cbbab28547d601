package scene

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/portfolio-room/internal/engine/gpu"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

type testMaterial struct {
	gpu.Resource
	name  string
	state RenderState
}

func (m *testMaterial) Name() string { return m.name }
func (m *testMaterial) State() *RenderState { return &m.state }
func (m *testMaterial) Clone() Material { return &testMaterial{name: m.name, state: m.state} }

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func approxVec(a, b math.Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestAddReparents(t *testing.T) {
	a := NewNode("a", KindObject)
	b := NewNode("b", KindObject)
	c := NewNode("c", KindMesh)

	a.Add(c)
	b.Add(c)

	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if c.Parent() != b {
		t.Error("child not attached to new parent")
	}
	if !b.Remove(c) || c.Parent() != nil {
		t.Error("Remove should detach the child")
	}
	if b.Remove(c) {
		t.Error("removing a detached child should report false")
	}
}

func TestTraverseOrderAndWalkSkip(t *testing.T) {
	root := NewNode("root", KindObject)
	group := NewNode("group", KindGroup)
	group.Add(NewNode("group_0", KindMesh))
	group.Add(NewNode("group_1", KindMesh))
	root.Add(group)
	root.Add(NewNode("tail", KindMesh))

	var names []string
	root.Traverse(func(n *Node) { names = append(names, n.Name) })
	want := []string{"root", "group", "group_0", "group_1", "tail"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, names[i], want[i])
		}
	}

	names = nil
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return n.Kind != KindGroup
	})
	if len(names) != 3 || names[2] != "tail" {
		t.Errorf("Walk should skip group descendants, got %v", names)
	}
}

func TestTraverseIgnoresNodesAddedDuringWalk(t *testing.T) {
	root := NewNode("root", KindObject)
	root.Add(NewNode("a", KindMesh))

	visited := 0
	root.Traverse(func(n *Node) {
		visited++
		if n.Name == "a" {
			root.Add(NewNode("late", KindMesh))
		}
	})
	if visited != 2 {
		t.Errorf("visited %d nodes, want 2", visited)
	}
	if root.Find("late") == nil {
		t.Error("late node should still be attached")
	}
}

func TestWorldTransforms(t *testing.T) {
	parent := NewNode("parent", KindObject)
	parent.Position = math.Vec3{X: 1}
	parent.Rotation = math.Vec3{Y: gomath.Pi / 2}

	child := NewNode("child", KindMesh)
	child.Position = math.Vec3{X: 1}
	parent.Add(child)

	// Rotating +X by 90 degrees about Y points it down -Z.
	if got := child.WorldPosition(); !approxVec(got, math.Vec3{X: 1, Z: -1}) {
		t.Errorf("WorldPosition = %v, want (1,0,-1)", got)
	}

	q := child.WorldQuaternion()
	if got := q.Rotate(math.Vec3{X: 1}); !approxVec(got, math.Vec3{Z: -1}) {
		t.Errorf("WorldQuaternion rotates +X to %v, want (0,0,-1)", got)
	}

	parent.Visible = false
	if child.WorldVisible() {
		t.Error("child of hidden parent should not be world visible")
	}
}

func TestWorldBounds(t *testing.T) {
	root := NewNode("root", KindObject)
	root.Scale = math.Vec3{X: 2, Y: 2, Z: 2}

	box := NewMesh("box", NewBoxGeometry(1, 1, 1), nil)
	box.Position = math.Vec3{Y: 1}
	root.Add(box)

	b := WorldBounds(root)
	if !approxVec(b.Min, math.Vec3{X: -1, Y: 1, Z: -1}) || !approxVec(b.Max, math.Vec3{X: 1, Y: 3, Z: 1}) {
		t.Errorf("WorldBounds = %+v", b)
	}

	if !WorldBounds(NewNode("empty", KindObject)).IsEmpty() {
		t.Error("node without geometry should have empty bounds")
	}
}

func TestPlaneGeometry(t *testing.T) {
	g := NewPlaneGeometry(1, 1, 16, 64)
	if len(g.Positions) != 17*65 {
		t.Errorf("positions = %d, want %d", len(g.Positions), 17*65)
	}
	if g.TriangleCount() != 16*64*2 {
		t.Errorf("triangles = %d, want %d", g.TriangleCount(), 16*64*2)
	}

	b := g.Bounds()
	if !approxVec(b.Min, math.Vec3{X: -0.5, Y: -0.5}) || !approxVec(b.Max, math.Vec3{X: 0.5, Y: 0.5}) {
		t.Errorf("plane bounds = %+v", b)
	}

	g.Translate(0, 0.5, 0)
	if b := g.Bounds(); !approx(b.Min.Y, 0) || !approx(b.Max.Y, 1) {
		t.Errorf("translated bounds = %+v", b)
	}
	if g.Version() == 0 {
		t.Error("translation should mark geometry dirty")
	}
}

func TestApplyMatrixRotatesNormals(t *testing.T) {
	g := NewPlaneGeometry(1, 1, 1, 1)
	g.ApplyMatrix(math.RotateY(gomath.Pi / 2))
	if got := math.Vec3FromArray(g.Normals[0]); !approxVec(got, math.Vec3{X: 1}) {
		t.Errorf("normal = %v, want (1,0,0)", got)
	}
}

func TestBoxGeometry(t *testing.T) {
	g := NewBoxGeometry(2, 4, 6)
	if g.TriangleCount() != 12 {
		t.Errorf("box triangles = %d, want 12", g.TriangleCount())
	}
	if size := g.Bounds().Size(); !approxVec(size, math.Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("box size = %v", size)
	}
}

func TestTriangleNonIndexed(t *testing.T) {
	g := &Geometry{Positions: make([][3]float32, 6)}
	a, b, c := g.Triangle(1)
	if a != 3 || b != 4 || c != 5 {
		t.Errorf("Triangle(1) = %d,%d,%d", a, b, c)
	}
}

func TestMaterialsDistinct(t *testing.T) {
	shared := &testMaterial{name: "shared", state: DefaultRenderState()}
	root := NewNode("root", KindObject)
	root.Add(NewMesh("a", NewBoxGeometry(1, 1, 1), shared))
	root.Add(NewMesh("b", NewBoxGeometry(1, 1, 1), shared))
	multi := NewMesh("c", NewBoxGeometry(1, 1, 1), shared)
	multi.Materials = append(multi.Materials, &testMaterial{name: "other"})
	root.Add(multi)

	if got := len(Materials(root)); got != 2 {
		t.Errorf("Materials = %d, want 2", got)
	}
	if got := len(Geometries(root)); got != 3 {
		t.Errorf("Geometries = %d, want 3", got)
	}
}

func TestDisposeTree(t *testing.T) {
	mat := &testMaterial{name: "plank", state: DefaultRenderState()}
	root := NewNode("root", KindGroup)
	root.Add(NewMesh("a", NewBoxGeometry(1, 1, 1), mat))
	child := NewMesh("b", NewBoxGeometry(1, 1, 1), mat)
	root.Children()[0].Add(child)

	Dispose(root)
	for _, g := range Geometries(root) {
		if !g.Disposed() {
			t.Error("geometry left undisposed")
		}
	}
	if !mat.Disposed() {
		t.Error("material left undisposed")
	}

	Dispose(nil)
}
