package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func TestScreenToNDC(t *testing.T) {
	tests := []struct {
		x, y   float32
		nx, ny float32
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
	}
	for _, tt := range tests {
		nx, ny := ScreenToNDC(tt.x, tt.y, 800, 600)
		if !approx(nx, tt.nx) || !approx(ny, tt.ny) {
			t.Errorf("ScreenToNDC(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.y, nx, ny, tt.nx, tt.ny)
		}
	}
	if x, y := ScreenToNDC(10, 10, 0, 0); x != 0 || y != 0 {
		t.Error("zero viewport should map to the centre")
	}
}

func TestRayFromNDCCentre(t *testing.T) {
	proj := math.Perspective(35*gomath.Pi/180, 1, 0.1, 200)
	view := math.LookAt(math.Vec3{Z: 10}, math.Vec3{}, math.Vec3{Y: 1})
	inv := proj.Mul(view).Inverse()

	r := RayFromNDC(0, 0, inv)
	if !approx(r.Direction.X, 0) || !approx(r.Direction.Y, 0) || !approx(r.Direction.Z, -1) {
		t.Errorf("centre ray direction = %v, want (0,0,-1)", r.Direction)
	}
	if !approx(r.Origin.Z, 9.9) {
		t.Errorf("centre ray origin = %v, want z=9.9", r.Origin)
	}
}

func TestIntersectBox(t *testing.T) {
	box := math.Box3{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBox(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && !approx(got, tt.wantT) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestIntersectTriangleCulling(t *testing.T) {
	a := math.Vec3{X: -1, Y: -1}
	b := math.Vec3{X: 1, Y: -1}
	c := math.Vec3{Y: 1}

	front := Ray{Origin: math.Vec3{Z: 2}, Direction: math.Vec3{Z: -1}}
	if d, ok := front.IntersectTriangle(a, b, c, true); !ok || !approx(d, 2) {
		t.Errorf("front hit = %v %v, want 2 true", d, ok)
	}

	back := Ray{Origin: math.Vec3{Z: -2}, Direction: math.Vec3{Z: 1}}
	if _, ok := back.IntersectTriangle(a, b, c, true); ok {
		t.Error("back face should be culled")
	}
	if _, ok := back.IntersectTriangle(a, b, c, false); !ok {
		t.Error("back face should hit without culling")
	}
}

func TestIntersectNodeWorldSpace(t *testing.T) {
	box := scene.NewMesh("Chair_Raycaster_Hitbox", scene.NewBoxGeometry(1, 1, 1), nil)
	box.Position = math.Vec3{X: 5}
	box.Scale = math.Vec3{X: 2, Y: 2, Z: 2}

	r := Ray{Origin: math.Vec3{X: 5, Z: 10}, Direction: math.Vec3{Z: -1}}
	hit, ok := IntersectNode(r, box)
	if !ok {
		t.Fatal("expected hit")
	}
	if !approx(hit.Distance, 9) {
		t.Errorf("distance = %v, want 9", hit.Distance)
	}
	if !approx(hit.Point.Z, 1) {
		t.Errorf("hit point = %v, want z=1", hit.Point)
	}

	miss := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	if _, ok := IntersectNode(miss, box); ok {
		t.Error("ray at x=0 should miss box centred at x=5")
	}
}

func TestNearestOrdersByDistance(t *testing.T) {
	near := scene.NewMesh("near", scene.NewBoxGeometry(1, 1, 1), nil)
	near.Position = math.Vec3{Z: 2}
	far := scene.NewMesh("far", scene.NewBoxGeometry(1, 1, 1), nil)
	empty := scene.NewNode("empty", scene.KindObject)

	r := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	hit, ok := Nearest(r, []*scene.Node{far, empty, near})
	if !ok || hit.Node != near {
		t.Fatalf("nearest = %v, want near", hit.Node)
	}
	if hits := Intersect(r, []*scene.Node{far, near}); len(hits) != 2 {
		t.Errorf("Intersect returned %d hits, want 2", len(hits))
	}

	if _, ok := Nearest(Ray{Origin: math.Vec3{Y: 50}, Direction: math.Vec3{Y: 1}}, []*scene.Node{near}); ok {
		t.Error("expected miss")
	}
}
