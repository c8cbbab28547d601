package renderer

import (
	"testing"

	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

func meshAt(name string, z float32, mat scene.Material) *scene.Node {
	n := scene.NewMesh(name, scene.NewBoxGeometry(1, 1, 1), mat)
	n.Position = math.Vec3{Z: z}
	return n
}

func names(items []drawItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.node.Name
	}
	return out
}

func TestCollectOrdersBlendedBackToFront(t *testing.T) {
	root := scene.NewNode("Scene", scene.KindGroup)

	water := material.NewWaterMaterial()
	smoke := material.BuildSmokeMaterial(nil)
	glass := material.BuildGlassMaterial(nil)

	root.Add(meshAt("Near_Water", 1, water))
	root.Add(meshAt("Desk", 0, material.NewStandard("Desk")))
	root.Add(meshAt("Far_Smoke", -10, smoke))
	root.Add(meshAt("Mid_Glass", -5, glass))
	root.Add(meshAt("Chair", 2, material.NewStandard("Chair")))

	got := names(collect(root, math.Vec3{Z: 10}))
	want := []string{"Desk", "Chair", "Far_Smoke", "Mid_Glass", "Near_Water"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCollectSkipsHidden(t *testing.T) {
	root := scene.NewNode("Scene", scene.KindGroup)

	hidden := scene.NewNode("Hidden_Group", scene.KindGroup)
	hidden.Visible = false
	hidden.Add(meshAt("Inside_Hidden", 0, material.NewStandard("x")))
	root.Add(hidden)

	root.Add(meshAt("Chair_Hover_Hitbox", 0, material.NewHitboxMaterial()))

	disposed := meshAt("Gone", 0, material.NewStandard("gone"))
	disposed.Geometry.Dispose()
	root.Add(disposed)

	root.Add(meshAt("Desk", 0, material.NewStandard("Desk")))

	got := names(collect(root, math.Vec3{}))
	if len(got) != 1 || got[0] != "Desk" {
		t.Errorf("got %v, want only Desk", got)
	}
}

func TestInterleave(t *testing.T) {
	g := &scene.Geometry{
		Positions: [][3]float32{{1, 2, 3}, {4, 5, 6}},
		UVs:       [][2]float32{{0.5, 0.25}},
	}
	data := interleave(g)
	if len(data) != 2*floatsPerVertex {
		t.Fatalf("len = %d, want %d", len(data), 2*floatsPerVertex)
	}
	if data[0] != 1 || data[6] != 0.5 || data[7] != 0.25 {
		t.Errorf("first vertex = %v", data[:floatsPerVertex])
	}
	// Missing attributes are zero filled.
	if data[floatsPerVertex+6] != 0 || data[3] != 0 {
		t.Errorf("expected zero normals and uvs, got %v", data)
	}
}
