package room

import (
	gomath "math"

	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

func testBank() *Bank {
	var textures material.RoomTextures
	for i, s := range material.Sections {
		textures[i] = material.DayNight{
			Day:   texture.New(s.String()+"_day", texture.Options{SRGB: true}),
			Night: texture.New(s.String()+"_night", texture.Options{SRGB: true}),
		}
	}
	return NewBank(textures, texture.NewCube("skybox"), texture.New("noise", texture.Options{Wrap: texture.Repeat}))
}

func box(name string, size float32, at math.Vec3) *scene.Node {
	n := scene.NewMesh(name, scene.NewBoxGeometry(size, size, size), material.NewStandard(name+"_Mat"))
	n.Position = at
	return n
}

func group(name string, children ...*scene.Node) *scene.Node {
	g := scene.NewNode(name, scene.KindGroup)
	for _, c := range children {
		g.Add(c)
	}
	return g
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}
