// Package lighting describes the fixed light rig applied to authored lit materials.
package lighting

import "github.com/Faultbox/portfolio-room/pkg/math"

// Ambient lights every surface equally.
type Ambient struct {
	Color     [3]float32
	Intensity float32
}

// Directional is a light infinitely far away shining from Position toward the origin.
type Directional struct {
	Color     [3]float32
	Intensity float32
	Position  math.Vec3
}

// Direction returns the normalized direction pointing toward the light.
func (d Directional) Direction() [3]float32 {
	return d.Position.Normalize().Array()
}

// Radiance returns the light colour scaled by intensity.
func (d Directional) Radiance() [3]float32 {
	return scale(d.Color, d.Intensity)
}

// Radiance returns the light colour scaled by intensity.
func (a Ambient) Radiance() [3]float32 {
	return scale(a.Color, a.Intensity)
}

func scale(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}

// Rig is the set of lights in the room.
type Rig struct {
	Ambient     Ambient
	Directional Directional
}

// DefaultRig returns a soft white ambient light and one white key light above and in
// front of the room.
func DefaultRig() Rig {
	white := [3]float32{1, 1, 1}
	return Rig{
		Ambient: Ambient{Color: white, Intensity: 0.5},
		Directional: Directional{
			Color:     white,
			Intensity: 1,
			Position:  math.Vec3{X: 5, Y: 10, Z: 7.5},
		},
	}
}
