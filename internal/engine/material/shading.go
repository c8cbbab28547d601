package material

import "math"

// Gamma is the display exponent applied by the room shader.
const Gamma = 2.2

// GammaCorrect maps a linear channel value to display space.
func GammaCorrect(c float32) float32 {
	if c <= 0 {
		return 0
	}
	return float32(math.Pow(float64(c), 1/Gamma))
}

// MixDayNight blends a day and a night colour the way the room shader does, including the
// gamma step.
func MixDayNight(day, night [3]float32, ratio float32) [3]float32 {
	var out [3]float32
	for i := range out {
		out[i] = GammaCorrect(day[i] + (night[i]-day[i])*ratio)
	}
	return out
}

// SmoothStep is the GLSL smoothstep. edge0 may exceed edge1 for a falling edge.
func SmoothStep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	t = max(0, min(1, t))
	return t * t * (3 - 2*t)
}

// plumeEdge is one smoothstep factor of the plume mask, applied to u (axis 0) or v (axis 1).
type plumeEdge struct {
	axis         int
	edge0, edge1 float32
}

// plumeEdges are the fades in smoke.frag, in source order.
var plumeEdges = [...]plumeEdge{
	{0, 0, 0.1},
	{0, 1, 0.9},
	{1, 0, 0.1},
	{1, 1, 0.4},
}

// EdgeFade returns the plume alpha mask at (u, v): soft sides, a short fade at the base
// and a long fade toward the top.
func EdgeFade(u, v float32) float32 {
	uv := [2]float32{u, v}
	fade := float32(1)
	for _, e := range plumeEdges {
		fade *= SmoothStep(e.edge0, e.edge1, uv[e.axis])
	}
	return fade
}
