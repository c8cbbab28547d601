package lighting

import (
	"math"
	"testing"
)

func TestDefaultRig(t *testing.T) {
	rig := DefaultRig()

	if got := rig.Ambient.Radiance(); got != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("ambient radiance = %v", got)
	}

	dir := rig.Directional.Direction()
	length := math.Sqrt(float64(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]))
	if math.Abs(length-1) > 1e-5 {
		t.Errorf("direction not normalized: %v", dir)
	}
	if dir[1] <= dir[0] || dir[1] <= dir[2] {
		t.Errorf("key light should come mostly from above: %v", dir)
	}
}
