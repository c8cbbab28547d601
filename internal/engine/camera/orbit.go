package camera

import (
	gomath "math"

	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

const polarEpsilon = 1e-6

// Spherical coordinates around a target: Phi is the polar angle from +Y, Theta the
// azimuth about Y measured from +Z.
type Spherical struct {
	Radius float32
	Phi    float32
	Theta  float32
}

// SphericalFromVec3 converts an offset vector to spherical coordinates.
func SphericalFromVec3(v math.Vec3) Spherical {
	r := v.Length()
	if r == 0 {
		return Spherical{}
	}
	cosPhi := float64(v.Y / r)
	cosPhi = gomath.Max(-1, gomath.Min(1, cosPhi))
	return Spherical{
		Radius: r,
		Theta:  float32(gomath.Atan2(float64(v.X), float64(v.Z))),
		Phi:    float32(gomath.Acos(cosPhi)),
	}
}

// Vec3 converts back to an offset vector.
func (s Spherical) Vec3() math.Vec3 {
	sinPhi := float32(gomath.Sin(float64(s.Phi)))
	return math.Vec3{
		X: s.Radius * sinPhi * float32(gomath.Sin(float64(s.Theta))),
		Y: s.Radius * float32(gomath.Cos(float64(s.Phi))),
		Z: s.Radius * sinPhi * float32(gomath.Cos(float64(s.Theta))),
	}
}

// OrbitLimits constrain the orbit.
type OrbitLimits struct {
	MinDistance     float32
	MaxDistance     float32
	MinPolarAngle   float32
	MaxPolarAngle   float32
	MinAzimuthAngle float32
	MaxAzimuthAngle float32
}

// OrbitControls rotate and dolly a camera around its target in response to pointer input.
// With damping enabled the camera keeps easing toward rest after input stops, so Update
// must run every frame.
type OrbitControls struct {
	Camera *Perspective
	Limits OrbitLimits

	Enabled       bool
	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	EnablePan     bool

	delta    Spherical
	scale    float32
	viewport [2]int

	rotating  bool
	lastX     float32
	lastY     float32
	touchID   int64
	listeners *input.Listeners
	disposed  bool
}

// NewOrbitControls creates controls for cam with unlimited angles.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	return &OrbitControls{
		Camera: cam,
		Limits: OrbitLimits{
			MinDistance:     0,
			MaxDistance:     float32(gomath.Inf(1)),
			MinPolarAngle:   0,
			MaxPolarAngle:   gomath.Pi,
			MinAzimuthAngle: float32(gomath.Inf(-1)),
			MaxAzimuthAngle: float32(gomath.Inf(1)),
		},
		Enabled:       true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		EnablePan:     true,
		scale:         1,
		viewport:      [2]int{1, 1},
	}
}

// SetViewport records the viewport size used to scale drag distances.
func (c *OrbitControls) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.viewport = [2]int{width, height}
	}
}

// RotateLeft orbits the camera about the target's Y axis.
func (c *OrbitControls) RotateLeft(angle float32) {
	c.delta.Theta -= angle
}

// RotateUp tilts the camera toward the pole.
func (c *OrbitControls) RotateUp(angle float32) {
	c.delta.Phi -= angle
}

// HandleDrag updates rotation based on a pointer drag delta in pixels.
func (c *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	h := float32(c.viewport[1])
	c.RotateLeft(2 * gomath.Pi * deltaX / h * c.RotateSpeed)
	c.RotateUp(2 * gomath.Pi * deltaY / h * c.RotateSpeed)
}

// HandleZoom dollies in for positive wheel deltas and out for negative ones.
func (c *OrbitControls) HandleZoom(delta float32) {
	if delta == 0 {
		return
	}
	zoomScale := float32(gomath.Pow(0.95, float64(c.ZoomSpeed)))
	if delta > 0 {
		c.scale *= zoomScale
	} else {
		c.scale /= zoomScale
	}
}

// Update applies pending rotation and zoom, enforces the limits and repositions the
// camera. It reports whether the camera moved.
func (c *OrbitControls) Update() bool {
	cam := c.Camera
	before := cam.Position

	s := SphericalFromVec3(cam.Position.Sub(cam.Target))
	if c.EnableDamping {
		s.Theta += c.delta.Theta * c.DampingFactor
		s.Phi += c.delta.Phi * c.DampingFactor
	} else {
		s.Theta += c.delta.Theta
		s.Phi += c.delta.Phi
	}

	s.Theta = clampAzimuth(s.Theta, c.Limits.MinAzimuthAngle, c.Limits.MaxAzimuthAngle)
	s.Phi = max(c.Limits.MinPolarAngle, min(c.Limits.MaxPolarAngle, s.Phi))
	s.Phi = max(polarEpsilon, min(gomath.Pi-polarEpsilon, s.Phi))
	s.Radius = max(c.Limits.MinDistance, min(c.Limits.MaxDistance, s.Radius*c.scale))

	cam.Position = cam.Target.Add(s.Vec3())

	if c.EnableDamping {
		c.delta.Theta *= 1 - c.DampingFactor
		c.delta.Phi *= 1 - c.DampingFactor
	} else {
		c.delta = Spherical{}
	}
	c.scale = 1

	return cam.Position.Distance(before) > 1e-6
}

// clampAzimuth clamps theta into [lo, hi], wrapping through +-pi the way the limits are
// expressed.
func clampAzimuth(theta, lo, hi float32) float32 {
	if gomath.IsInf(float64(lo), 0) || gomath.IsInf(float64(hi), 0) {
		return theta
	}
	const twoPi = 2 * gomath.Pi
	if lo < -gomath.Pi {
		lo += twoPi
	} else if lo > gomath.Pi {
		lo -= twoPi
	}
	if hi < -gomath.Pi {
		hi += twoPi
	} else if hi > gomath.Pi {
		hi -= twoPi
	}
	if lo <= hi {
		return max(lo, min(hi, theta))
	}
	if theta > (lo+hi)/2 {
		return max(lo, theta)
	}
	return min(hi, theta)
}

// Connect registers the pointer handlers on d. Dispose removes them.
func (c *OrbitControls) Connect(d *input.Dispatcher) {
	if c.listeners != nil || c.disposed {
		return
	}
	l := input.NewListeners(d)
	l.On(input.EventMouseDown, func(e input.Event) {
		if e.Button == input.ButtonLeft {
			c.beginDrag(e.MouseX, e.MouseY)
		}
	})
	l.On(input.EventMouseMove, func(e input.Event) { c.drag(e.MouseX, e.MouseY) })
	l.On(input.EventMouseUp, func(e input.Event) {
		if e.Button == input.ButtonLeft {
			c.rotating = false
		}
	})
	l.On(input.EventWheel, func(e input.Event) {
		if c.Enabled {
			c.HandleZoom(e.WheelY)
		}
	})
	l.On(input.EventTouchStart, func(e input.Event) {
		c.touchID = e.TouchID
		c.beginDrag(e.MouseX, e.MouseY)
	})
	l.On(input.EventTouchMove, func(e input.Event) {
		if e.TouchID == c.touchID {
			c.drag(e.MouseX, e.MouseY)
		}
	})
	l.On(input.EventTouchEnd, func(e input.Event) {
		if e.TouchID == c.touchID {
			c.rotating = false
		}
	})
	c.listeners = l
}

func (c *OrbitControls) beginDrag(x, y float32) {
	if !c.Enabled {
		return
	}
	c.rotating = true
	c.lastX, c.lastY = x, y
}

func (c *OrbitControls) drag(x, y float32) {
	if !c.rotating || !c.Enabled {
		return
	}
	c.HandleDrag(x-c.lastX, y-c.lastY)
	c.lastX, c.lastY = x, y
}

// Dispose removes the input handlers. The controls stop reacting to input.
func (c *OrbitControls) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.Enabled = false
	c.rotating = false
	if c.listeners != nil {
		c.listeners.RemoveAll()
		c.listeners = nil
	}
}

// Disposed reports whether Dispose has been called.
func (c *OrbitControls) Disposed() bool {
	return c.disposed
}
