// Package picking provides ray casting against scene meshes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToNDC converts pixel coordinates to normalized device coordinates (-1 to 1, Y up).
func ScreenToNDC(screenX, screenY, viewportW, viewportH float32) (x, y float32) {
	if viewportW <= 0 || viewportH <= 0 {
		return 0, 0
	}
	return 2*screenX/viewportW - 1, 1 - 2*screenY/viewportH
}

// RayFromNDC builds a world-space ray through the given normalized device coordinates.
// invViewProj is the inverse of the view-projection matrix.
func RayFromNDC(ndcX, ndcY float32, invViewProj math.Mat4) Ray {
	nearWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{
		Origin:    nearWorld,
		Direction: farWorld.Sub(nearWorld).Normalize(),
	}
}

func unproject(invViewProj math.Mat4, p math.Vec4) math.Vec3 {
	w := invViewProj.MulVec4(p)
	// Perspective divide
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns the ray mapped by m. The direction is renormalised, so distances along
// the result are measured in the new space.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformVec3(r.Origin),
		Direction: m.TransformDirection(r.Direction).Normalize(),
	}
}

// IntersectBox tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBox(box math.Box3) (t float32, hit bool) {
	if box.IsEmpty() {
		return 0, false
	}

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

const triangleEpsilon = 1e-7

// IntersectTriangle tests the ray against triangle (a, b, c) with counter-clockwise front
// faces. When cullBack is set, triangles seen from behind are ignored.
func (r Ray) IntersectTriangle(a, b, c math.Vec3, cullBack bool) (t float32, hit bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)

	if cullBack {
		if det < triangleEpsilon {
			return 0, false
		}
	} else if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, false
	}

	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = edge2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
