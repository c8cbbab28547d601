package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatFromEuler converts XYZ-ordered Euler angles (radians) to a quaternion.
func QuatFromEuler(e Vec3) Quat {
	c1 := math.Cos(float64(e.X) / 2)
	c2 := math.Cos(float64(e.Y) / 2)
	c3 := math.Cos(float64(e.Z) / 2)
	s1 := math.Sin(float64(e.X) / 2)
	s2 := math.Sin(float64(e.Y) / 2)
	s3 := math.Sin(float64(e.Z) / 2)

	return Quat{
		X: float32(s1*c2*c3 + c1*s2*s3),
		Y: float32(c1*s2*c3 - s1*c2*s3),
		Z: float32(c1*c2*s3 + s1*s2*c3),
		W: float32(c1*c2*c3 - s1*s2*s3),
	}
}

// Euler returns the XYZ-ordered Euler angles of the quaternion.
func (q Quat) Euler() Vec3 {
	m := q.ToMat4()
	m11, m12, m13 := float64(m[0]), float64(m[4]), float64(m[8])
	m22, m23 := float64(m[5]), float64(m[9])
	m32, m33 := float64(m[6]), float64(m[10])

	y := math.Asin(math.Max(-1, math.Min(1, m13)))
	var x, z float64
	if math.Abs(m13) < 0.9999999 {
		x = math.Atan2(-m23, m33)
		z = math.Atan2(-m12, m11)
	} else {
		x = math.Atan2(m32, m22)
	}
	return Vec3{float32(x), float32(y), float32(z)}
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two quaternions (combines rotations, other applied first).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// QuatFromMat4 extracts the rotation of a matrix whose upper 3x3 is a pure rotation.
func QuatFromMat4(m Mat4) Quat {
	m11, m12, m13 := float64(m[0]), float64(m[4]), float64(m[8])
	m21, m22, m23 := float64(m[1]), float64(m[5]), float64(m[9])
	m31, m32, m33 := float64(m[2]), float64(m[6]), float64(m[10])

	trace := m11 + m22 + m33
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{
			W: float32(0.25 / s),
			X: float32((m32 - m23) * s),
			Y: float32((m13 - m31) * s),
			Z: float32((m21 - m12) * s),
		}
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		q = Quat{
			W: float32((m32 - m23) / s),
			X: float32(0.25 * s),
			Y: float32((m12 + m21) / s),
			Z: float32((m13 + m31) / s),
		}
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		q = Quat{
			W: float32((m13 - m31) / s),
			X: float32((m12 + m21) / s),
			Y: float32(0.25 * s),
			Z: float32((m23 + m32) / s),
		}
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		q = Quat{
			W: float32((m21 - m12) / s),
			X: float32((m13 + m31) / s),
			Y: float32((m23 + m32) / s),
			Z: float32(0.25 * s),
		}
	}
	return q.Normalize()
}
