package mathx

import "math"

// Quat is a unit quaternion attitude (w, x, y, z).
type Quat struct {
	W, X, Y, Z float64
}

func QuatIdentity() Quat { return Quat{W: 1} }

// QuatFromMatrix converts a rotation matrix to the equivalent quaternion,
// branching on the largest diagonal term for numerical stability.
func QuatFromMatrix(m Mat3) Quat {
	tr := m.A.X + m.B.Y + m.C.Z
	var q Quat
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q.W = 0.25 * s
		q.X = (m.C.Y - m.B.Z) / s
		q.Y = (m.A.Z - m.C.X) / s
		q.Z = (m.B.X - m.A.Y) / s
	case m.A.X > m.B.Y && m.A.X > m.C.Z:
		s := math.Sqrt(1+m.A.X-m.B.Y-m.C.Z) * 2
		q.W = (m.C.Y - m.B.Z) / s
		q.X = 0.25 * s
		q.Y = (m.A.Y + m.B.X) / s
		q.Z = (m.A.Z + m.C.X) / s
	case m.B.Y > m.C.Z:
		s := math.Sqrt(1+m.B.Y-m.A.X-m.C.Z) * 2
		q.W = (m.A.Z - m.C.X) / s
		q.X = (m.A.Y + m.B.X) / s
		q.Y = 0.25 * s
		q.Z = (m.B.Z + m.C.Y) / s
	default:
		s := math.Sqrt(1+m.C.Z-m.A.X-m.B.Y) * 2
		q.W = (m.B.X - m.A.Y) / s
		q.X = (m.A.Z + m.C.X) / s
		q.Y = (m.B.Z + m.C.Y) / s
		q.Z = 0.25 * s
	}
	return q
}

// QuatFromEuler builds a quaternion from roll, pitch, yaw radians.
func QuatFromEuler(roll, pitch, yaw float64) Quat {
	cr := math.Cos(roll * 0.5)
	sr := math.Sin(roll * 0.5)
	cp := math.Cos(pitch * 0.5)
	sp := math.Sin(pitch * 0.5)
	cy := math.Cos(yaw * 0.5)
	sy := math.Sin(yaw * 0.5)

	return Quat{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}

func (q Quat) Normalized() Quat {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n <= 0 {
		return QuatIdentity()
	}
	return Quat{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Inverse assumes a unit quaternion.
func (q Quat) Inverse() Quat {
	return Quat{q.W, -q.X, -q.Y, -q.Z}
}

func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Div returns the rotation taking o to q: q * o^-1.
func (q Quat) Div(o Quat) Quat {
	return q.Mul(o.Inverse())
}

// AxisAngle returns the rotation vector (axis scaled by angle, radians)
// equivalent to the quaternion.
func (q Quat) AxisAngle() Vec3 {
	v := Vec3{q.X, q.Y, q.Z}
	l := v.Length()
	if l <= 1e-12 {
		return Vec3{}
	}
	angle := WrapPi(2 * math.Atan2(l, q.W))
	return v.Scale(angle / l)
}
