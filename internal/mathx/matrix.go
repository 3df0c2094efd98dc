package mathx

import "math"

// Mat3 is a 3x3 rotation matrix stored as rows. Used as a direction cosine
// matrix mapping body-frame vectors into the earth frame.
type Mat3 struct {
	A, B, C Vec3
}

func Identity() Mat3 {
	return Mat3{
		A: Vec3{1, 0, 0},
		B: Vec3{0, 1, 0},
		C: Vec3{0, 0, 1},
	}
}

// MulVec applies the rotation to v (body to earth).
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m.A.X*v.X + m.A.Y*v.Y + m.A.Z*v.Z,
		m.B.X*v.X + m.B.Y*v.Y + m.B.Z*v.Z,
		m.C.X*v.X + m.C.Y*v.Y + m.C.Z*v.Z,
	}
}

// MulTransposeVec applies the inverse rotation to v (earth to body).
func (m Mat3) MulTransposeVec(v Vec3) Vec3 {
	return Vec3{
		m.A.X*v.X + m.B.X*v.Y + m.C.X*v.Z,
		m.A.Y*v.X + m.B.Y*v.Y + m.C.Y*v.Z,
		m.A.Z*v.X + m.B.Z*v.Y + m.C.Z*v.Z,
	}
}

func (m Mat3) Transposed() Mat3 {
	return Mat3{
		A: Vec3{m.A.X, m.B.X, m.C.X},
		B: Vec3{m.A.Y, m.B.Y, m.C.Y},
		C: Vec3{m.A.Z, m.B.Z, m.C.Z},
	}
}

func (m Mat3) Mul(o Mat3) Mat3 {
	ot := o.Transposed()
	return Mat3{
		A: Vec3{m.A.Dot(ot.A), m.A.Dot(ot.B), m.A.Dot(ot.C)},
		B: Vec3{m.B.Dot(ot.A), m.B.Dot(ot.B), m.B.Dot(ot.C)},
		C: Vec3{m.C.Dot(ot.A), m.C.Dot(ot.B), m.C.Dot(ot.C)},
	}
}

// Rotate applies a small body-frame rotation g (rate * dt, radians) to the
// matrix: each row r becomes r + r x g.
func (m *Mat3) Rotate(g Vec3) {
	m.A = m.A.Add(m.A.Cross(g))
	m.B = m.B.Add(m.B.Cross(g))
	m.C = m.C.Add(m.C.Cross(g))
}

// Normalize restores orthonormality after accumulated Rotate error, using
// the symmetric half-error correction between the first two rows.
func (m *Mat3) Normalize() {
	err := m.A.Dot(m.B)
	t0 := m.A.Sub(m.B.Scale(0.5 * err))
	t1 := m.B.Sub(m.A.Scale(0.5 * err))
	t2 := t0.Cross(t1)
	m.A = t0.Normalized()
	m.B = t1.Normalized()
	m.C = t2.Normalized()
}

// FromEuler builds the body-to-earth rotation from roll, pitch, yaw radians.
func FromEuler(roll, pitch, yaw float64) Mat3 {
	cp := math.Cos(pitch)
	sp := math.Sin(pitch)
	sr := math.Sin(roll)
	cr := math.Cos(roll)
	sy := math.Sin(yaw)
	cy := math.Cos(yaw)

	return Mat3{
		A: Vec3{cp * cy, sr*sp*cy - cr*sy, cr*sp*cy + sr*sy},
		B: Vec3{cp * sy, sr*sp*sy + cr*cy, cr*sp*sy - sr*cy},
		C: Vec3{-sp, sr * cp, cr * cp},
	}
}

// ToEuler extracts roll, pitch, yaw in radians.
func (m Mat3) ToEuler() (roll, pitch, yaw float64) {
	pitch = -math.Asin(Constrain(m.C.X, -1, 1))
	roll = math.Atan2(m.C.Y, m.C.Z)
	yaw = math.Atan2(m.B.X, m.A.X)
	return
}
