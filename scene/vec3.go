package scene

// Vec3 is a world- or local-space 3-component vector or point.
type Vec3 [3]float32

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a Vec3) Scale(s float32) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }
func (a Vec3) Dot(b Vec3) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Mat3 is a 3x3 row-major transform matrix: Rows[i] is the i-th row.
type Mat3 struct {
	Rows [3]Vec3
}

// Apply rotates v by m (m * v).
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{m.Rows[0].Dot(v), m.Rows[1].Dot(v), m.Rows[2].Dot(v)}
}

// ApplyTranspose rotates v by the transpose of m (mᵀ * v), used for the
// inverse of an orthonormal transform.
func (m Mat3) ApplyTranspose(v Vec3) Vec3 {
	return Vec3{
		m.Rows[0][0]*v[0] + m.Rows[1][0]*v[1] + m.Rows[2][0]*v[2],
		m.Rows[0][1]*v[0] + m.Rows[1][1]*v[1] + m.Rows[2][1]*v[2],
		m.Rows[0][2]*v[0] + m.Rows[1][2]*v[1] + m.Rows[2][2]*v[2],
	}
}

// IsDiagonal reports whether m only scales along the main axes, enabling
// the solver's scaling-only fastpath (spec.md §4.D step 3).
func (m Mat3) IsDiagonal() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j && m.Rows[i][j] != 0 {
				return false
			}
		}
	}
	return true
}
