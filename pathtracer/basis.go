package pathtracer

import (
	"math"

	"github.com/vecrt/rt/internal/wide"
)

// orthonormalBasis builds (u, v) tangent vectors completing n into a
// right-handed basis, using the branchless construction from Duff et
// al. ("Building an Orthonormal Basis, Revisited"): no per-lane
// conditional beyond the sign of n.z, so it vectorizes the same way
// the rest of the shading math does.
func orthonormalBasis(nx, ny, nz wide.F32) (ux, uy, uz, vx, vy, vz wide.F32) {
	w := len(nx)
	one := wide.Splat(w, 1)
	sign := wide.CopySign(one, nz)

	a := wide.Neg(wide.Rcp(wide.Add(sign, nz)))
	b := wide.Mul(wide.Mul(nx, ny), a)

	ux = wide.Add(one, wide.Mul(sign, wide.Mul(nx, wide.Mul(nx, a))))
	uy = wide.Mul(sign, b)
	uz = wide.Neg(wide.Mul(sign, nx))

	vx = b
	vy = wide.Add(sign, wide.Mul(ny, wide.Mul(ny, a)))
	vz = wide.Neg(ny)
	return
}

// cosineHemisphereSample draws a direction over the hemisphere around
// (nx, ny, nz), weighted by cos(theta), from two uniform draws u1, u2
// (spec.md §4.I step 3).
func cosineHemisphereSample(nx, ny, nz, u1, u2 wide.F32) (dx, dy, dz wide.F32) {
	w := len(nx)
	ux, uy, uz, vx, vy, vz := orthonormalBasis(nx, ny, nz)

	r := wide.Sqrt(u1)
	phi := wide.Mul(wide.Splat(w, 2*pi), u2)
	cosPhi, sinPhi := cosSin(phi)

	rc := wide.Mul(r, cosPhi)
	rs := wide.Mul(r, sinPhi)
	h := wide.Sqrt(wide.Max(wide.Sub(wide.Splat(w, 1), u1), wide.NewF32(w)))

	dx = wide.MulAdd(rc, ux, wide.MulAdd(rs, vx, wide.Mul(h, nx)))
	dy = wide.MulAdd(rc, uy, wide.MulAdd(rs, vy, wide.Mul(h, ny)))
	dz = wide.MulAdd(rc, uz, wide.MulAdd(rs, vz, wide.Mul(h, nz)))
	return
}

const pi = math.Pi

func cosSin(phi wide.F32) (cosv, sinv wide.F32) {
	cosv, sinv = make(wide.F32, len(phi)), make(wide.F32, len(phi))
	for i, p := range phi {
		s, c := math.Sincos(float64(p))
		cosv[i], sinv[i] = float32(c), float32(s)
	}
	return
}
