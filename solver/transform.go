package solver

import (
	"math"

	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// localCoords derives DFF_I/J/K and RAY_I/J/K from the world-space
// DFF/RAY fields, applying (in order of preference) a shared group
// transform, the surface's own transform, its axis map, or a direct
// copy when the surface carries no local-space remapping at all
// (spec.md §4.D step 3).
//
// A diagonal transform only scales: the general 3x3 rotation reduces to
// three independent multiplies with no cross terms, which is cheaper to
// auto-vectorize than the full matrix product (spec.md §4.E "transform
// ... scaling-only fastpath").
//
// selfHit marks lanes whose previous bounce originated on surf itself.
// For those lanes DFF_I/J/K are taken from NrmI/J/K, the local-space hit
// point the prior bounce's computeNormal cached there, instead of being
// re-derived from world-space DFF — the self-hit shortcut of spec.md
// §4.D step 1. RAY_I/J/K are always recomputed fresh since a bounce's
// direction never matches its parent's.
func localCoords(ctx *context.Context, surf *scene.Surface, transform *scene.Mat3, groupPos scene.Vec3, selfHit wide.Mask) {
	pos := surf.Pos.Add(groupPos)
	ctx.DffX = wide.Sub(ctx.OrgX, wide.Splat(ctx.Width, pos[0]))
	ctx.DffY = wide.Sub(ctx.OrgY, wide.Splat(ctx.Width, pos[1]))
	ctx.DffZ = wide.Sub(ctx.OrgZ, wide.Splat(ctx.Width, pos[2]))

	var dffI, dffJ, dffK wide.F32
	var rayI, rayJ, rayK wide.F32
	switch {
	case transform != nil && transform.IsDiagonal():
		sx, sy, sz := transform.Rows[0][0], transform.Rows[1][1], transform.Rows[2][2]
		dffI = wide.Mul(ctx.DffX, wide.Splat(ctx.Width, sx))
		dffJ = wide.Mul(ctx.DffY, wide.Splat(ctx.Width, sy))
		dffK = wide.Mul(ctx.DffZ, wide.Splat(ctx.Width, sz))
		rayI = wide.Mul(ctx.RayX, wide.Splat(ctx.Width, sx))
		rayJ = wide.Mul(ctx.RayY, wide.Splat(ctx.Width, sy))
		rayK = wide.Mul(ctx.RayZ, wide.Splat(ctx.Width, sz))

	case transform != nil:
		dffI, dffJ, dffK = rotate(ctx.Width, *transform, ctx.DffX, ctx.DffY, ctx.DffZ)
		rayI, rayJ, rayK = rotate(ctx.Width, *transform, ctx.RayX, ctx.RayY, ctx.RayZ)

	case !surf.AxisMap.IsIdentity():
		dffI, dffJ, dffK = permute(surf.AxisMap, surf.AxisSign, ctx.DffX, ctx.DffY, ctx.DffZ)
		rayI, rayJ, rayK = permute(surf.AxisMap, surf.AxisSign, ctx.RayX, ctx.RayY, ctx.RayZ)

	default:
		dffI, dffJ, dffK = ctx.DffX, ctx.DffY, ctx.DffZ
		rayI, rayJ, rayK = ctx.RayX, ctx.RayY, ctx.RayZ
	}

	if selfHit.None() {
		ctx.DffI, ctx.DffJ, ctx.DffK = dffI, dffJ, dffK
	} else {
		ctx.DffI = wide.Select(selfHit, ctx.NrmI, dffI)
		ctx.DffJ = wide.Select(selfHit, ctx.NrmJ, dffJ)
		ctx.DffK = wide.Select(selfHit, ctx.NrmK, dffK)
	}
	ctx.RayI, ctx.RayJ, ctx.RayK = rayI, rayJ, rayK
}

// rotate applies m (3x3, row-major) to a lane-packed vector.
func rotate(width int, m scene.Mat3, x, y, z wide.F32) (i, j, k wide.F32) {
	rowDot := func(row scene.Vec3) wide.F32 {
		t := wide.Mul(x, wide.Splat(width, row[0]))
		t = wide.MulAdd(y, wide.Splat(width, row[1]), t)
		t = wide.MulAdd(z, wide.Splat(width, row[2]), t)
		return t
	}
	return rowDot(m.Rows[0]), rowDot(m.Rows[1]), rowDot(m.Rows[2])
}

// rotateTranspose applies mᵀ, the inverse of an orthonormal m, undoing
// rotate's forward transform.
func rotateTranspose(width int, m scene.Mat3, i, j, k wide.F32) (x, y, z wide.F32) {
	col := func(c int) wide.F32 {
		t := wide.Mul(i, wide.Splat(width, m.Rows[0][c]))
		t = wide.MulAdd(j, wide.Splat(width, m.Rows[1][c]), t)
		t = wide.MulAdd(k, wide.Splat(width, m.Rows[2][c]), t)
		return t
	}
	return col(0), col(1), col(2)
}

// permute maps local axes I,J,K to world axes X,Y,Z through axisMap
// with a per-axis sign flip, at far lower cost than a full rotate.
func permute(axisMap scene.AxisMap, axisSign scene.AxisSign, x, y, z wide.F32) (i, j, k wide.F32) {
	src := [3]wide.F32{x, y, z}
	out := [3]wide.F32{}
	for local := 0; local < 3; local++ {
		world := axisMap[local]
		sign := axisSign[local]
		if sign == 0 {
			sign = 1
		}
		out[local] = wide.Mul(src[world], wide.Splat(len(x), sign))
	}
	return out[0], out[1], out[2]
}

// permuteInverse undoes permute: it scatters local lanes back to their
// world axis slots. Since axisMap is a bijection and axisSign is ±1,
// the inverse permutation uses the same sign (sign^2 == 1) applied in
// the opposite direction.
func permuteInverse(axisMap scene.AxisMap, axisSign scene.AxisSign, i, j, k wide.F32) (x, y, z wide.F32) {
	local := [3]wide.F32{i, j, k}
	out := [3]wide.F32{}
	for l := 0; l < 3; l++ {
		world := axisMap[l]
		sign := axisSign[l]
		if sign == 0 {
			sign = 1
		}
		out[world] = wide.Mul(local[l], wide.Splat(len(i), sign))
	}
	return out[0], out[1], out[2]
}

// computeNormal finalizes the world-space surface normal for the
// winning hit, per spec.md §4.D/§4.F: a plane's normal is its fixed
// local-K axis direction; a quadric's is the gradient of its implicit
// equation at the local hit point. Both are rotated back to world space
// and flipped by the side's sign base.
func computeNormal(ctx *context.Context, surf *scene.Surface, transform *scene.Mat3, side context.Side, mask wide.Mask) {
	signBase := surf.SignBaseOuter
	if side == context.SideInner {
		signBase = surf.SignBaseInner
	}
	sign := wide.Splat(ctx.Width, signBase)

	var nx, ny, nz wide.F32
	switch surf.Kind {
	case scene.KindPlane:
		nx, ny, nz = localToWorld(ctx.Width, surf, transform, wide.NewF32(ctx.Width), wide.NewF32(ctx.Width), splatOnes(ctx.Width))
	default:
		li := wide.MulAdd(ctx.TVal, ctx.RayI, ctx.DffI)
		lj := wide.MulAdd(ctx.TVal, ctx.RayJ, ctx.DffJ)
		lk := wide.MulAdd(ctx.TVal, ctx.RayK, ctx.DffK)

		if surf.Conic {
			snap := wide.And(mask, ctx.DMask)
			if snap.Any() {
				li, lj, lk = snapConicApex(ctx.Width, surf, ctx.DffI, ctx.DffJ, ctx.DffK, li, lj, lk, snap)
			}
		}

		ctx.NrmI = wide.Select(mask, li, ctx.NrmI)
		ctx.NrmJ = wide.Select(mask, lj, ctx.NrmJ)
		ctx.NrmK = wide.Select(mask, lk, ctx.NrmK)

		two := wide.Splat(ctx.Width, 2)
		gi := wide.MulAdd(wide.Mul(two, wide.Splat(ctx.Width, surf.SCI[0])), li, wide.Splat(ctx.Width, surf.SCJ[0]))
		gj := wide.MulAdd(wide.Mul(two, wide.Splat(ctx.Width, surf.SCI[1])), lj, wide.Splat(ctx.Width, surf.SCJ[1]))
		gk := wide.MulAdd(wide.Mul(two, wide.Splat(ctx.Width, surf.SCI[2])), lk, wide.Splat(ctx.Width, surf.SCJ[2]))

		lenSq := wide.MulAdd(gi, gi, wide.MulAdd(gj, gj, wide.Mul(gk, gk)))
		invLen := wide.Rsqrt(lenSq)
		gi, gj, gk = wide.Mul(gi, invLen), wide.Mul(gj, invLen), wide.Mul(gk, invLen)

		nx, ny, nz = localToWorld(ctx.Width, surf, transform, gi, gj, gk)
	}

	nx, ny, nz = wide.Mul(nx, sign), wide.Mul(ny, sign), wide.Mul(nz, sign)
	ctx.NrmX = wide.Select(mask, nx, ctx.NrmX)
	ctx.NrmY = wide.Select(mask, ny, ctx.NrmY)
	ctx.NrmZ = wide.Select(mask, nz, ctx.NrmZ)
}

func localToWorld(width int, surf *scene.Surface, transform *scene.Mat3, i, j, k wide.F32) (x, y, z wide.F32) {
	switch {
	case transform != nil && transform.IsDiagonal():
		// Diagonal scaling is its own transpose; go back to world by
		// multiplying by the same factors localCoords multiplied in.
		return wide.Mul(i, wide.Splat(width, transform.Rows[0][0])),
			wide.Mul(j, wide.Splat(width, transform.Rows[1][1])),
			wide.Mul(k, wide.Splat(width, transform.Rows[2][2]))
	case transform != nil:
		return rotateTranspose(width, *transform, i, j, k)
	case !surf.AxisMap.IsIdentity():
		return permuteInverse(surf.AxisMap, surf.AxisSign, i, j, k)
	default:
		return i, j, k
	}
}

func splatOnes(width int) wide.F32 { return wide.Splat(width, 1) }

// snapConicApex replaces a near-tangent quadric's local hit coordinates
// with a point along the signs of the surface's DFF offset, scaled by
// the surface's own diagonal coefficients, for lanes flagged both by
// the conic surface's singularity flag and by the near-zero-
// discriminant tie-break mask (spec.md §4.D clipping sub-engine, "conic
// singularity adjustment"). A cone's gradient vanishes at its apex;
// snapping the point this way keeps the derived normal stable there
// instead of amplifying noise from an almost-zero gradient.
func snapConicApex(width int, surf *scene.Surface, dffI, dffJ, dffK, li, lj, lk wide.F32, mask wide.Mask) (wide.F32, wide.F32, wide.F32) {
	scaleI := wide.Splat(width, sqrtAbs(surf.SCI[0]))
	scaleJ := wide.Splat(width, sqrtAbs(surf.SCI[1]))
	scaleK := wide.Splat(width, sqrtAbs(surf.SCI[2]))

	snapI := wide.Mul(wide.Sign(dffI), scaleI)
	snapJ := wide.Mul(wide.Sign(dffJ), scaleJ)
	snapK := wide.Mul(wide.Sign(dffK), scaleK)

	return wide.Select(mask, snapI, li), wide.Select(mask, snapJ, lj), wide.Select(mask, snapK, lk)
}

func sqrtAbs(v float32) float32 {
	if v < 0 {
		v = -v
	}
	return float32(math.Sqrt(float64(v)))
}
