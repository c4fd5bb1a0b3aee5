package solver

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/rtlog"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// ShadeFunc is invoked once per surface/side combination that survives
// intersection and clipping, with mask marking the lanes that actually
// hit. Defined here (rather than imported from package shader) so
// package dispatch can wire solver and shader together without an
// import cycle: shader needs to trigger another Intersect pass for
// shadow/transmission/reflection rays.
type ShadeFunc func(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, side context.Side, mat *scene.Material, mask wide.Mask)

// Intersect walks list in order, testing every surface against the
// active lanes of ctx and invoking shade for each side of each surface
// that wins the depth buffer, per spec.md §4.D.
//
// Transform groups and bounding arrays apply to a contiguous run of
// following entries (spec.md §4.E); both are handled by local state
// carried across loop iterations rather than mutating list itself.
func Intersect(ctx *context.Context, consts *wide.Constants, list scene.List, shade ShadeFunc) {
	var groupTransform *scene.Mat3
	var groupPos scene.Vec3
	groupRemaining := 0

	for i := 0; i < len(list); i++ {
		node := list[i]

		switch node.Kind {
		case scene.NodeTransformGroup:
			groupTransform = node.GroupTransform
			groupPos = node.GroupPos
			groupRemaining = node.GroupLen
			continue

		case scene.NodeBoundingArray:
			if rejectBoundingArray(ctx, consts, node.Surface, groupTransform, groupPos) {
				rtlog.Logger().Debug("bounding array rejected, skipping group", "group_len", node.GroupLen)
				i += node.GroupLen
			}
			continue

		case scene.NodeSurface:
			intersectOne(ctx, consts, node.Surface, groupTransform, groupPos, list, shade)
			if groupRemaining > 0 {
				groupRemaining--
				if groupRemaining == 0 {
					groupTransform = nil
				}
			}
		}
	}
}

// intersectOne runs the full per-surface pipeline of spec.md §4.D steps
// 1-8 for one surface: self-hit shortcut, DFF/transform, primitive
// intersection, root extraction and tie-break, clipping, then a shade
// call per surviving side.
func intersectOne(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, groupTransform *scene.Mat3, groupPos scene.Vec3, list scene.List, shade ShadeFunc) {
	active := ctx.WMask
	if active.None() {
		return
	}

	transform := groupTransform
	if transform == nil {
		transform = surf.Transform
	}

	selfHit := selfHitLanes(ctx, surf)
	if surf.Kind == scene.KindPlane {
		// A plane has no interior: a ray leaving a plane can never
		// re-intersect it, so self-hit lanes are excluded outright rather
		// than given a cached-coordinate shortcut (spec.md §4.D step 5,
		// "a plane ... is skipped for those").
		active = wide.AndNot(active, selfHit)
		if active.None() {
			return
		}
		localCoords(ctx, surf, transform, groupPos, wide.NewMask(ctx.Width))
	} else {
		localCoords(ctx, surf, transform, groupPos, selfHit)
	}

	var a, b, c wide.F32
	switch surf.Kind {
	case scene.KindPlane:
		a, b, c = planeCoeffs(ctx)
	case scene.KindTwoPlane:
		a, b, c = twoPlaneCoeffs(ctx, surf)
	default:
		a, b, c = quadricCoeffs(ctx, surf)
	}

	tOuter, tInner, valid := extractRoots(ctx, a, b, c, surf)
	valid = wide.And(valid, active)
	if valid.None() {
		return
	}

	// A lane's winning side is whichever root is the nearest one still
	// ahead of T_MIN: the outer (entry) root if the ray origin is
	// outside the solid, the inner (exit) root if the origin is already
	// inside it (spec.md §4.D step 8 "per-side loop"). A solid's two
	// roots never both face the same ray, so only one side ever wins a
	// given lane.
	outerMask := wide.And(valid, inRangeMask(ctx, tOuter))
	innerMask := wide.And(valid, wide.AndNot(inRangeMask(ctx, tInner), outerMask))

	for _, side := range [2]context.Side{context.SideOuter, context.SideInner} {
		t := tOuter
		sideMask := outerMask
		if side == context.SideInner {
			t = tInner
			sideMask = innerMask
		}
		if sideMask.None() {
			continue
		}

		sideMask = applyClip(ctx, consts, surf, side, t, sideMask, list)
		if sideMask.None() {
			continue
		}

		commitHit(ctx, surf, transform, side, t, sideMask)

		mat := surf.OuterMaterial
		if side == context.SideInner {
			mat = surf.InnerMaterial
		}
		if mat == nil {
			continue
		}
		shade(ctx, consts, surf, side, mat, sideMask)
	}
}

// selfHitLanes reports which lanes' previous bounce originated on surf
// itself. A closed surface's exit hit is found by continuing to test
// the very same *scene.Surface record, so these lanes take the cached-
// coordinate shortcut in localCoords rather than being excluded from
// testing (spec.md §4.D step 1).
func selfHitLanes(ctx *context.Context, surf *scene.Surface) wide.Mask {
	id := surf.ID()
	m := wide.NewMask(ctx.Width)
	for i := 0; i < ctx.Width; i++ {
		if ctx.OrgSurf[i] == id {
			m[i] = wide.MaskTrue
		}
	}
	return m
}

// inRangeMask reports which lanes have a candidate root inside the
// active near/far window (T_MIN, T_BUF).
func inRangeMask(ctx *context.Context, t wide.F32) wide.Mask {
	return wide.And(wide.CmpGT(t, ctx.TMin), wide.CmpLT(t, ctx.TBuf))
}

// commitHit writes the winning root into the depth buffer and derives
// the world-space hit point and originating-surface bookkeeping used by
// the next bounce's self-hit shortcut.
func commitHit(ctx *context.Context, surf *scene.Surface, transform *scene.Mat3, side context.Side, t wide.F32, mask wide.Mask) {
	ctx.TBuf = wide.Select(mask, t, ctx.TBuf)
	ctx.TVal = wide.Select(mask, t, ctx.TVal)
	ctx.TMask = wide.Or(ctx.TMask, mask)

	ctx.HitX = wide.Select(mask, wide.MulAdd(t, ctx.RayX, ctx.OrgX), ctx.HitX)
	ctx.HitY = wide.Select(mask, wide.MulAdd(t, ctx.RayY, ctx.OrgY), ctx.HitY)
	ctx.HitZ = wide.Select(mask, wide.MulAdd(t, ctx.RayZ, ctx.OrgZ), ctx.HitZ)

	for i := 0; i < ctx.Width; i++ {
		if mask[i] != wide.MaskFalse {
			ctx.SrfSurf[i] = surf
			ctx.SrfSide[i] = side
		}
	}

	computeNormal(ctx, surf, transform, side, mask)
}
