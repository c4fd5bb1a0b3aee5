package solver

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// applyClip narrows mask to the lanes whose candidate hit at t survives
// surf's axis min/max clippers and custom clip list, per spec.md §4.D's
// clipping sub-engine.
func applyClip(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, side context.Side, t wide.F32, mask wide.Mask, list scene.List) wide.Mask {
	hx := wide.MulAdd(t, ctx.RayX, ctx.OrgX)
	hy := wide.MulAdd(t, ctx.RayY, ctx.OrgY)
	hz := wide.MulAdd(t, ctx.RayZ, ctx.OrgZ)

	out := applyAxisClip(ctx.Width, surf, hx, hy, hz, mask)
	if out.None() {
		return out
	}
	return applyCustomClip(ctx, surf, hx, hy, hz, out)
}

// applyAxisClip ANDs in a world-axis-aligned min/max box test per
// enabled axis (spec.md §3 "Clip").
func applyAxisClip(width int, surf *scene.Surface, hx, hy, hz wide.F32, mask wide.Mask) wide.Mask {
	coords := [3]wide.F32{hx, hy, hz}
	out := mask.Clone()
	for axis := 0; axis < 3; axis++ {
		clip := surf.Clip[axis]
		if !clip.MinEnabled && !clip.MaxEnabled {
			continue
		}
		if clip.MinEnabled {
			out = wide.And(out, wide.CmpGE(coords[axis], wide.Splat(width, clip.Min)))
		}
		if clip.MaxEnabled {
			out = wide.And(out, wide.CmpLE(coords[axis], wide.Splat(width, clip.Max)))
		}
		if out.None() {
			return out
		}
	}
	return out
}

// applyCustomClip walks surf's ClipList, evaluating each referenced
// clip surface's implicit function sign at the hit point. AccumEnter/
// Leave pairs bracket a union sub-scope: entering saves the running
// mask and restarts from the caller's base mask, leaving ANDs the
// sub-scope's result back into the saved mask (spec.md §4.D, scene.
// ClipNodeKind doc).
func applyCustomClip(ctx *context.Context, surf *scene.Surface, hx, hy, hz wide.F32, mask wide.Mask) wide.Mask {
	if len(surf.ClipList) == 0 {
		return mask
	}

	acc := mask.Clone()
	var stack []wide.Mask

	for _, node := range surf.ClipList {
		switch node.Kind {
		case scene.ClipAccumEnter:
			stack = append(stack, acc.Clone())
			acc = mask.Clone()

		case scene.ClipAccumLeave:
			if len(stack) == 0 {
				continue
			}
			saved := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			acc = wide.And(saved, acc)

		case scene.ClipSurface:
			inside := evalInsideMask(ctx.Width, node.Surface, hx, hy, hz)
			if node.Inside {
				acc = wide.Or(acc, wide.And(inside, mask))
			} else {
				acc = wide.And(acc, inside)
			}
		}
		if acc.None() {
			break
		}
	}
	return acc
}

// evalInsideMask reports where the world point (hx,hy,hz) lies on the
// negative side of clipSurf's implicit function: f(local) <= 0 for a
// quadric, local-K <= 0 for a plane. This is the sign convention a
// clip surface's own solid interior uses.
func evalInsideMask(width int, clipSurf *scene.Surface, hx, hy, hz wide.F32) wide.Mask {
	px := wide.Sub(hx, wide.Splat(width, clipSurf.Pos[0]))
	py := wide.Sub(hy, wide.Splat(width, clipSurf.Pos[1]))
	pz := wide.Sub(hz, wide.Splat(width, clipSurf.Pos[2]))

	var li, lj, lk wide.F32
	switch {
	case clipSurf.Transform != nil:
		li, lj, lk = rotate(width, *clipSurf.Transform, px, py, pz)
	case !clipSurf.AxisMap.IsIdentity():
		li, lj, lk = permute(clipSurf.AxisMap, clipSurf.AxisSign, px, py, pz)
	default:
		li, lj, lk = px, py, pz
	}

	if clipSurf.Kind == scene.KindPlane {
		return wide.CmpLE(lk, wide.NewF32(width))
	}

	sciX, sciY, sciZ := wide.Splat(width, clipSurf.SCI[0]), wide.Splat(width, clipSurf.SCI[1]), wide.Splat(width, clipSurf.SCI[2])
	scjX, scjY, scjZ := wide.Splat(width, clipSurf.SCJ[0]), wide.Splat(width, clipSurf.SCJ[1]), wide.Splat(width, clipSurf.SCJ[2])

	f := wide.Mul(sciX, wide.Mul(li, li))
	f = wide.MulAdd(sciY, wide.Mul(lj, lj), f)
	f = wide.MulAdd(sciZ, wide.Mul(lk, lk), f)
	f = wide.MulAdd(scjX, li, f)
	f = wide.MulAdd(scjY, lj, f)
	f = wide.MulAdd(scjZ, lk, f)
	f = wide.Add(f, wide.Splat(width, clipSurf.SCIW))

	return wide.CmpLE(f, wide.NewF32(width))
}
