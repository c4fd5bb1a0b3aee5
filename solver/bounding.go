package solver

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// rejectBoundingArray evaluates a NodeBoundingArray's wrapping quadric
// against the batch's active lanes. If not a single active lane can
// possibly hit it, the caller skips the whole child run without paying
// for any of the children's own intersection tests (spec.md §4.D step
// 4, §4.E).
func rejectBoundingArray(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, groupTransform *scene.Mat3, groupPos scene.Vec3) bool {
	if surf == nil {
		return false
	}
	if ctx.WMask.None() {
		return true
	}

	transform := groupTransform
	if transform == nil {
		transform = surf.Transform
	}
	localCoords(ctx, surf, transform, groupPos, wide.NewMask(ctx.Width))

	a, b, c := quadricCoeffs(ctx, surf)
	outer, inner, valid := extractRoots(ctx, a, b, c, surf)
	valid = wide.And(valid, ctx.WMask)
	valid = wide.And(valid, wide.Or(inRangeMask(ctx, outer), inRangeMask(ctx, inner)))
	return valid.None()
}
