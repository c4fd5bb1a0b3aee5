package solver

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// extractRoots solves a*t^2 + 2*b*t + c = 0 lane-wise and returns the
// outer (entry) and inner (exit) roots along with a validity mask
// (spec.md §4.D steps 5-7).
//
// a == 0 is not a numerical tolerance case: a plane's implicit equation
// (planeCoeffs) always carries a == 0 exactly, and its one root comes
// straight from the linear remainder 2*b*t + c = 0. The near-zero-
// discriminant tie-break is a separate, genuine quadric condition
// (|d| < DEps) and is tracked independently in ctx.DMask, matching its
// doc comment; ctx.AMask likewise gets sign(a), the quantity the
// outer/inner swap is defined against.
func extractRoots(ctx *context.Context, a, b, c wide.F32, surf *scene.Surface) (outer, inner wide.F32, valid wide.Mask) {
	w := len(a)
	zero := wide.NewF32(w)
	deps := wide.Splat(w, surf.DEps)
	teps := wide.Splat(w, surf.TEps)

	disc := wide.Sub(wide.Mul(b, b), wide.Mul(a, c))

	var discReject wide.Mask
	if surf.Kind == scene.KindTwoPlane {
		// spec.md §4.D step 5: the two-plane discriminant is "explicitly
		// forced non-negative via masking" — clamped to zero, not abs()'d.
		// abs() would manufacture a spurious root out of a lane whose true
		// discriminant is genuinely negative instead of flattening it.
		disc = wide.Max(disc, zero)
		discReject = wide.SplatMask(w, false)
	} else {
		discReject = wide.CmpLT(disc, zero)
	}

	tieBreak := wide.CmpLT(wide.Abs(disc), deps)
	sqrtDisc := wide.Sqrt(wide.Max(disc, zero))

	// Stable root extraction (spec.md §4.D step 6): t1 takes the
	// cancellation-safe subtraction, t2 is recovered from the root
	// product t1*t2 = c/a instead of repeating the subtraction with the
	// opposite sign.
	aZero := wide.CmpEQ(a, zero)
	safeA := wide.Select(aZero, wide.Splat(w, 1), a)
	t1 := wide.Div(wide.Sub(wide.Neg(b), wide.CopySign(sqrtDisc, b)), safeA)
	t1 = wide.Select(aZero, zero, t1)

	denom2 := wide.Mul(a, t1)
	denom2Zero := wide.CmpEQ(denom2, zero)
	safeDenom2 := wide.Select(denom2Zero, wide.Splat(w, 1), denom2)
	t2 := wide.Select(denom2Zero, zero, wide.Div(c, safeDenom2))
	// A zero t2-denominator that isn't simply a plane's structural a == 0
	// is a genuine ambiguous double root: the spec's sentinel case.
	denom2ZeroQuad := wide.AndNot(denom2Zero, aZero)

	// Near-zero-discriminant tie-break (spec.md §4.D step 7): equate the
	// roots at their mid-point, then pull them apart again by ±t_eps·t1,
	// signed by sign(a), so whichever root was outer before the
	// perturbation stays outer afterward.
	mid := wide.Mul(wide.Add(t1, t2), wide.Splat(w, 0.5))
	spread := wide.Mul(wide.Sign(a), wide.Mul(teps, t1))
	t1 = wide.Select(tieBreak, wide.Sub(mid, spread), t1)
	t2 = wide.Select(tieBreak, wide.Add(mid, spread), t2)

	// A plane (a == 0 exactly) resolves its one root from the linear
	// remainder directly; a zero RAY_k (b == 0 too) disables the lane
	// entirely, per spec.md §4.D step 5's plane rule.
	bZero := wide.CmpEQ(b, zero)
	safeB := wide.Select(bZero, wide.Splat(w, 1), b)
	linear := wide.Select(bZero, zero, wide.Neg(wide.Div(c, wide.Mul(safeB, wide.Splat(w, 2)))))
	linearInvalid := wide.And(aZero, bZero)
	t1 = wide.Select(aZero, linear, t1)
	t2 = wide.Select(aZero, linear, t2)

	// Outer/inner assignment (spec.md §4.D step 7): sign(a) XOR sign(b)
	// decides which stable root is the outer entry.
	signA := wide.FromSignBit(a)
	swap := wide.Xor(signA, wide.FromSignBit(b))
	outer = wide.Select(swap, t2, t1)
	inner = wide.Select(swap, t1, t2)

	valid = wide.Not(discReject)
	valid = wide.AndNot(valid, linearInvalid)
	valid = wide.AndNot(valid, denom2ZeroQuad)

	ctx.AMask = signA
	ctx.DMask = tieBreak
	return
}
