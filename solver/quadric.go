package solver

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// quadricCoeffs expands the general quadric
//
//	SCI.x*x^2 + SCI.y*y^2 + SCI.z*z^2 + SCJ.x*x + SCJ.y*y + SCJ.z*z + SCIW = 0
//
// at x = DFF_I + t*RAY_I (and the J, K analogues) into the standard
// quadratic a*t^2 + 2*b*t + c = 0, returning the half-linear coefficient
// b so the caller can use the simplified formula t = (-b ± sqrt(b²-ac))/a
// (spec.md §4.D step 5).
func quadricCoeffs(ctx *context.Context, surf *scene.Surface) (a, b, c wide.F32) {
	w := ctx.Width
	sciX, sciY, sciZ := wide.Splat(w, surf.SCI[0]), wide.Splat(w, surf.SCI[1]), wide.Splat(w, surf.SCI[2])
	scjX, scjY, scjZ := wide.Splat(w, surf.SCJ[0]), wide.Splat(w, surf.SCJ[1]), wide.Splat(w, surf.SCJ[2])

	a = wide.Mul(sciX, wide.Mul(ctx.RayI, ctx.RayI))
	a = wide.MulAdd(sciY, wide.Mul(ctx.RayJ, ctx.RayJ), a)
	a = wide.MulAdd(sciZ, wide.Mul(ctx.RayK, ctx.RayK), a)

	half := wide.Splat(w, 0.5)
	b = wide.Mul(sciX, wide.Mul(ctx.DffI, ctx.RayI))
	b = wide.MulAdd(sciY, wide.Mul(ctx.DffJ, ctx.RayJ), b)
	b = wide.MulAdd(sciZ, wide.Mul(ctx.DffK, ctx.RayK), b)
	b = wide.MulAdd(half, wide.Mul(scjX, ctx.RayI), b)
	b = wide.MulAdd(half, wide.Mul(scjY, ctx.RayJ), b)
	b = wide.MulAdd(half, wide.Mul(scjZ, ctx.RayK), b)

	c = wide.Mul(sciX, wide.Mul(ctx.DffI, ctx.DffI))
	c = wide.MulAdd(sciY, wide.Mul(ctx.DffJ, ctx.DffJ), c)
	c = wide.MulAdd(sciZ, wide.Mul(ctx.DffK, ctx.DffK), c)
	c = wide.MulAdd(scjX, ctx.DffI, c)
	c = wide.MulAdd(scjY, ctx.DffJ, c)
	c = wide.MulAdd(scjZ, ctx.DffK, c)
	c = wide.Add(c, wide.Splat(w, surf.SCIW))
	return
}
