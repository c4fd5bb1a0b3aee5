package solver

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
)

// planeCoeffs returns the degenerate quadratic (a=0) for a plane
// primitive: its implicit surface is local-K = 0, so the single root is
// t = -DFF_K / RAY_K (spec.md, scene.KindPlane doc).
func planeCoeffs(ctx *context.Context) (a, b, c wide.F32) {
	w := ctx.Width
	a = wide.NewF32(w)
	b = wide.Mul(ctx.RayK, wide.Splat(w, 0.5))
	c = ctx.DffK
	return
}
