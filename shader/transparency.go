package shader

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// transmitBounce refracts the incoming ray through the surface using
// the material's precomputed Rfr2 = 1 - Refract^2, and casts it as a
// PassThru secondary ray weighted by the material's transmit weight,
// times (1 - Fresnel reflectance) when PropFresnel is set (spec.md
// §4.F step 4). Lanes at or past
// total internal reflection contribute nothing; their energy belongs
// entirely to the paired reflection bounce.
func transmitBounce(ctx *context.Context, mat *scene.Material, mask wide.Mask, recurse RecurseFunc) (r, g, b wide.F32) {
	w := ctx.Width

	nDotI := wide.MulAdd(ctx.RayX, ctx.NrmX, wide.MulAdd(ctx.RayY, ctx.NrmY, wide.Mul(ctx.RayZ, ctx.NrmZ)))
	eta := wide.Splat(w, mat.Refract)
	rfr2 := wide.Splat(w, mat.Rfr2)

	// k = 1 - eta^2*(1 - (N·I)^2) = Rfr2 + eta^2*(N·I)^2.
	k := wide.Add(rfr2, wide.Mul(wide.Mul(eta, eta), wide.Mul(nDotI, nDotI)))
	totalInternal := wide.CmpLT(k, wide.NewF32(w))
	active := wide.AndNot(mask, totalInternal)
	if active.None() {
		return wide.NewF32(w), wide.NewF32(w), wide.NewF32(w)
	}

	sqrtK := wide.Sqrt(wide.Max(k, wide.NewF32(w)))
	// sqrt(k) takes the sign of N·I so the ray goes through the surface
	// whichever way the normal faces.
	coeff := wide.Sub(wide.Mul(eta, nDotI), wide.CopySign(sqrtK, nDotI))

	ctx.NewX = wide.Sub(wide.Mul(eta, ctx.RayX), wide.Mul(coeff, ctx.NrmX))
	ctx.NewY = wide.Sub(wide.Mul(eta, ctx.RayY), wide.Mul(coeff, ctx.NrmY))
	ctx.NewZ = wide.Sub(wide.Mul(eta, ctx.RayZ), wide.Mul(coeff, ctx.NrmZ))

	weight := wide.Splat(w, mat.Transmit)
	if mat.Props.Has(scene.PropFresnel) {
		weight = wide.Mul(weight, wide.Sub(wide.Splat(w, 1), Fresnel(nDotI, mat)))
	}

	tr, tg, tb := recurse(ctx, context.PassThru, active)
	r = wide.Select(active, wide.Mul(tr, weight), wide.NewF32(w))
	g = wide.Select(active, wide.Mul(tg, weight), wide.NewF32(w))
	b = wide.Select(active, wide.Mul(tb, weight), wide.NewF32(w))
	return
}
