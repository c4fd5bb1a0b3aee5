package shader

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// reflectBounce mirrors the incoming ray about the surface normal and
// casts it as a PassBack secondary ray, weighted by the material's
// reflectivity and (for metals) tinted by its color and Fresnel
// reflectance (spec.md §4.F step 5).
func reflectBounce(ctx *context.Context, mat *scene.Material, mask wide.Mask, recurse RecurseFunc) (r, g, b wide.F32) {
	w := ctx.Width
	nDotI := wide.MulAdd(ctx.RayX, ctx.NrmX, wide.MulAdd(ctx.RayY, ctx.NrmY, wide.Mul(ctx.RayZ, ctx.NrmZ)))
	two := wide.Splat(w, 2)
	ctx.NewX = wide.Sub(ctx.RayX, wide.Mul(two, wide.Mul(nDotI, ctx.NrmX)))
	ctx.NewY = wide.Sub(ctx.RayY, wide.Mul(two, wide.Mul(nDotI, ctx.NrmY)))
	ctx.NewZ = wide.Sub(ctx.RayZ, wide.Mul(two, wide.Mul(nDotI, ctx.NrmZ)))

	weight := wide.Splat(w, mat.Reflect)
	if mat.Props.Has(scene.PropFresnel) {
		fresnel := Fresnel(nDotI, mat)
		ctx.FRfl = fresnel
		weight = wide.Mul(weight, fresnel)
	}

	rr, rg, rb := recurse(ctx, context.PassBack, mask)

	if mat.Props.Has(scene.PropMetal) {
		rr = wide.Mul(rr, wide.Splat(w, mat.Color[0]))
		rg = wide.Mul(rg, wide.Splat(w, mat.Color[1]))
		rb = wide.Mul(rb, wide.Splat(w, mat.Color[2]))
	}

	r = wide.Select(mask, wide.Mul(rr, weight), wide.NewF32(w))
	g = wide.Select(mask, wide.Mul(rg, weight), wide.NewF32(w))
	b = wide.Select(mask, wide.Mul(rb, weight), wide.NewF32(w))
	return
}

// Fresnel approximates dielectric/metal reflectance as a function of
// the grazing angle, using the material's precomputed metal-extinction
// terms when set (spec.md §4.F "metal-Fresnel reflectance").
func Fresnel(nDotI wide.F32, mat *scene.Material) wide.F32 {
	w := len(nDotI)
	cosTheta := wide.Abs(nDotI)
	oneMinusCos := wide.Sub(wide.Splat(w, 1), cosTheta)
	p5 := wide.Mul(oneMinusCos, oneMinusCos)
	p5 = wide.Mul(p5, p5)
	p5 = wide.Mul(p5, oneMinusCos)

	var r0 float32
	if mat.MetalExt2 != 0 {
		r0 = mat.MetalExt2 * mat.MetalExtRcp
	} else {
		// Schlick's r0 = ((1-n)/(1+n))^2, derived from the material's own
		// index of refraction rather than the n≈1.5 constant 0.04.
		n := mat.Refract
		if n == 0 {
			n = 1
		}
		k := (1 - n) / (1 + n)
		r0 = k * k
	}
	f0 := wide.Splat(w, r0)
	return wide.MulAdd(wide.Sub(wide.Splat(w, 1), f0), p5, f0)
}
