package shader

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// directLight sums the ambient term and each light's diffuse+specular
// contribution, with a shadow test gating each light per lane
// (spec.md §4.F step 3).
func directLight(ctx *context.Context, mat *scene.Material, mask wide.Mask, env Environment, baseR, baseG, baseB wide.F32, shadow ShadowFunc) (r, g, b wide.F32) {
	w := ctx.Width
	ambient := wide.Splat(w, env.AmbientIntensity)
	r = wide.Mul(baseR, wide.Mul(ambient, wide.Splat(w, env.AmbientColor[0])))
	g = wide.Mul(baseG, wide.Mul(ambient, wide.Splat(w, env.AmbientColor[1])))
	b = wide.Mul(baseB, wide.Mul(ambient, wide.Splat(w, env.AmbientColor[2])))

	for _, light := range env.Lights {
		dR, dG, dB := lightContribution(ctx, mat, mask, light, baseR, baseG, baseB, shadow)
		r, g, b = wide.Add(r, dR), wide.Add(g, dG), wide.Add(b, dB)
	}
	return
}

func lightContribution(ctx *context.Context, mat *scene.Material, mask wide.Mask, light *scene.Light, baseR, baseG, baseB wide.F32, shadow ShadowFunc) (r, g, b wide.F32) {
	w := ctx.Width

	lx := wide.Sub(wide.Splat(w, light.Pos[0]), ctx.HitX)
	ly := wide.Sub(wide.Splat(w, light.Pos[1]), ctx.HitY)
	lz := wide.Sub(wide.Splat(w, light.Pos[2]), ctx.HitZ)

	distSq := wide.MulAdd(lx, lx, wide.MulAdd(ly, ly, wide.Mul(lz, lz)))
	invDist := wide.Rsqrt(distSq)
	lx, ly, lz = wide.Mul(lx, invDist), wide.Mul(ly, invDist), wide.Mul(lz, invDist)

	nDotL := wide.MulAdd(ctx.NrmX, lx, wide.MulAdd(ctx.NrmY, ly, wide.Mul(ctx.NrmZ, lz)))
	nDotL = wide.Max(nDotL, wide.NewF32(w))

	lit := wide.And(mask, wide.CmpGT(nDotL, wide.NewF32(w)))
	if lit.Any() && shadow != nil && len(light.ShadowCasters) > 0 {
		dist := wide.Sqrt(distSq)
		ctx.NewX, ctx.NewY, ctx.NewZ = lx, ly, lz
		ctx.TNew = wide.Mul(dist, wide.Splat(w, 0.999))
		occluded := shadow(ctx, light, lit)
		lit = wide.AndNot(lit, occluded)
	}

	atten := attenuation(w, light, distSq)
	diffuse := wide.Mul(wide.Splat(w, mat.Diffuse), nDotL)
	diffuse = wide.Mul(diffuse, atten)
	diffuse = wide.Mul(diffuse, wide.Splat(w, light.Intensity))

	vx, vy, vz := wide.Neg(ctx.RayX), wide.Neg(ctx.RayY), wide.Neg(ctx.RayZ)
	hx := wide.Add(lx, vx)
	hy := wide.Add(ly, vy)
	hz := wide.Add(lz, vz)
	hLenInv := wide.Rsqrt(wide.MulAdd(hx, hx, wide.MulAdd(hy, hy, wide.Mul(hz, hz))))
	hx, hy, hz = wide.Mul(hx, hLenInv), wide.Mul(hy, hLenInv), wide.Mul(hz, hLenInv)
	nDotH := wide.Max(wide.MulAdd(ctx.NrmX, hx, wide.MulAdd(ctx.NrmY, hy, wide.Mul(ctx.NrmZ, hz))), wide.NewF32(w))

	specExp := float32(mat.SpecularExponent) / 16 // 28.4 fixed point
	specular := wide.Pow(nDotH, specExp)
	specular = wide.Mul(specular, wide.Splat(w, mat.Specular))
	specular = wide.Mul(specular, atten)
	specular = wide.Mul(specular, wide.Splat(w, light.Intensity))

	r = wide.Select(lit, wide.Mul(wide.MulAdd(baseR, diffuse, specular), wide.Splat(w, light.Color[0])), wide.NewF32(w))
	g = wide.Select(lit, wide.Mul(wide.MulAdd(baseG, diffuse, specular), wide.Splat(w, light.Color[1])), wide.NewF32(w))
	b = wide.Select(lit, wide.Mul(wide.MulAdd(baseB, diffuse, specular), wide.Splat(w, light.Color[2])), wide.NewF32(w))
	return
}

func attenuation(w int, light *scene.Light, distSq wide.F32) wide.F32 {
	dist := wide.Sqrt(distSq)
	denom := wide.Splat(w, light.AttnConstant)
	denom = wide.MulAdd(dist, wide.Splat(w, light.AttnLinear), denom)
	denom = wide.MulAdd(distSq, wide.Splat(w, light.AttnQuadratic), denom)
	return wide.Rcp(wide.Max(denom, wide.Splat(w, 1e-6)))
}
