package pathtracer

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
	"github.com/vecrt/rt/shader"
	"github.com/vecrt/rt/solver"
)

// Tracer drives the stochastic bounce loop of spec.md §4.I on top of
// the same recursion arena package dispatch uses, but with its own
// push/pop discipline: each hit takes exactly one randomly chosen
// bounce (diffuse, specular, or a Fresnel-split reflect/refract) rather
// than shader's deterministic weighted sum of every active branch.
type Tracer struct {
	Arena   *context.Arena
	Consts  *wide.Constants
	List    scene.List
	RRDepth int // recursion depth past which Russian roulette may terminate a lane
}

// NewTracer builds a Tracer over list. RRDepth is the bounce depth
// spec.md §4.I step 4 calls "the threshold"; a typical choice is the
// arena's own max depth minus a few bounces of headroom.
func NewTracer(arena *context.Arena, consts *wide.Constants, list scene.List, rrDepth int) *Tracer {
	return &Tracer{Arena: arena, Consts: consts, List: list, RRDepth: rrDepth}
}

// TraceSample runs one full path-tracing pass starting from the
// arena's current frame, which the caller (package frame) has already
// seeded with this sample's jittered primary ray and pixel index. It
// returns the accumulated radiance for blending via Accumulate.
func (t *Tracer) TraceSample(sampler *Sampler) (r, g, b wide.F32) {
	ctx := t.Arena.Current()
	solver.Intersect(ctx, t.Consts, t.List, t.shadeFunc(sampler))
	return ctx.ColR.Clone(), ctx.ColG.Clone(), ctx.ColB.Clone()
}

func (t *Tracer) shadeFunc(sampler *Sampler) solver.ShadeFunc {
	return func(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, side context.Side, mat *scene.Material, mask wide.Mask) {
		t.shadeHit(ctx, surf, side, mat, mask, sampler)
	}
}

// shadeHit adds this hit's emission (weighted by the path's throughput
// so far), rolls Russian roulette past RRDepth, picks this hit's single
// bounce, and recurses one level to gather the rest of the path
// (spec.md §4.I steps 3-6).
func (t *Tracer) shadeHit(ctx *context.Context, surf *scene.Surface, side context.Side, mat *scene.Material, mask wide.Mask, sampler *Sampler) {
	w := ctx.Width
	texR, texG, texB := shader.SampleColor(ctx, surf, mat, mask)

	if mat.Emission != (scene.Vec3{}) {
		ctx.ColR = wide.Select(mask, wide.MulAdd(ctx.MulR, wide.Splat(w, mat.Emission[0]), ctx.ColR), ctx.ColR)
		ctx.ColG = wide.Select(mask, wide.MulAdd(ctx.MulG, wide.Splat(w, mat.Emission[1]), ctx.ColG), ctx.ColG)
		ctx.ColB = wide.Select(mask, wide.MulAdd(ctx.MulB, wide.Splat(w, mat.Emission[2]), ctx.ColB), ctx.ColB)
	}

	active := mask.Clone()
	if t.Arena.Depth() > t.RRDepth {
		active = t.rouletteSurvivors(ctx, texR, texG, texB, active, sampler)
	}
	if active.None() {
		return
	}

	dirX, dirY, dirZ, bsdfR, bsdfG, bsdfB := t.chooseBounce(ctx, mat, texR, texG, texB, sampler)

	// Push(false): this frame's throughput is computed explicitly below
	// from the parent's, not inherited from whatever this depth slot
	// held last time it was used.
	child, ok := t.Arena.Push(false)
	if !ok {
		return
	}
	child.OrgX, child.OrgY, child.OrgZ = ctx.HitX.Clone(), ctx.HitY.Clone(), ctx.HitZ.Clone()
	child.RayX, child.RayY, child.RayZ = dirX, dirY, dirZ
	child.WMask = active.Clone()
	child.MulR = wide.Select(active, wide.Mul(ctx.MulR, bsdfR), child.MulR)
	child.MulG = wide.Select(active, wide.Mul(ctx.MulG, bsdfG), child.MulG)
	child.MulB = wide.Select(active, wide.Mul(ctx.MulB, bsdfB), child.MulB)
	for i := 0; i < child.Width; i++ {
		if active[i] != wide.MaskFalse {
			child.OrgSurf[i] = surf.ID()
			child.OrgSide[i] = side
		}
	}

	solver.Intersect(child, t.Consts, t.List, t.shadeFunc(sampler))

	ctx.ColR = wide.Select(active, wide.Add(ctx.ColR, child.ColR), ctx.ColR)
	ctx.ColG = wide.Select(active, wide.Add(ctx.ColG, child.ColG), ctx.ColG)
	ctx.ColB = wide.Select(active, wide.Add(ctx.ColB, child.ColB), ctx.ColB)

	t.Arena.Pop()
}

// rouletteSurvivors implements spec.md §4.I step 4: kill a lane with
// probability 1-p where p is the lane's max albedo channel, and
// rescale surviving lanes' throughput by 1/p to keep the estimator
// unbiased.
func (t *Tracer) rouletteSurvivors(ctx *context.Context, texR, texG, texB wide.F32, active wide.Mask, sampler *Sampler) wide.Mask {
	w := ctx.Width
	p := wide.Max(texR, wide.Max(texG, texB))
	roll := sampler.Next()
	survive := wide.And(active, wide.CmpLT(roll, p))

	safeP := wide.Max(p, wide.Splat(w, 1e-4))
	invP := wide.Rcp(safeP)
	ctx.MulR = wide.Select(survive, wide.Mul(ctx.MulR, invP), ctx.MulR)
	ctx.MulG = wide.Select(survive, wide.Mul(ctx.MulG, invP), ctx.MulG)
	ctx.MulB = wide.Select(survive, wide.Mul(ctx.MulB, invP), ctx.MulB)
	return survive
}

// chooseBounce picks this hit's single outgoing direction and its
// BSDF weight, branching on which of diffuse/reflect/transmit the
// material supports (spec.md §4.I steps 3 and 5). A material with both
// reflect and transmit properties Fresnel-splits per lane instead of
// following both branches the way shader.Shade does.
func (t *Tracer) chooseBounce(ctx *context.Context, mat *scene.Material, texR, texG, texB wide.F32, sampler *Sampler) (dx, dy, dz, wr, wg, wb wide.F32) {
	w := ctx.Width
	hasReflect := mat.Props.Has(scene.PropReflect) || mat.Reflect > 0
	hasTransmit := mat.Props.Has(scene.PropTransp) || mat.Refract > 0

	switch {
	case hasReflect && hasTransmit:
		return t.fresnelSplitBounce(ctx, mat, sampler)

	case hasReflect:
		dx, dy, dz = mirrorDirection(ctx)
		wr, wg, wb = reflectWeight(mat, w)
		return

	case hasTransmit:
		rx, ry, rz, tir := refractDirection(ctx, mat)
		mx, my, mz := mirrorDirection(ctx)
		dx = wide.Select(tir, mx, rx)
		dy = wide.Select(tir, my, ry)
		dz = wide.Select(tir, mz, rz)
		wr, wg, wb = transmitWeight(mat, w)
		return

	default:
		u1, u2 := sampler.Next(), sampler.Next()
		dx, dy, dz = cosineHemisphereSample(ctx.NrmX, ctx.NrmY, ctx.NrmZ, u1, u2)
		diffuse := wide.Splat(w, mat.Diffuse)
		wr, wg, wb = wide.Mul(texR, diffuse), wide.Mul(texG, diffuse), wide.Mul(texB, diffuse)
		return
	}
}

// fresnelSplitBounce draws one random number per lane and takes the
// reflection branch where it falls below the Fresnel term (or where
// total internal reflection forces it), the refraction branch
// otherwise. Unlike shader's deterministic weighted sum, the sampling
// probability itself stands in for the Fresnel weight, so the chosen
// branch's own material weight (Reflect or Transmit) is taken
// unscaled (spec.md §4.I step 5).
func (t *Tracer) fresnelSplitBounce(ctx *context.Context, mat *scene.Material, sampler *Sampler) (dx, dy, dz, wr, wg, wb wide.F32) {
	w := ctx.Width
	nDotI := wide.MulAdd(ctx.RayX, ctx.NrmX, wide.MulAdd(ctx.RayY, ctx.NrmY, wide.Mul(ctx.RayZ, ctx.NrmZ)))
	rf := shader.Fresnel(nDotI, mat)

	refrX, refrY, refrZ, tir := refractDirection(ctx, mat)
	reflX, reflY, reflZ := mirrorDirection(ctx)

	roll := sampler.Next()
	chooseReflect := wide.Or(tir, wide.CmpLT(roll, rf))

	dx = wide.Select(chooseReflect, reflX, refrX)
	dy = wide.Select(chooseReflect, reflY, refrY)
	dz = wide.Select(chooseReflect, reflZ, refrZ)

	rwR, rwG, rwB := reflectWeight(mat, w)
	twR, twG, twB := transmitWeight(mat, w)
	wr = wide.Select(chooseReflect, rwR, twR)
	wg = wide.Select(chooseReflect, rwG, twG)
	wb = wide.Select(chooseReflect, rwB, twB)
	return
}

func mirrorDirection(ctx *context.Context) (x, y, z wide.F32) {
	nDotI := wide.MulAdd(ctx.RayX, ctx.NrmX, wide.MulAdd(ctx.RayY, ctx.NrmY, wide.Mul(ctx.RayZ, ctx.NrmZ)))
	two := wide.Splat(ctx.Width, 2)
	x = wide.Sub(ctx.RayX, wide.Mul(two, wide.Mul(nDotI, ctx.NrmX)))
	y = wide.Sub(ctx.RayY, wide.Mul(two, wide.Mul(nDotI, ctx.NrmY)))
	z = wide.Sub(ctx.RayZ, wide.Mul(two, wide.Mul(nDotI, ctx.NrmZ)))
	return
}

// refractDirection bends the incoming ray through the surface using
// the material's precomputed Rfr2 = 1 - Refract^2 (same formula as
// shader.transmitBounce); tir marks lanes at or past total internal
// reflection, where the direction returned is meaningless and the
// caller must fall back to a mirror bounce instead.
func refractDirection(ctx *context.Context, mat *scene.Material) (x, y, z wide.F32, tir wide.Mask) {
	w := ctx.Width
	nDotI := wide.MulAdd(ctx.RayX, ctx.NrmX, wide.MulAdd(ctx.RayY, ctx.NrmY, wide.Mul(ctx.RayZ, ctx.NrmZ)))
	eta := wide.Splat(w, mat.Refract)
	rfr2 := wide.Splat(w, mat.Rfr2)

	k := wide.Add(rfr2, wide.Mul(wide.Mul(eta, eta), wide.Mul(nDotI, nDotI)))
	tir = wide.CmpLT(k, wide.NewF32(w))

	sqrtK := wide.Sqrt(wide.Max(k, wide.NewF32(w)))
	coeff := wide.Sub(wide.Mul(eta, nDotI), wide.CopySign(sqrtK, nDotI))

	x = wide.Sub(wide.Mul(eta, ctx.RayX), wide.Mul(coeff, ctx.NrmX))
	y = wide.Sub(wide.Mul(eta, ctx.RayY), wide.Mul(coeff, ctx.NrmY))
	z = wide.Sub(wide.Mul(eta, ctx.RayZ), wide.Mul(coeff, ctx.NrmZ))
	return
}

func reflectWeight(mat *scene.Material, w int) (r, g, b wide.F32) {
	base := mat.Reflect
	r, g, b = wide.Splat(w, base), wide.Splat(w, base), wide.Splat(w, base)
	if mat.Props.Has(scene.PropMetal) {
		r, g, b = wide.Mul(r, wide.Splat(w, mat.Color[0])), wide.Mul(g, wide.Splat(w, mat.Color[1])), wide.Mul(b, wide.Splat(w, mat.Color[2]))
	}
	return
}

func transmitWeight(mat *scene.Material, w int) (r, g, b wide.F32) {
	base := mat.Transmit
	return wide.Splat(w, base), wide.Splat(w, base), wide.Splat(w, base)
}
