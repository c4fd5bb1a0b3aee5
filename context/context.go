package context

import (
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// Context is the working memory for one bounce of one lane-packed ray
// batch (spec.md §3 "Context"). Field names mirror the original's
// ctx_* fields directly so the grounding in core/tracer/tracer.h stays
// legible.
type Context struct {
	Width int

	// Ray origin and direction, world space.
	OrgX, OrgY, OrgZ wide.F32
	RayX, RayY, RayZ wide.F32

	// Origin-minus-surface-position, world and trnode-local space.
	DffX, DffY, DffZ wide.F32
	DffI, DffJ, DffK wide.F32

	// Ray direction after a surface's local-space transform.
	RayI, RayJ, RayK wide.F32

	// Surface-local UV for texturing.
	TexU, TexV          wide.F32
	TexR, TexG, TexB    wide.F32

	// Intersection point and surface normal.
	HitX, HitY, HitZ wide.F32
	NrmX, NrmY, NrmZ wide.F32
	// NrmI/J/K double as the cached local-space hit point for the
	// self-hit shortcut (spec.md §4.D step 1).
	NrmI, NrmJ, NrmK wide.F32

	// Secondary-ray direction.
	NewX, NewY, NewZ wide.F32
	NewI, NewJ, NewK wide.F32

	TVal  wide.F32 // current candidate root
	TBuf  wide.F32 // best-so-far depth buffer
	TMin  wide.F32 // near-plane
	TNew  wide.F32 // next frame's near-plane (child T_MIN)

	TMask wide.Mask // lanes active for the current surface/side test
	WMask wide.Mask // lanes with remaining work in this frame
	AMask wide.Mask // root-sort: sign(a) mask
	DMask wide.Mask // root-sort: near-zero-discriminant mask

	Index wide.I32 // pixel index per lane

	ColR, ColG, ColB wide.F32 // radiance accumulator
	MulR, MulG, MulB wide.F32 // path-tracer throughput

	// CTrn/CRfl are the per-branch throughput modulators for
	// transmission/reflection (spec.md §3).
	CTrn, CRfl wide.F32
	// FRfl is the Fresnel reflectance term, cached across the
	// transparency and reflection shading steps (spec.md §4.F step 4-5).
	FRfl wide.F32

	// CPtr/CBuf carry a shadow/clip mask back from a pushed recursion:
	// CBuf is the returned mask itself (all-ones where the lane saw no
	// occluder), CPtr is scratch for the clip accumulator.
	CPtr wide.I32
	CBuf wide.Mask
	// CAcc is the custom-clip accumulator scope register (spec.md §4.D
	// clipping sub-engine).
	CAcc wide.Mask

	// Path-tracer auxiliary lanes.
	FRnd wide.F32 // last random draw
	FPrb wide.F32 // last computed probability (Fresnel split / Russian roulette)

	// Originating surface/side per lane, for the self-hit shortcut and
	// for shadow-ray material bookkeeping.
	OrgSurf []*scene.Surface
	OrgSide []Side

	// Receiving surface/side per lane: the surface whose material is
	// currently being shaded.
	SrfSurf []*scene.Surface
	SrfSide []Side

	Param Param
	Local Local
}

// New allocates a zeroed Context for the given lane width.
func New(width int) *Context {
	c := &Context{Width: width}
	c.allocLanes(width)
	return c
}

func (c *Context) allocLanes(w int) {
	f := func() wide.F32 { return wide.NewF32(w) }
	m := func() wide.Mask { return wide.NewMask(w) }

	c.OrgX, c.OrgY, c.OrgZ = f(), f(), f()
	c.RayX, c.RayY, c.RayZ = f(), f(), f()
	c.DffX, c.DffY, c.DffZ = f(), f(), f()
	c.DffI, c.DffJ, c.DffK = f(), f(), f()
	c.RayI, c.RayJ, c.RayK = f(), f(), f()
	c.TexU, c.TexV = f(), f()
	c.TexR, c.TexG, c.TexB = f(), f(), f()
	c.HitX, c.HitY, c.HitZ = f(), f(), f()
	c.NrmX, c.NrmY, c.NrmZ = f(), f(), f()
	c.NrmI, c.NrmJ, c.NrmK = f(), f(), f()
	c.NewX, c.NewY, c.NewZ = f(), f(), f()
	c.NewI, c.NewJ, c.NewK = f(), f(), f()
	c.TVal, c.TBuf, c.TMin, c.TNew = f(), f(), f(), f()
	c.TMask, c.WMask, c.AMask, c.DMask = m(), m(), m(), m()
	c.Index = wide.NewI32(w)
	c.ColR, c.ColG, c.ColB = f(), f(), f()
	c.MulR, c.MulG, c.MulB = f(), f(), f()
	c.CTrn, c.CRfl, c.FRfl = f(), f(), f()
	c.CPtr = wide.NewI32(w)
	c.CBuf, c.CAcc = m(), m()
	c.FRnd, c.FPrb = f(), f()
	c.OrgSurf = make([]*scene.Surface, w)
	c.OrgSide = make([]Side, w)
	c.SrfSurf = make([]*scene.Surface, w)
	c.SrfSide = make([]Side, w)
}

// Reset clears stale hit state on frame entry (spec.md §4.C):
// T_BUF <- tMax, C_BUF <- 0, color accumulators <- 0. Throughput lanes
// reset to 1 (the path-tracer's multiplicative identity) unless
// keepThroughput is set, since a pushed secondary-ray frame inherits
// its parent's throughput rather than starting from scratch.
func (c *Context) Reset(tMax float32, keepThroughput bool) {
	for i := 0; i < c.Width; i++ {
		c.TBuf[i] = tMax
		c.TMin[i] = 0
		c.CBuf[i] = wide.MaskFalse
		c.ColR[i], c.ColG[i], c.ColB[i] = 0, 0, 0
		if !keepThroughput {
			c.MulR[i], c.MulG[i], c.MulB[i] = 1, 1, 1
		}
		c.WMask[i] = wide.MaskTrue
		c.TMask[i] = wide.MaskFalse
	}
}
