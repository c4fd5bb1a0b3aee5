package dispatch

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/rtlog"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
	"github.com/vecrt/rt/shader"
	"github.com/vecrt/rt/solver"
)

// HitFunc is the per-hit shading step a Dispatcher drives: given the
// surviving surface/side hit and the recursion hooks to cast further
// rays with, produce no return value — any radiance it wants to keep
// is the shader's job to accumulate into ctx.ColR/G/B.
type HitFunc func(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, side context.Side, mat *scene.Material, mask wide.Mask, recurse shader.RecurseFunc, shadow shader.ShadowFunc)

// Dispatcher owns the recursion arena and scene list for one render
// thread and drives the push/intersect/shade/return protocol (spec.md
// §4.G). A fresh Dispatcher should be built per worker, sharing nothing
// mutable across threads (arenas are not safe for concurrent use).
type Dispatcher struct {
	Arena *context.Arena
	Consts *wide.Constants
	List   scene.List
	Hit    HitFunc
}

// NewWhittedDispatcher builds a Dispatcher whose HitFunc runs the
// ordinary recursive shader pipeline (shader.Shade) against env.
func NewWhittedDispatcher(arena *context.Arena, consts *wide.Constants, list scene.List, env shader.Environment) *Dispatcher {
	d := &Dispatcher{Arena: arena, Consts: consts, List: list}
	d.Hit = func(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, side context.Side, mat *scene.Material, mask wide.Mask, recurse shader.RecurseFunc, shadow shader.ShadowFunc) {
		shader.Shade(ctx, consts, surf, side, mat, mask, env, recurse, shadow)
	}
	return d
}

// Render runs one full primary-ray pass: Intersect the scene list
// starting at the arena's current (depth 0) frame.
func (d *Dispatcher) Render() {
	solver.Intersect(d.Arena.Current(), d.Consts, d.List, d.Shade)
}

// Shade is a solver.ShadeFunc bound to this Dispatcher's HitFunc and
// recursion hooks. It is exported so package scheduler can defer
// individual hits into per-(surface,side) buffers and later flush them
// through this same shading path (spec.md §4.H).
func (d *Dispatcher) Shade(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, side context.Side, mat *scene.Material, mask wide.Mask) {
	d.Hit(ctx, consts, surf, side, mat, mask, d.recurse, d.shadow)
}

// recurse pushes a new arena frame seeded from the parent's hit point
// and the new direction the shader wrote into ctx.NewX/Y/Z, runs a full
// solver+shade pass on it, and returns its accumulated radiance. At max
// depth this returns zero in every lane rather than erroring, per
// spec.md §4.G's "hard terminator of recursion".
func (d *Dispatcher) recurse(ctx *context.Context, pass context.Pass, mask wide.Mask) (r, g, b wide.F32) {
	w := d.Arena.Width()
	if mask.None() {
		return wide.NewF32(w), wide.NewF32(w), wide.NewF32(w)
	}

	child, ok := d.Arena.Push(false)
	if !ok {
		rtlog.Logger().Warn("arena at max depth, terminating recursion with zero radiance", "max_depth", d.Arena.MaxDepth())
		return wide.NewF32(w), wide.NewF32(w), wide.NewF32(w)
	}
	seedChild(child, ctx, mask)
	child.Param.Pass = pass

	solver.Intersect(child, d.Consts, d.List, d.Shade)

	r, g, b = child.ColR.Clone(), child.ColG.Clone(), child.ColB.Clone()
	d.Arena.Pop()
	return
}

// shadow pushes a new arena frame toward a light and reports which
// lanes were occluded before reaching it, testing only the light's own
// ShadowCasters list rather than the full scene (spec.md §4.F "shadow
// test").
func (d *Dispatcher) shadow(ctx *context.Context, light *scene.Light, mask wide.Mask) wide.Mask {
	w := d.Arena.Width()
	if len(light.ShadowCasters) == 0 || mask.None() {
		return wide.NewMask(w)
	}

	child, ok := d.Arena.Push(false)
	if !ok {
		return wide.NewMask(w)
	}
	seedChild(child, ctx, mask)
	child.Param.Pass = context.PassShadow
	child.TBuf = ctx.TNew.Clone()

	solver.Intersect(child, d.Consts, light.ShadowCasters, noopHit)

	occluded := child.TMask.Clone()
	d.Arena.Pop()
	return occluded
}

func seedChild(child, parent *context.Context, mask wide.Mask) {
	child.OrgX, child.OrgY, child.OrgZ = parent.HitX.Clone(), parent.HitY.Clone(), parent.HitZ.Clone()
	child.RayX, child.RayY, child.RayZ = parent.NewX.Clone(), parent.NewY.Clone(), parent.NewZ.Clone()
	child.WMask = mask.Clone()
	for i := 0; i < child.Width; i++ {
		if mask[i] != wide.MaskFalse {
			child.OrgSurf[i] = parent.SrfSurf[i]
			child.OrgSide[i] = parent.SrfSide[i]
			// Carries the parent's cached local-space hit point forward so
			// the self-hit shortcut (solver.localCoords) has something to
			// reuse on the very first surface test this child runs.
			child.NrmI[i] = parent.NrmI[i]
			child.NrmJ[i] = parent.NrmJ[i]
			child.NrmK[i] = parent.NrmK[i]
		}
	}
}

func noopHit(*context.Context, *wide.Constants, *scene.Surface, context.Side, *scene.Material, wide.Mask) {}
