package shader

import (
	gocontext "context"
	"log/slog"

	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/rtlog"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// RecurseFunc casts a colored secondary ray (reflection or
// transmission): the caller has already written the new direction into
// ctx.NewX/Y/Z and the hit point is in ctx.HitX/Y/Z. It returns the
// lane-packed radiance the bounce contributed, zero in lanes outside
// mask.
type RecurseFunc func(ctx *context.Context, pass context.Pass, mask wide.Mask) (r, g, b wide.F32)

// ShadowFunc casts a boolean occlusion test toward a light and returns
// a mask that is true in lanes where something blocks the light.
type ShadowFunc func(ctx *context.Context, light *scene.Light, mask wide.Mask) wide.Mask

// Environment carries the ambient term and the scene's lights, the
// parts of the shading equation that do not belong to any one surface.
type Environment struct {
	Lights           []*scene.Light
	AmbientColor     scene.Vec3
	AmbientIntensity float32
}

// Shade runs the material pipeline for one surface/side hit and
// accumulates its contribution into ctx.ColR/G/B, weighted by the
// path's current throughput (ctx.MulR/G/B) and masked to mask
// (spec.md §4.F).
func Shade(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, side context.Side, mat *scene.Material, mask wide.Mask, env Environment, recurse RecurseFunc, shadow ShadowFunc) {
	w := ctx.Width

	baseR, baseG, baseB := SampleColor(ctx, surf, mat, mask)
	if mat.Gamma {
		baseR, baseG, baseB = gammaToLinear(baseR), gammaToLinear(baseG), gammaToLinear(baseB)
	}

	litR, litG, litB := directLight(ctx, mat, mask, env, baseR, baseG, baseB, shadow)

	if mat.Props.Has(scene.PropReflect) || mat.Reflect > 0 {
		rr, rg, rb := reflectBounce(ctx, mat, mask, recurse)
		litR, litG, litB = wide.Add(litR, rr), wide.Add(litG, rg), wide.Add(litB, rb)
	}

	if mat.Props.Has(scene.PropTransp) || mat.Refract > 0 {
		tr, tg, tb := transmitBounce(ctx, mat, mask, recurse)
		litR, litG, litB = wide.Add(litR, tr), wide.Add(litG, tg), wide.Add(litB, tb)
	}

	if mat.Emission != (scene.Vec3{}) {
		litR = wide.Add(litR, wide.Splat(w, mat.Emission[0]))
		litG = wide.Add(litG, wide.Splat(w, mat.Emission[1]))
		litB = wide.Add(litB, wide.Splat(w, mat.Emission[2]))
	}

	if mat.Gamma {
		litR, litG, litB = gammaToSRGB(litR), gammaToSRGB(litG), gammaToSRGB(litB)
	}

	if mat.Clamp > 0 {
		clampLo := wide.NewF32(w)
		clampHi := wide.Splat(w, mat.Clamp)
		if mat.ClampChans[0] {
			litR = clampWithWarn(litR, clampLo, clampHi)
		}
		if mat.ClampChans[1] {
			litG = clampWithWarn(litG, clampLo, clampHi)
		}
		if mat.ClampChans[2] {
			litB = clampWithWarn(litB, clampLo, clampHi)
		}
	}

	ctx.ColR = wide.Select(mask, wide.MulAdd(litR, ctx.MulR, ctx.ColR), ctx.ColR)
	ctx.ColG = wide.Select(mask, wide.MulAdd(litG, ctx.MulG, ctx.ColG), ctx.ColG)
	ctx.ColB = wide.Select(mask, wide.MulAdd(litB, ctx.MulB, ctx.ColB), ctx.ColB)
}

// clampWithWarn clamps v to [lo, hi], warning once per call if the
// Warn-enabled check passes and any lane actually got clipped — the
// Enabled check keeps the common (silent-logger) path from paying for
// the per-lane comparison at all.
func clampWithWarn(v, lo, hi wide.F32) wide.F32 {
	logger := rtlog.Logger()
	if logger.Enabled(gocontext.Background(), slog.LevelWarn) {
		for i := range v {
			if v[i] > hi[i] || v[i] < lo[i] {
				logger.Warn("material clamp engaged", "value", v[i], "limit", hi[i])
				break
			}
		}
	}
	return wide.Clamp(v, lo, hi)
}
