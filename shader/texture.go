package shader

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// SampleColor resolves the base color at the hit point: a texture fetch
// when the material carries one, or the material's flat Color
// otherwise (spec.md §4.F step 2). Texture addressing is a gather by
// nature (Pixels is a power-of-two-dimensioned slice indexed per lane),
// so unlike the rest of the shading math this runs as a plain per-lane
// loop rather than batched wide ops.
//
// Exported so package pathtracer can reuse the same texture fetch for
// its Russian-roulette probability (spec.md §4.I step 4's `tex_r/g/b`)
// without duplicating the gather.
func SampleColor(ctx *context.Context, surf *scene.Surface, mat *scene.Material, mask wide.Mask) (r, g, b wide.F32) {
	r, g, b = wide.NewF32(ctx.Width), wide.NewF32(ctx.Width), wide.NewF32(ctx.Width)

	if mat.Texture == nil {
		for i := 0; i < ctx.Width; i++ {
			if mask[i] == wide.MaskFalse {
				continue
			}
			r[i], g[i], b[i] = mat.Color[0], mat.Color[1], mat.Color[2]
		}
		return
	}

	hit := [3]wide.F32{ctx.HitX, ctx.HitY, ctx.HitZ}
	axisU, axisV := mat.TexAxisMap[0], mat.TexAxisMap[1]

	for i := 0; i < ctx.Width; i++ {
		if mask[i] == wide.MaskFalse {
			continue
		}
		u := hit[axisU][i]*mat.TexScale[0] + mat.TexOffset[0]
		v := hit[axisV][i]*mat.TexScale[1] + mat.TexOffset[1]

		xi := int32(u) & mat.TexMask[0]
		yi := (int32(v) >> mat.TexYShift) & mat.TexMask[1]
		if xi < 0 {
			xi += mat.TexMask[0] + 1
		}
		if yi < 0 {
			yi += mat.TexMask[1] + 1
		}

		px := mat.Texture.At(int(xi), int(yi))
		r[i] = float32(uint8(px>>16)) / 255
		g[i] = float32(uint8(px>>8)) / 255
		b[i] = float32(uint8(px)) / 255

		ctx.TexU[i], ctx.TexV[i] = u, v
	}
	return
}
