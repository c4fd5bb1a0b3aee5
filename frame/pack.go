package frame

import (
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
	"github.com/vecrt/rt/shader"
)

// downsample folds a W-wide batch of per-lane AA-sample colors down to
// one value per channel via repeated horizontal pair-add (spec.md §4.J
// "AA downsample"), then gamma-compands and packs the result into a
// camera's output word using its channel shift/mask.
func downsampleAndPack(cam *scene.Camera, r, g, b wide.F32) uint32 {
	dr := wide.Downsample(r, 1)[0]
	dg := wide.Downsample(g, 1)[0]
	db := wide.Downsample(b, 1)[0]
	return pack(cam, dr, dg, db)
}

// pack clamps, gamma-compands, and channel-packs one already-downsampled
// pixel color.
func pack(cam *scene.Camera, r, g, b float32) uint32 {
	clamp := cam.Clamp
	if clamp <= 0 {
		clamp = 1
	}
	r = clampScalar(r, 0, clamp)
	g = clampScalar(g, 0, clamp)
	b = clampScalar(b, 0, clamp)

	r = shader.GammaToSRGB(wide.F32{r / clamp})[0]
	g = shader.GammaToSRGB(wide.F32{g / clamp})[0]
	b = shader.GammaToSRGB(wide.F32{b / clamp})[0]

	channels := [3]float32{r, g, b}
	var pixel uint32
	for c := 0; c < 3; c++ {
		v := uint32(channels[c]*255 + 0.5)
		pixel |= (v << cam.ChannelShift[c]) & cam.ChannelMask[c]
	}
	return pixel
}

func clampScalar(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
