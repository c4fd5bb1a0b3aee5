package shader

import "github.com/vecrt/rt/internal/wide"

// gamma is the fixed exponent the original uses for its cheap
// gamma-correction approximation (spec.md §4.F step "gamma in/out"): a
// plain square/square-root pair rather than a true pow(x, 2.2), which
// is what the original's fixed-point pipeline can afford.
//
// GammaToLinear and GammaToSRGB are exported so package frame can apply
// the same companding to a frame's final downsampled color before
// packing it into 8-bit channels (spec.md §4.J "gamma-out") without
// duplicating the formula.
const gamma = 2.0

func gammaToLinear(v wide.F32) wide.F32 { return GammaToLinear(v) }

func gammaToSRGB(v wide.F32) wide.F32 { return GammaToSRGB(v) }

func GammaToLinear(v wide.F32) wide.F32 { return wide.Mul(v, v) }

func GammaToSRGB(v wide.F32) wide.F32 { return wide.Sqrt(wide.Max(v, wide.NewF32(len(v)))) }
