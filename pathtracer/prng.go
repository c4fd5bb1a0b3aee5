package pathtracer

import (
	"math"

	"github.com/vecrt/rt/internal/wide"
)

// rtPRNGBits is RT_PRNG = LCG24: the number of top bits of each 32-bit
// LCG state word used as the random fraction (spec.md §4.I step 2).
const rtPRNGBits = 24

// prngMultiplier/prngIncrement are the LCG's PRNGF/PRNGA constants.
// tracer.h only names the field offsets for these, not their values;
// this module uses the Numerical Recipes LCG32 constants, a standard
// full-period choice for a 32-bit state word (see DESIGN.md's Open
// Question decision for pathtracer PRNG constants).
const (
	prngMultiplier uint32 = 1664525
	prngIncrement  uint32 = 1013904223
)

// prngMask is PRNGM, the (2^24 - 1) mask applied after the top-bits
// shift.
const prngMask uint32 = (1 << rtPRNGBits) - 1

// Sampler holds one lane-packed LCG state per ray lane, seeded from the
// pixel index so repeated renders at a fixed seed and thread count
// reproduce the same frame (spec.md §4.I step 2).
type Sampler struct {
	state wide.I32
}

// NewSampler seeds a Sampler from a per-lane pixel index.
func NewSampler(index wide.I32) *Sampler {
	s := &Sampler{state: make(wide.I32, len(index))}
	copy(s.state, index)
	return s
}

// Next advances every lane's LCG state by one step and returns the
// resulting draw in [0, 1), per spec.md §4.I step 2's shift-and-divide
// conversion.
func (s *Sampler) Next() wide.F32 {
	out := make(wide.F32, len(s.state))
	for i := range s.state {
		next := uint32(s.state[i])*prngMultiplier + prngIncrement
		s.state[i] = int32(next)
		frac := (next >> (32 - rtPRNGBits)) & prngMask
		out[i] = float32(frac) / float32(prngMask+1)
	}
	return out
}

// TentSample maps a uniform draw in [0,1) to a sub-pixel offset in
// [-1, 1) via the standard tent filter (spec.md §4.I step 1): denser
// near zero than a box filter, approximating a triangular PDF.
func TentSample(u wide.F32) wide.F32 {
	out := make(wide.F32, len(u))
	for i, v := range u {
		r := 2 * v
		if r < 1 {
			out[i] = float32(math.Sqrt(float64(r))) - 1
		} else {
			out[i] = 1 - float32(math.Sqrt(float64(2-r)))
		}
	}
	return out
}
