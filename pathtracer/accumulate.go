package pathtracer

import "github.com/vecrt/rt/internal/wide"

// Accumulate blends sample into old as the n-th contribution to a
// running average, per spec.md §4.I step 6's PTS_C/PTS_O/PTS_U scheme:
// new = old*(n-1)/n + sample/n. n is 1-based: the first call (n=1)
// simply replaces old with sample.
func Accumulate(old, sample wide.F32, n int) wide.F32 {
	w := len(old)
	u := wide.Splat(w, float32(n-1)/float32(n)) // PTS_U
	o := wide.Splat(w, 1/float32(n))            // PTS_O
	return wide.MulAdd(old, u, wide.Mul(sample, o))
}
