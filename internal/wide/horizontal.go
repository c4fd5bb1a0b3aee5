package wide

// HAddPairs returns a vector of half the width of v, where each output
// lane is the sum of an adjacent input pair: out[i] = v[2i] + v[2i+1].
// This is the antialiasing downsample primitive: applying it log2(fsaa)
// times collapses fsaa samples per pixel down to one.
//
// Panics if v has odd width; callers only ever invoke this on AA-batch
// widths, which are constructed as powers of two.
func HAddPairs(v F32) F32 {
	if len(v)%2 != 0 {
		panic("wide: HAddPairs requires an even-width vector")
	}
	out := make(F32, len(v)/2)
	for i := range out {
		out[i] = v[2*i] + v[2*i+1]
	}
	return out
}

// Downsample repeatedly halves v via HAddPairs until it reaches
// target width, and divides by the number of samples folded into each
// output lane so the result is an average rather than a sum. It halves
// log2(len(v)/target) times.
func Downsample(v F32, target int) F32 {
	out := v
	samples := 1
	for len(out) > target {
		out = HAddPairs(out)
		samples *= 2
	}
	inv := 1 / float32(samples)
	avg := make(F32, len(out))
	for i := range out {
		avg[i] = out[i] * inv
	}
	return avg
}
