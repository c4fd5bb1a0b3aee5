package wide

import "math"

// ToInt converts each lane of v to an int32, rounding to nearest
// (ties to even), matching the default float-to-int conversion mode.
func ToInt(v F32) I32 {
	out := make(I32, len(v))
	for i := range v {
		out[i] = int32(math.RoundToEven(float64(v[i])))
	}
	return out
}

// ToIntTrunc converts each lane of v to an int32 by truncation towards
// zero. This mode override is used at texture address computation,
// where the fractional part must be discarded rather than rounded.
func ToIntTrunc(v F32) I32 {
	out := make(I32, len(v))
	for i := range v {
		out[i] = int32(v[i])
	}
	return out
}

// ToFloat converts each lane of v to a float32.
func ToFloat(v I32) F32 {
	out := make(F32, len(v))
	for i := range v {
		out[i] = float32(v[i])
	}
	return out
}
