package wide

import "math"

// Add returns the lane-wise sum of a and b.
func Add(a, b F32) F32 {
	out := make(F32, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// Sub returns the lane-wise difference a - b.
func Sub(a, b F32) F32 {
	out := make(F32, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// Mul returns the lane-wise product of a and b.
func Mul(a, b F32) F32 {
	out := make(F32, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

// Div returns the lane-wise quotient a / b.
// Lanes where b is zero produce +Inf/-Inf/NaN per IEEE-754; callers
// that need masked-safe division should precede this with a Select
// against a non-zero sentinel.
func Div(a, b F32) F32 {
	out := make(F32, len(a))
	for i := range a {
		out[i] = a[i] / b[i]
	}
	return out
}

// MulAdd returns a*b + c, lane-wise.
func MulAdd(a, b, c F32) F32 {
	out := make(F32, len(a))
	for i := range a {
		out[i] = a[i]*b[i] + c[i]
	}
	return out
}

// Neg returns the lane-wise negation of v.
func Neg(v F32) F32 {
	out := make(F32, len(v))
	for i := range v {
		out[i] = -v[i]
	}
	return out
}

// Abs returns the lane-wise absolute value of v, via sign-bit clear.
func Abs(v F32) F32 {
	out := make(F32, len(v))
	for i := range v {
		out[i] = fromBits(asBits(v[i]) &^ signBit)
	}
	return out
}

// signBit is the IEEE-754 single-precision sign bit.
var signBit int32 = math.MinInt32

// Sqrt returns the lane-wise square root of v. Negative lanes yield NaN.
func Sqrt(v F32) F32 {
	out := make(F32, len(v))
	for i := range v {
		out[i] = float32(math.Sqrt(float64(v[i])))
	}
	return out
}

// Rcp returns an approximate lane-wise reciprocal of v, refined by one
// Newton-Raphson step: x1 = x0*(2 - v*x0).
func Rcp(v F32) F32 {
	out := make(F32, len(v))
	for i := range v {
		x0 := float32(1) / v[i] // seed: exact division stands in for the
		// hardware reciprocal-estimate instruction the original targets.
		out[i] = x0 * (2 - v[i]*x0)
	}
	return out
}

// Rsqrt returns an approximate lane-wise reciprocal square root of v,
// refined by one Newton-Raphson step: x1 = x0*(1.5 - 0.5*v*x0*x0).
func Rsqrt(v F32) F32 {
	out := make(F32, len(v))
	for i := range v {
		x0 := float32(1) / float32(math.Sqrt(float64(v[i])))
		out[i] = x0 * (1.5 - 0.5*v[i]*x0*x0)
	}
	return out
}

// Pow returns v[i]**exp, lane-wise. Used for the specular highlight's
// cosine-power falloff, where exp is a material constant rather than
// another lane-packed value.
func Pow(v F32, exp float32) F32 {
	out := make(F32, len(v))
	for i := range v {
		out[i] = float32(math.Pow(float64(v[i]), float64(exp)))
	}
	return out
}

// Min returns the lane-wise minimum of a and b.
func Min(a, b F32) F32 {
	out := make(F32, len(a))
	for i := range a {
		if a[i] < b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}

// Max returns the lane-wise maximum of a and b.
func Max(a, b F32) F32 {
	out := make(F32, len(a))
	for i := range a {
		if a[i] > b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}

// Clamp returns v clamped lane-wise to [lo, hi].
func Clamp(v, lo, hi F32) F32 { return Min(Max(v, lo), hi) }

// Sign returns -1, 0, or +1 per lane according to the sign of v[i].
func Sign(v F32) F32 {
	out := make(F32, len(v))
	for i := range v {
		switch {
		case v[i] > 0:
			out[i] = 1
		case v[i] < 0:
			out[i] = -1
		default:
			out[i] = 0
		}
	}
	return out
}

// CopySign returns magnitude with the sign bit of sign, lane-wise.
func CopySign(magnitude, sign F32) F32 {
	out := make(F32, len(magnitude))
	for i := range magnitude {
		m := asBits(magnitude[i]) &^ signBit
		s := asBits(sign[i]) & signBit
		out[i] = fromBits(m | s)
	}
	return out
}

// AddI returns the lane-wise sum of a and b.
func AddI(a, b I32) I32 {
	out := make(I32, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// SubI returns the lane-wise difference a - b.
func SubI(a, b I32) I32 {
	out := make(I32, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// MulI returns the lane-wise product of a and b.
func MulI(a, b I32) I32 {
	out := make(I32, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

// Shl returns a left-shifted by the compile-time-style constant n, lane-wise.
func Shl(a I32, n uint) I32 {
	out := make(I32, len(a))
	for i := range a {
		out[i] = a[i] << n
	}
	return out
}

// Shr returns a arithmetic-right-shifted by the constant n, lane-wise.
func Shr(a I32, n uint) I32 {
	out := make(I32, len(a))
	for i := range a {
		out[i] = a[i] >> n
	}
	return out
}

// ShrU returns a logical-right-shifted by the constant n, lane-wise.
func ShrU(a I32, n uint) I32 {
	out := make(I32, len(a))
	for i := range a {
		out[i] = int32(uint32(a[i]) >> n)
	}
	return out
}
