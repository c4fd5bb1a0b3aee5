package wide

// CmpLT returns a mask that is true where a[i] < b[i].
func CmpLT(a, b F32) Mask { return cmp(a, b, func(x, y float32) bool { return x < y }) }

// CmpLE returns a mask that is true where a[i] <= b[i].
func CmpLE(a, b F32) Mask { return cmp(a, b, func(x, y float32) bool { return x <= y }) }

// CmpGT returns a mask that is true where a[i] > b[i].
func CmpGT(a, b F32) Mask { return cmp(a, b, func(x, y float32) bool { return x > y }) }

// CmpGE returns a mask that is true where a[i] >= b[i].
func CmpGE(a, b F32) Mask { return cmp(a, b, func(x, y float32) bool { return x >= y }) }

// CmpEQ returns a mask that is true where a[i] == b[i].
func CmpEQ(a, b F32) Mask { return cmp(a, b, func(x, y float32) bool { return x == y }) }

// CmpNE returns a mask that is true where a[i] != b[i].
func CmpNE(a, b F32) Mask { return cmp(a, b, func(x, y float32) bool { return x != y }) }

func cmp(a, b F32, pred func(float32, float32) bool) Mask {
	out := make(Mask, len(a))
	for i := range a {
		if pred(a[i], b[i]) {
			out[i] = MaskTrue
		} else {
			out[i] = MaskFalse
		}
	}
	return out
}
