package wide

import "testing"

func TestArith(t *testing.T) {
	a := F32{1, 2, 3, 4}
	b := F32{4, 3, 2, 1}

	if got := Add(a, b); !equalF32(got, F32{5, 5, 5, 5}) {
		t.Fatalf("Add = %v", got)
	}
	if got := Sub(a, b); !equalF32(got, F32{-3, -1, 1, 3}) {
		t.Fatalf("Sub = %v", got)
	}
	if got := Mul(a, b); !equalF32(got, F32{4, 6, 6, 4}) {
		t.Fatalf("Mul = %v", got)
	}
	if got := Min(a, b); !equalF32(got, F32{1, 2, 2, 1}) {
		t.Fatalf("Min = %v", got)
	}
	if got := Max(a, b); !equalF32(got, F32{4, 3, 3, 4}) {
		t.Fatalf("Max = %v", got)
	}
}

func TestSqrtRcpRsqrt(t *testing.T) {
	v := F32{4, 9, 16, 25}
	got := Sqrt(v)
	want := F32{2, 3, 4, 5}
	for i := range got {
		if diff := got[i] - want[i]; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("Sqrt[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	r := Rcp(F32{2, 4, 8, 16})
	for i, want := range []float32{0.5, 0.25, 0.125, 0.0625} {
		if diff := r[i] - want; diff > 1e-3 || diff < -1e-3 {
			t.Fatalf("Rcp[%d] = %v, want %v", i, r[i], want)
		}
	}

	rs := Rsqrt(F32{4, 16})
	for i, want := range []float32{0.5, 0.25} {
		if diff := rs[i] - want; diff > 1e-3 || diff < -1e-3 {
			t.Fatalf("Rsqrt[%d] = %v, want %v", i, rs[i], want)
		}
	}
}

func TestCompareAndSelect(t *testing.T) {
	a := F32{1, 2, 3, 4}
	b := F32{2, 2, 2, 2}

	mask := CmpLT(a, b)
	want := Mask{MaskTrue, MaskFalse, MaskFalse, MaskFalse}
	for i := range mask {
		if mask[i] != want[i] {
			t.Fatalf("CmpLT[%d] = %v, want %v", i, mask[i], want[i])
		}
	}

	sel := Select(mask, a, b)
	if !equalF32(sel, F32{1, 2, 2, 2}) {
		t.Fatalf("Select = %v", sel)
	}
}

func TestMaskLogic(t *testing.T) {
	a := Mask{MaskTrue, MaskTrue, MaskFalse, MaskFalse}
	b := Mask{MaskTrue, MaskFalse, MaskTrue, MaskFalse}

	if got := And(a, b); got[0] != MaskTrue || got[1] != MaskFalse || got[2] != MaskFalse || got[3] != MaskFalse {
		t.Fatalf("And = %v", got)
	}
	if got := Or(a, b); got[3] != MaskFalse || got[0] != MaskTrue || got[1] != MaskTrue || got[2] != MaskTrue {
		t.Fatalf("Or = %v", got)
	}
	if got := AndNot(a, b); got[1] != MaskTrue || got[0] != MaskFalse {
		t.Fatalf("AndNot = %v", got)
	}
}

func TestAbsAndSign(t *testing.T) {
	v := F32{-1, 2, -3, 0}
	if got := Abs(v); !equalF32(got, F32{1, 2, 3, 0}) {
		t.Fatalf("Abs = %v", got)
	}
	if got := Sign(v); !equalF32(got, F32{-1, 1, -1, 0}) {
		t.Fatalf("Sign = %v", got)
	}
}

func TestHAddPairsAndDownsample(t *testing.T) {
	v := F32{1, 1, 2, 2, 3, 3, 4, 4}
	got := HAddPairs(v)
	if !equalF32(got, F32{2, 4, 6, 8}) {
		t.Fatalf("HAddPairs = %v", got)
	}

	avg := Downsample(v, 1)
	if avg[0] != 2.5 {
		t.Fatalf("Downsample = %v, want 2.5", avg[0])
	}
}

func TestToIntRoundAndTrunc(t *testing.T) {
	v := F32{1.5, 2.5, -1.5, 1.9}
	rnd := ToInt(v)
	want := I32{2, 2, -2, 2} // round to nearest, ties to even
	for i := range rnd {
		if rnd[i] != want[i] {
			t.Fatalf("ToInt[%d] = %v, want %v", i, rnd[i], want[i])
		}
	}

	tr := ToIntTrunc(v)
	wantTr := I32{1, 2, -1, 1}
	for i := range tr {
		if tr[i] != wantTr[i] {
			t.Fatalf("ToIntTrunc[%d] = %v, want %v", i, tr[i], wantTr[i])
		}
	}
}

func TestNegotiateWidth(t *testing.T) {
	w := NegotiateWidth(8)
	if w > 8 {
		t.Fatalf("NegotiateWidth(8) = %d, want <= 8", w)
	}
	if w < 4 {
		t.Fatalf("NegotiateWidth(8) = %d, want >= 4", w)
	}
}

func equalF32(a, b F32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
