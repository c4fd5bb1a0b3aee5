package wide

// Constants holds the per-width "constant planes" the original backend
// keeps as process-wide globals (GPC01 = +1, GPC02 = -0.5, GPC03 = +3,
// GPC04 = abs-mask, GPC05 = encoded 127.0f, GPC07 = all-ones). Spec.md
// §9 calls for modeling these as a per-thread block passed by
// reference rather than mutable package globals, since multiple
// threads render concurrently with independently negotiated widths in
// principle (though in practice a single process negotiates one width
// for the whole frame).
type Constants struct {
	Width int

	One        F32 // GPC01: +1.0
	NegHalf    F32 // GPC02: -0.5
	Three      F32 // GPC03: +3.0
	AbsMask    Mask
	Encoded127 F32 // GPC05: +127.0, used in fast exponent math
	AllOnes    Mask // GPC07
	Zero       F32
}

// NewConstants builds the constant planes for a given lane width.
func NewConstants(width int) *Constants {
	return &Constants{
		Width:      width,
		One:        Splat(width, 1),
		NegHalf:    Splat(width, -0.5),
		Three:      Splat(width, 3),
		AbsMask:    SplatMask(width, true),
		Encoded127: Splat(width, 127),
		AllOnes:    SplatMask(width, true),
		Zero:       Splat(width, 0),
	}
}
