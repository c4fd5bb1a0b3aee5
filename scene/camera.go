package scene

// Camera is the immutable-per-frame ray-generation and output-packing
// configuration (spec.md §3). Invariant: Hor·Ver != 0, and the AA
// offsets are chosen so the W lanes of one batch cover adjacent
// sub-pixel positions. Validate checks only the first half (non-zero
// Hor and Ver); the AA offsets are not checked.
type Camera struct {
	Origin Vec3
	Dir    Vec3 // initial ray direction

	Hor Vec3 // per-step horizontal ray delta
	Ver Vec3 // per-step vertical ray delta

	// HorOffsets/VerOffsets are the per-lane AA sub-pixel addends,
	// length fsaaLanes (1<<fsaa per axis pair, flattened to the batch
	// width actually rendered).
	HorOffsets []float32
	VerOffsets []float32

	AmbientColor     Vec3
	AmbientIntensity float32

	DepthMax int

	Clamp       float32
	ChannelMask [3]uint32
	ChannelShift [3]uint32

	// RowStep is the per-row pixel index step (x_row), used to derive a
	// lane's absolute pixel index from its row/column position.
	RowStep int

	TMax float32
}

// Validate checks the camera's documented invariant: neither the
// horizontal nor the vertical step is degenerate (the zero vector).
func (c *Camera) Validate() bool {
	return c.Hor != (Vec3{}) && c.Ver != (Vec3{})
}
