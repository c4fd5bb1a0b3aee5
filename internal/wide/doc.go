// Package wide provides SIMD-friendly lane vectors for the rendering core.
//
// Lane width is negotiated at runtime via Switch rather than fixed at
// compile time, since the supported range is 4-64 lanes depending on
// the host's widest profitable native SIMD width. F32, I32 and Mask are
// therefore plain slices sized to the negotiated width rather than
// fixed-size arrays; every operation is written as a simple index loop
// so the Go compiler can still auto-vectorize it on architectures it
// recognizes.
//
// # Design philosophy
//
//   - Simple loops over same-length slices, not unsafe or assembly.
//   - Every op returns a fresh vector; there are no in-place variants.
//   - mask lanes are all-ones (-1 as int32 bit pattern) or all-zero,
//     matching the original backend's sign-mask convention.
package wide
