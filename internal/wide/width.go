package wide

import "golang.org/x/sys/cpu"

// supportedWidths lists the lane widths the core can choose between, in
// order from widest (most profitable) to narrowest fallback. 64 stands
// in for the original's widest target (2K8 configurations in the
// original source's tracer_2K8v2_r8.cpp); 4 is the narrowest lane
// group still useful for AA sub-pixel batches.
var supportedWidths = []int{64, 32, 16, 8, 4}

// NegotiateWidth picks the widest lane width that is both host-profitable
// and no larger than requested, mirroring the original backend's
// per-architecture SIMD_WIDTH selection (rtarch_x86.h / rtarch_arm.h),
// now driven by runtime CPU feature probing instead of a build-time
// target.
//
// requested <= 0 means "pick the host's best width". A request of 4 or
// more yields a member of supportedWidths; a request below 4 is
// returned unchanged.
func NegotiateWidth(requested int) int {
	best := hostBestWidth()
	if requested <= 0 {
		return best
	}
	chosen := requested
	for _, w := range supportedWidths {
		if w <= requested && w <= best {
			chosen = w
			break
		}
	}
	return chosen
}

// hostBestWidth probes CPU feature flags for the widest native SIMD
// register width worth using: 64 lanes for AVX-512F, 32 for AVX2, 16
// for AVX, 8 for SSE2 or ARM64 ASIMD. Without any of these it falls
// back to the narrowest supported width, 4 lanes.
func hostBestWidth() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 64
	case cpu.X86.HasAVX2:
		return 32
	case cpu.X86.HasAVX:
		return 16
	case cpu.X86.HasSSE2, cpu.ARM64.HasASIMD:
		return 8
	default:
		return 4
	}
}
