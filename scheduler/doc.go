// Package scheduler is the opt-in SIMD-buffer fast path of spec.md
// §4.H: instead of shading every surviving hit the moment solver.
// Intersect finds it, a Scheduler collects hits into one lane-packed
// buffer per (surface, side), flushing a buffer through the real
// shading path as soon as it fills — or, for whatever is left over, at
// end of frame. This trades immediate shading for better material
// coherency across a full row or frame: the same surface's shading
// code runs back-to-back on a full batch of lanes instead of once per
// scattered partial-mask hit.
//
// A Scheduler itself implements solver.ShadeFunc, so it can be handed
// to solver.Intersect in place of a Dispatcher's own Shade method
// without either package needing to know about the other's existence.
//
// Shadow rays never share a buffer slot with primary/secondary rays
// (spec.md §9's RT_FEAT_BUFFERS_OPT question, resolved in DESIGN.md):
// a shadow test's result is a single boolean mask consumed immediately
// by the light loop, and batching it would only delay that answer
// without the payoff buffering gives material shading.
package scheduler
