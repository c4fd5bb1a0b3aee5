// Package scene holds the read-only data model the solver, shader and
// frame driver consume: Camera, Light, Surface, Material and the
// surface/clip list structure that links them together.
//
// Values here are plain Go structs rather than the original backend's
// SIMD-aligned, broadcast-to-every-lane records (rt_SIMD_CAMERA,
// rt_SIMD_SURFACE, ...): the lane-width negotiation in internal/wide is
// a runtime decision in this port, so broadcasting a scalar field to W
// lanes happens once, at batch-build time in context/solver, rather
// than being baked into the data's on-disk shape. The field sets and
// invariants are carried unchanged from core/tracer/tracer.h.
//
// Lists: the original packs a 4-bit tag into the low bits of a list
// element's pointer (rt_ELEM). Spec.md's redesign note asks for an
// explicit sum type instead; this package represents every list
// (scene surfaces, per-surface custom clippers, per-light shadow
// casters) as a slice of Node values with an explicit Kind, addressed
// by a cursor index rather than pointer-chasing next fields.
package scene
