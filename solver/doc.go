// Package solver implements lane-parallel ray/surface intersection:
// plane, two-plane quadric and general quadric primitives, per-surface
// local-space transform with trnode caching, bounding-array rejection,
// and the clipping sub-engine (axis min/max, custom clip lists with
// accumulator scopes, conic singularity adjustment). This realizes
// spec.md §4.D and §4.E.
//
// Intersect never returns an error: numerical degeneracies are masked
// out lane-by-lane, matching spec.md §7's in-band masking discipline.
// Shading is injected as a callback (ShadeFunc) rather than imported
// directly, so package dispatch can wire solver, shader and its own
// recursion together without an import cycle (shader needs to be able
// to trigger another solver pass for shadow/transmission/reflection
// rays, and solver needs to be able to trigger shading — dispatch and
// pathtracer import both, shader imports neither solver nor dispatch).
package solver
