// Package shader implements the material pipeline that runs once per
// surviving surface/side hit: normal-aware texturing, Phong-style
// direct lighting with shadow testing, transparency/refraction with a
// Fresnel split, reflection (including the metal-tinted variant), and
// gamma correction in and out of linear light (spec.md §4.F).
//
// Shade takes its secondary-ray hooks as callbacks (RecurseFunc for
// colored transmission/reflection bounces, ShadowFunc for the cheaper
// boolean shadow test) rather than importing package dispatch directly:
// dispatch is the package that wires shader and solver together, and a
// direct import the other way would cycle.
package shader
