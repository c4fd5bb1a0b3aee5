// Package pathtracer is the optional Monte-Carlo stage of spec.md
// §4.I, built on top of package shader and package solver with its own
// push/pop loop over a context.Arena (it does not go through package
// dispatch): a Tracer drives one
// sample pass per call, casting a cosine-weighted bounce from every
// diffuse hit, Russian-roulette terminating long paths, and
// Fresnel-splitting reflect/refract into a single randomly chosen
// branch instead of shader's deterministic "both branches weighted"
// model. Samples are blended into a caller-owned accumulator with
// Accumulate, matching the original's PTS_C/PTS_O/PTS_U running-average
// scheme (spec.md §4.I step 6) so the frame driver can call TraceSample
// in a loop without this package owning the framebuffer itself.
package pathtracer
