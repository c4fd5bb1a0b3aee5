// Package frame drives the per-pixel render loop: primary-ray
// generation from a scene.Camera, antialiasing downsample, gamma-out,
// and 8-bit channel packing (spec.md §4.J). It owns no recursion logic
// of its own — each pixel's rays are handed to either a
// dispatch.Dispatcher (Whitted-style) or a pathtracer.Tracer
// (Monte-Carlo), chosen once per Driver.
//
// Row distribution across worker threads follows spec.md §5's explicit
// "row = thread_index + k*thread_count" stripe discipline; the thread
// pool itself is out of this module's scope (spec.md §1), so
// RenderStripe expects its caller to already be running on a
// dedicated goroutine per thread_index.
package frame
