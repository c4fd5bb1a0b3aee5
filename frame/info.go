package frame

import (
	"fmt"

	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/dispatch"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/pathtracer"
	"github.com/vecrt/rt/scene"
	"github.com/vecrt/rt/shader"
)

// Info is the external description of one render call (spec.md §6):
// the camera, scene surface list, lights, output framebuffer, optional
// tile map, thread index/count, recursion depth, antialiasing level,
// and path-tracer enable flag plus sample count.
type Info struct {
	Camera *scene.Camera
	List   scene.List
	Lights []*scene.Light

	Framebuffer          []uint32
	FrameW, FrameH       int
	ThreadIndex, ThreadCount int

	Tiles *TileMap // optional

	DepthMax int // 0 selects context.DefaultMaxDepth

	// FSAA is the antialiasing level: the lane width a Driver built from
	// this Info renders with is 1<<FSAA (spec.md §6 "path-tracer planes
	// sized ... (1 << fsaa)" applies the same width to both modes).
	FSAA int

	PathTrace bool // false: Whitted-style dispatch.Dispatcher; true: pathtracer.Tracer
	Samples   int  // path-tracer per-pixel sample count; ignored otherwise

	// Cancel, when non-nil, is polled once per row during RenderStripe.
	Cancel func() bool
}

// BuildDriver allocates a fresh Arena sized for info's lane width and
// depth, and wires up either a Whitted dispatcher or a path tracer per
// info.PathTrace. The returned Driver owns that Arena exclusively: it
// is not safe to share across goroutines, matching dispatch.Dispatcher's
// own arena-ownership rule.
func BuildDriver(info *Info) (*Driver, error) {
	if info.FSAA < 0 {
		return nil, fmt.Errorf("frame: invalid antialiasing level %d", info.FSAA)
	}
	width := 1 << info.FSAA

	maxDepth := info.DepthMax
	if maxDepth <= 0 {
		maxDepth = context.DefaultMaxDepth
	}

	arena, err := context.NewArena(width, maxDepth, info.Camera.TMax)
	if err != nil {
		return nil, fmt.Errorf("frame: building arena: %w", err)
	}
	consts := wide.NewConstants(width)

	d := &Driver{Arena: arena, Consts: consts, Camera: info.Camera, List: info.List, Tiles: info.Tiles}

	if info.PathTrace {
		rrDepth := maxDepth - 2
		if rrDepth < 1 {
			rrDepth = 1
		}
		d.Tracer = pathtracer.NewTracer(arena, consts, info.List, rrDepth)
		d.Samples = info.Samples
		if d.Samples < 1 {
			d.Samples = 1
		}
		return d, nil
	}

	env := shader.Environment{
		Lights:           info.Lights,
		AmbientColor:     info.Camera.AmbientColor,
		AmbientIntensity: info.Camera.AmbientIntensity,
	}
	d.Dispatcher = dispatch.NewWhittedDispatcher(arena, consts, info.List, env)
	return d, nil
}
