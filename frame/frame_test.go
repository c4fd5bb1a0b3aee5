package frame

import (
	"testing"

	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/dispatch"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/pathtracer"
	"github.com/vecrt/rt/scene"
	"github.com/vecrt/rt/shader"
)

func whiteCamera(width int) *scene.Camera {
	hor := make([]float32, width)
	ver := make([]float32, width)
	return &scene.Camera{
		Origin:      scene.Vec3{0, 0, -5},
		Dir:         scene.Vec3{0, 0, 1},
		Hor:         scene.Vec3{1, 0, 0},
		Ver:         scene.Vec3{0, 1, 0},
		HorOffsets:  hor,
		VerOffsets:  ver,
		Clamp:       1,
		ChannelMask: [3]uint32{0x0000FF, 0x00FF00, 0xFF0000},
		ChannelShift: [3]uint32{0, 8, 16},
		RowStep:     64,
		TMax:        1000,
	}
}

func flatPlane(color scene.Vec3) *scene.Surface {
	return &scene.Surface{
		Kind:          scene.KindPlane,
		OuterMaterial: &scene.Material{Color: color, Diffuse: 1, Clamp: 1},
		SignBaseOuter: 1,
	}
}

func TestRenderWhittedPixelHitsAmbientLitPlane(t *testing.T) {
	width := 4
	arena, err := context.NewArena(width, 4, 1000)
	if err != nil {
		t.Fatal(err)
	}
	cam := whiteCamera(width)
	list := scene.List{{Kind: scene.NodeSurface, Surface: flatPlane(scene.Vec3{1, 1, 1})}}

	env := shader.Environment{AmbientColor: scene.Vec3{1, 1, 1}, AmbientIntensity: 1}
	d := dispatch.NewWhittedDispatcher(arena, wide.NewConstants(width), list, env)
	driver := NewWhittedDriver(arena, wide.NewConstants(width), cam, list, d)

	px := driver.renderPixel(0, 0)
	if px == 0 {
		t.Fatalf("expected a lit, non-black pixel, got 0x%06x", px)
	}
}

func TestRenderWhittedPixelMissIsBlack(t *testing.T) {
	width := 4
	arena, err := context.NewArena(width, 4, 1000)
	if err != nil {
		t.Fatal(err)
	}
	cam := whiteCamera(width)
	cam.Dir = scene.Vec3{0, 0, -1} // point away from the plane
	list := scene.List{{Kind: scene.NodeSurface, Surface: flatPlane(scene.Vec3{1, 1, 1})}}

	env := shader.Environment{}
	d := dispatch.NewWhittedDispatcher(arena, wide.NewConstants(width), list, env)
	driver := NewWhittedDriver(arena, wide.NewConstants(width), cam, list, d)

	px := driver.renderPixel(0, 0)
	if px != 0 {
		t.Fatalf("expected black on a miss, got 0x%06x", px)
	}
}

func TestRenderPathTracedPixelAccumulatesEmission(t *testing.T) {
	width := 4
	arena, err := context.NewArena(width, 4, 1000)
	if err != nil {
		t.Fatal(err)
	}
	cam := whiteCamera(width)
	emissive := &scene.Surface{
		Kind:          scene.KindPlane,
		OuterMaterial: &scene.Material{Emission: scene.Vec3{1, 1, 1}, Diffuse: 0},
		SignBaseOuter: 1,
	}
	list := scene.List{{Kind: scene.NodeSurface, Surface: emissive}}

	tracer := pathtracer.NewTracer(arena, wide.NewConstants(width), list, 3)
	driver := NewPathTracerDriver(arena, wide.NewConstants(width), cam, list, tracer, 4)

	px := driver.renderPixel(0, 0)
	if px == 0 {
		t.Fatalf("expected accumulated emission to produce a non-black pixel, got 0x%06x", px)
	}
}

func TestRenderStripeCoversOnlyAssignedRows(t *testing.T) {
	width := 4
	arena, err := context.NewArena(width, 4, 1000)
	if err != nil {
		t.Fatal(err)
	}
	cam := whiteCamera(width)
	cam.RowStep = 8
	list := scene.List{{Kind: scene.NodeSurface, Surface: flatPlane(scene.Vec3{1, 1, 1})}}

	env := shader.Environment{AmbientColor: scene.Vec3{1, 1, 1}, AmbientIntensity: 1}
	d := dispatch.NewWhittedDispatcher(arena, wide.NewConstants(width), list, env)
	driver := NewWhittedDriver(arena, wide.NewConstants(width), cam, list, d)

	const frameW, frameH = 8, 4
	fb := make([]uint32, frameW*frameH)
	driver.RenderStripe(1, 2, frameW, frameH, fb, nil)

	for row := 0; row < frameH; row++ {
		for col := 0; col < frameW; col++ {
			px := fb[row*frameW+col]
			wantLit := row%2 == 1
			if wantLit && px == 0 {
				t.Fatalf("row %d col %d: expected thread 1's row to be rendered, got black", row, col)
			}
			if !wantLit && px != 0 {
				t.Fatalf("row %d col %d: expected thread 0's row to stay untouched (black), got 0x%06x", row, col, px)
			}
		}
	}
}

func TestTileMapServesFromCacheWithoutReResolving(t *testing.T) {
	calls := 0
	resolver := func(tileRow, tileCol int) scene.List {
		calls++
		return scene.List{{Kind: scene.NodeSurface, Surface: flatPlane(scene.Vec3{1, 1, 1})}}
	}
	tm, err := NewTileMap(4, 16, 16, resolver, 8)
	if err != nil {
		t.Fatal(err)
	}

	tm.ListFor(0, 0)
	tm.ListFor(1, 1) // same tile (16x16), should hit cache
	if calls != 1 {
		t.Fatalf("expected one resolver call for repeated lookups in the same tile, got %d", calls)
	}

	tm.ListFor(20, 20) // a different tile
	if calls != 2 {
		t.Fatalf("expected a second resolver call for a different tile, got %d", calls)
	}

	tm.Invalidate(1)
	tm.ListFor(0, 0)
	if calls != 3 {
		t.Fatalf("expected invalidation to force a fresh resolve, got %d calls", calls)
	}
}

func TestTileMapNilIsNoop(t *testing.T) {
	var tm *TileMap
	if got := tm.ListFor(5, 5); got != nil {
		t.Fatalf("expected nil TileMap to resolve to nil, got %v", got)
	}
}
