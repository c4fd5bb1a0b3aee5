package dispatch

import (
	"testing"

	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
	"github.com/vecrt/rt/shader"
)

func TestRenderDiffusePlaneAccumulatesLight(t *testing.T) {
	width := 4
	arena, err := context.NewArena(width, 4, 1000)
	if err != nil {
		t.Fatal(err)
	}
	ctx := arena.Current()
	for i := 0; i < width; i++ {
		ctx.OrgX[i], ctx.OrgY[i], ctx.OrgZ[i] = 0, 0, -5
		ctx.RayX[i], ctx.RayY[i], ctx.RayZ[i] = 0, 0, 1
		ctx.WMask[i] = wide.MaskTrue
	}

	mat := &scene.Material{Color: scene.Vec3{1, 1, 1}, Diffuse: 1}
	// A plane's normal is its local +K axis times SignBaseOuter; -1 turns
	// it toward the camera and the light, both on the -z side.
	plane := &scene.Surface{Kind: scene.KindPlane, OuterMaterial: mat, SignBaseOuter: -1}
	list := scene.List{{Kind: scene.NodeSurface, Surface: plane}}
	light := &scene.Light{Pos: scene.Vec3{0, 0, -4}, Color: scene.Vec3{1, 1, 1}, Intensity: 1, AttnConstant: 1}
	env := shader.Environment{Lights: []*scene.Light{light}}

	d := NewWhittedDispatcher(arena, wide.NewConstants(width), list, env)
	d.Render()

	for i := 0; i < width; i++ {
		if ctx.ColR[i] <= 0 {
			t.Fatalf("lane %d: expected positive accumulated radiance, got %v", i, ctx.ColR[i])
		}
	}
}

func TestRecursePastMaxDepthReturnsZero(t *testing.T) {
	width := 4
	arena, err := context.NewArena(width, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	mirror := &scene.Material{Props: scene.PropReflect, Reflect: 1}
	plane := &scene.Surface{Kind: scene.KindPlane, OuterMaterial: mirror, SignBaseOuter: 1}
	list := scene.List{{Kind: scene.NodeSurface, Surface: plane}}

	d := NewWhittedDispatcher(arena, wide.NewConstants(width), list, shader.Environment{})

	// Exhaust the single available recursion slot.
	ctx := arena.Current()
	mask := wide.NewMask(width)
	for i := range mask {
		mask[i] = wide.MaskTrue
		ctx.HitX[i], ctx.HitY[i], ctx.HitZ[i] = 0, 0, 0
		ctx.NewX[i], ctx.NewY[i], ctx.NewZ[i] = 0, 0, 1
	}
	if _, ok := arena.Push(false); !ok {
		t.Fatal("expected first push to succeed")
	}

	r, g, b := d.recurse(ctx, context.PassBack, mask)
	for i := 0; i < width; i++ {
		if r[i] != 0 || g[i] != 0 || b[i] != 0 {
			t.Fatalf("lane %d: expected zero radiance past max depth, got %v %v %v", i, r[i], g[i], b[i])
		}
	}
}
