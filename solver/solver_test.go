package solver

import (
	"testing"

	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

func newTestContext(width int, org, dir scene.Vec3) *context.Context {
	ctx := context.New(width)
	for i := 0; i < width; i++ {
		ctx.OrgX[i], ctx.OrgY[i], ctx.OrgZ[i] = org[0], org[1], org[2]
		ctx.RayX[i], ctx.RayY[i], ctx.RayZ[i] = dir[0], dir[1], dir[2]
		ctx.WMask[i] = wide.MaskTrue
		ctx.TBuf[i] = 1000
		ctx.TMin[i] = 0
	}
	return ctx
}

func TestIntersectSinglePlane(t *testing.T) {
	width := 4
	ctx := newTestContext(width, scene.Vec3{0, 0, -5}, scene.Vec3{0, 0, 1})
	consts := wide.NewConstants(width)

	mat := &scene.Material{Color: scene.Vec3{1, 0, 0}}
	plane := &scene.Surface{
		Kind:          scene.KindPlane,
		Pos:           scene.Vec3{0, 0, 0},
		OuterMaterial: mat,
		SignBaseOuter: 1,
	}
	list := scene.List{{Kind: scene.NodeSurface, Surface: plane}}

	var shaded int
	Intersect(ctx, consts, list, func(c *context.Context, cs *wide.Constants, surf *scene.Surface, side context.Side, m *scene.Material, mask wide.Mask) {
		shaded++
		if side != context.SideOuter {
			t.Fatalf("expected outer side, got %v", side)
		}
		for i := 0; i < width; i++ {
			if mask[i] == wide.MaskFalse {
				continue
			}
			if got := c.TBuf[i]; got < 4.999 || got > 5.001 {
				t.Fatalf("lane %d: TBuf = %v, want ~5", i, got)
			}
		}
	})

	if shaded != 1 {
		t.Fatalf("expected exactly one shade call, got %d", shaded)
	}
}

func sphereSurface() *scene.Surface {
	return &scene.Surface{
		Kind:          scene.KindQuadric,
		Pos:           scene.Vec3{0, 0, 0},
		SCI:           scene.Vec3{1, 1, 1},
		SCIW:          -4, // radius 2
		OuterMaterial: &scene.Material{Color: scene.Vec3{1, 1, 1}},
		InnerMaterial: &scene.Material{Color: scene.Vec3{0, 1, 1}},
		SignBaseOuter: 1,
		SignBaseInner: -1,
	}
}

func TestIntersectSphereFromOutsideShowsOuterFace(t *testing.T) {
	width := 4
	ctx := newTestContext(width, scene.Vec3{0, 0, -10}, scene.Vec3{0, 0, 1})
	consts := wide.NewConstants(width)
	list := scene.List{{Kind: scene.NodeSurface, Surface: sphereSurface()}}

	var sides []context.Side
	var depth float32
	Intersect(ctx, consts, list, func(c *context.Context, cs *wide.Constants, surf *scene.Surface, side context.Side, m *scene.Material, mask wide.Mask) {
		sides = append(sides, side)
		depth = c.TVal[0]
	})

	if len(sides) != 1 || sides[0] != context.SideOuter {
		t.Fatalf("expected a single outer-side shade call, got %v", sides)
	}
	if depth < 7.9 || depth > 8.1 {
		t.Fatalf("depth = %v, want ~8 (entry at z=-2)", depth)
	}
}

func TestIntersectSphereFromInsideShowsInnerFace(t *testing.T) {
	width := 4
	ctx := newTestContext(width, scene.Vec3{0, 0, 0}, scene.Vec3{0, 0, 1})
	consts := wide.NewConstants(width)
	list := scene.List{{Kind: scene.NodeSurface, Surface: sphereSurface()}}

	var sides []context.Side
	var depth float32
	Intersect(ctx, consts, list, func(c *context.Context, cs *wide.Constants, surf *scene.Surface, side context.Side, m *scene.Material, mask wide.Mask) {
		sides = append(sides, side)
		depth = c.TVal[0]
	})

	if len(sides) != 1 || sides[0] != context.SideInner {
		t.Fatalf("expected a single inner-side shade call, got %v", sides)
	}
	if depth < 1.9 || depth > 2.1 {
		t.Fatalf("depth = %v, want ~2 (exit at z=2)", depth)
	}
}

// TestSelfHitReusesCachedLocalHitForExitFace simulates the second pass
// of a ray refracting through a sphere: the batch's OrgSurf already
// names the sphere (as if a prior bounce had just entered it through the
// outer face), and NrmI/J/K hold the cached local-space entry point. The
// solver must still find the opposite-side root against the very same
// *scene.Surface record instead of excluding the lane outright.
func TestSelfHitReusesCachedLocalHitForExitFace(t *testing.T) {
	width := 4
	surf := sphereSurface()

	ctx := newTestContext(width, scene.Vec3{0, 0, -10}, scene.Vec3{0, 0, 1})
	for i := 0; i < width; i++ {
		ctx.OrgSurf[i] = surf.ID()
		// Cached local-space hit point from the bounce that just left the
		// sphere at its entry face, z = -2.
		ctx.NrmI[i], ctx.NrmJ[i], ctx.NrmK[i] = 0, 0, -2
	}

	list := scene.List{{Kind: scene.NodeSurface, Surface: surf}}

	var sides []context.Side
	var depth float32
	Intersect(ctx, wide.NewConstants(width), list, func(c *context.Context, cs *wide.Constants, s *scene.Surface, side context.Side, m *scene.Material, mask wide.Mask) {
		sides = append(sides, side)
		depth = c.TVal[0]
	})

	if len(sides) != 1 || sides[0] != context.SideInner {
		t.Fatalf("expected the self-hit lane to find the inner exit face, got %v", sides)
	}
	if depth < 3.9 || depth > 4.1 {
		t.Fatalf("depth = %v, want ~4 (local exit at z=2 relative to the cached entry at z=-2)", depth)
	}
}

func TestSelfHitExcludesLaneOnPlane(t *testing.T) {
	width := 4
	plane := &scene.Surface{
		Kind:          scene.KindPlane,
		Pos:           scene.Vec3{0, 0, 0},
		OuterMaterial: &scene.Material{Color: scene.Vec3{1, 0, 0}},
		SignBaseOuter: 1,
	}

	ctx := newTestContext(width, scene.Vec3{0, 0, -5}, scene.Vec3{0, 0, 1})
	for i := 0; i < width; i++ {
		ctx.OrgSurf[i] = plane.ID()
	}

	list := scene.List{{Kind: scene.NodeSurface, Surface: plane}}

	var shaded int
	Intersect(ctx, wide.NewConstants(width), list, func(*context.Context, *wide.Constants, *scene.Surface, context.Side, *scene.Material, wide.Mask) {
		shaded++
	})
	if shaded != 0 {
		t.Fatalf("expected a self-hit lane against a plane to be excluded, got %d shade calls", shaded)
	}
}

func TestBoundingArraySkipsChildrenOnMiss(t *testing.T) {
	width := 4
	ctx := newTestContext(width, scene.Vec3{0, 0, -10}, scene.Vec3{0, 0, 1})
	consts := wide.NewConstants(width)

	farAway := &scene.Surface{
		Kind: scene.KindQuadric,
		Pos:  scene.Vec3{100, 100, 100},
		SCI:  scene.Vec3{1, 1, 1},
		SCIW: -1,
	}
	child := &scene.Surface{
		Kind:          scene.KindQuadric,
		Pos:           scene.Vec3{100, 100, 100},
		SCI:           scene.Vec3{1, 1, 1},
		SCIW:          -1,
		OuterMaterial: &scene.Material{},
	}
	list := scene.List{
		{Kind: scene.NodeBoundingArray, Surface: farAway, GroupLen: 1},
		{Kind: scene.NodeSurface, Surface: child},
	}

	var shaded int
	Intersect(ctx, consts, list, func(c *context.Context, cs *wide.Constants, surf *scene.Surface, side context.Side, m *scene.Material, mask wide.Mask) {
		shaded++
	})
	if shaded != 0 {
		t.Fatalf("expected bounding array to skip the unreachable child, got %d shade calls", shaded)
	}
}

func TestAxisClipRejectsOutOfRangeHit(t *testing.T) {
	width := 4
	ctx := newTestContext(width, scene.Vec3{0, 0, -5}, scene.Vec3{0, 0, 1})
	consts := wide.NewConstants(width)

	plane := &scene.Surface{
		Kind:          scene.KindPlane,
		Pos:           scene.Vec3{0, 0, 0},
		OuterMaterial: &scene.Material{},
		SignBaseOuter: 1,
		Clip: [3]scene.AxisClip{
			{MinEnabled: true, Min: 1}, // world X must be >= 1; ray hits at X=0
			{},
			{},
		},
	}
	list := scene.List{{Kind: scene.NodeSurface, Surface: plane}}

	var shaded int
	Intersect(ctx, consts, list, func(*context.Context, *wide.Constants, *scene.Surface, context.Side, *scene.Material, wide.Mask) {
		shaded++
	})
	if shaded != 0 {
		t.Fatalf("expected axis clip to reject the hit, got %d shade calls", shaded)
	}
}
