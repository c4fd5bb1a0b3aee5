package shader

import (
	"testing"

	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

func newShadeContext(width int) *context.Context {
	ctx := context.New(width)
	for i := 0; i < width; i++ {
		ctx.HitX[i], ctx.HitY[i], ctx.HitZ[i] = 0, 0, 0
		ctx.NrmX[i], ctx.NrmY[i], ctx.NrmZ[i] = 0, 0, 1
		ctx.RayX[i], ctx.RayY[i], ctx.RayZ[i] = 0, 0, 1
		ctx.MulR[i], ctx.MulG[i], ctx.MulB[i] = 1, 1, 1
	}
	return ctx
}

func allTrueMask(width int) wide.Mask {
	m := wide.NewMask(width)
	for i := range m {
		m[i] = wide.MaskTrue
	}
	return m
}

func TestShadeDiffuseOnlyMaterialAccumulatesColor(t *testing.T) {
	width := 4
	ctx := newShadeContext(width)
	consts := wide.NewConstants(width)
	mat := &scene.Material{Color: scene.Vec3{1, 0, 0}, Diffuse: 1}
	surf := &scene.Surface{Kind: scene.KindPlane}
	mask := allTrueMask(width)

	light := &scene.Light{Pos: scene.Vec3{0, 0, 5}, Color: scene.Vec3{1, 1, 1}, Intensity: 1, AttnConstant: 1}
	env := Environment{Lights: []*scene.Light{light}}

	Shade(ctx, consts, surf, context.SideOuter, mat, mask, env, nil, nil)

	for i := 0; i < width; i++ {
		if ctx.ColR[i] <= 0 {
			t.Fatalf("lane %d: expected positive red contribution, got %v", i, ctx.ColR[i])
		}
		if ctx.ColG[i] != 0 || ctx.ColB[i] != 0 {
			t.Fatalf("lane %d: expected no green/blue contribution from a red material, got %v %v", i, ctx.ColG[i], ctx.ColB[i])
		}
	}
}

func TestShadeShadowedLightContributesNothing(t *testing.T) {
	width := 4
	ctx := newShadeContext(width)
	consts := wide.NewConstants(width)
	mat := &scene.Material{Color: scene.Vec3{1, 1, 1}, Diffuse: 1}
	surf := &scene.Surface{Kind: scene.KindPlane}
	mask := allTrueMask(width)

	caster := scene.Node{Kind: scene.NodeSurface, Surface: &scene.Surface{}}
	light := &scene.Light{Pos: scene.Vec3{0, 0, 5}, Color: scene.Vec3{1, 1, 1}, Intensity: 1, AttnConstant: 1, ShadowCasters: []scene.Node{caster}}
	env := Environment{Lights: []*scene.Light{light}}

	alwaysOccluded := func(c *context.Context, l *scene.Light, m wide.Mask) wide.Mask { return m.Clone() }

	Shade(ctx, consts, surf, context.SideOuter, mat, mask, env, nil, alwaysOccluded)

	for i := 0; i < width; i++ {
		if ctx.ColR[i] != 0 || ctx.ColG[i] != 0 || ctx.ColB[i] != 0 {
			t.Fatalf("lane %d: expected zero contribution from a fully shadowed light, got %v %v %v", i, ctx.ColR[i], ctx.ColG[i], ctx.ColB[i])
		}
	}
}

func TestShadeReflectiveMaterialInvokesRecurse(t *testing.T) {
	width := 4
	ctx := newShadeContext(width)
	consts := wide.NewConstants(width)
	mat := &scene.Material{Props: scene.PropReflect, Reflect: 0.5}
	surf := &scene.Surface{Kind: scene.KindPlane}
	mask := allTrueMask(width)

	var called bool
	recurse := func(c *context.Context, pass context.Pass, m wide.Mask) (wide.F32, wide.F32, wide.F32) {
		called = true
		if pass != context.PassBack {
			t.Fatalf("expected PassBack, got %v", pass)
		}
		return wide.Splat(width, 1), wide.Splat(width, 1), wide.Splat(width, 1)
	}

	Shade(ctx, consts, surf, context.SideOuter, mat, mask, Environment{}, recurse, nil)

	if !called {
		t.Fatal("expected reflection to invoke recurse")
	}
	for i := 0; i < width; i++ {
		if ctx.ColR[i] < 0.49 || ctx.ColR[i] > 0.51 {
			t.Fatalf("lane %d: expected ~0.5 reflected contribution, got %v", i, ctx.ColR[i])
		}
	}
}

func TestSchlickFresnelIsHigherAtGrazingAngle(t *testing.T) {
	mat := &scene.Material{}
	head := Fresnel(wide.F32{-1}, mat)
	grazing := Fresnel(wide.F32{-0.05}, mat)
	if grazing[0] <= head[0] {
		t.Fatalf("expected grazing-angle Fresnel (%v) to exceed head-on (%v)", grazing[0], head[0])
	}
}
