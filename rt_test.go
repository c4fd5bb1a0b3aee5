package rt

import (
	"testing"

	"github.com/vecrt/rt/frame"
	"github.com/vecrt/rt/scene"
)

func whiteCamera(width int) *scene.Camera {
	hor := make([]float32, width)
	ver := make([]float32, width)
	return &scene.Camera{
		Origin:       scene.Vec3{0, 0, -5},
		Dir:          scene.Vec3{0, 0, 1},
		Hor:          scene.Vec3{1, 0, 0},
		Ver:          scene.Vec3{0, 1, 0},
		HorOffsets:   hor,
		VerOffsets:   ver,
		Clamp:        1,
		ChannelMask:  [3]uint32{0x0000FF, 0x00FF00, 0xFF0000},
		ChannelShift: [3]uint32{0, 8, 16},
		RowStep:      8,
		TMax:         1000,
	}
}

func flatPlane(color scene.Vec3) *scene.Surface {
	return &scene.Surface{
		Kind:          scene.KindPlane,
		OuterMaterial: &scene.Material{Color: color, Diffuse: 1, Clamp: 1},
		SignBaseOuter: 1,
	}
}

func TestSwitchNeverExceedsRequested(t *testing.T) {
	for _, requested := range []int{1, 4, 8, 64} {
		chosen := Switch(requested)
		if chosen > requested {
			t.Fatalf("Switch(%d) = %d, want <= requested", requested, chosen)
		}
		if chosen <= 0 {
			t.Fatalf("Switch(%d) = %d, want a positive lane count", requested, chosen)
		}
	}
}

func TestUpdateDerivesMaterialPropsAndEpsilons(t *testing.T) {
	surf := &scene.Surface{
		Kind:          scene.KindPlane,
		OuterMaterial: &scene.Material{Reflect: 0.5, Refract: 0.3, Diffuse: 1, Gamma: true},
	}
	Update(surf)

	if surf.SignBaseOuter != 1 {
		t.Fatalf("expected default SignBaseOuter 1, got %v", surf.SignBaseOuter)
	}
	if surf.DEps == 0 || surf.TEps == 0 {
		t.Fatalf("expected non-zero default epsilons, got DEps=%v TEps=%v", surf.DEps, surf.TEps)
	}

	mat := surf.OuterMaterial
	want := scene.PropReflect | scene.PropTransp | scene.PropRefract | scene.PropDiffuse | scene.PropGamma
	if mat.Props&want != want {
		t.Fatalf("expected props %b to include %b", mat.Props, want)
	}
	refract := float32(0.3)
	if mat.Rfr2 != 1-refract*refract {
		t.Fatalf("expected ComputeRfr2 to run, got Rfr2=%v", mat.Rfr2)
	}
}

func TestUpdateDerivesTextureMaskFromDimensions(t *testing.T) {
	mat := &scene.Material{Texture: &scene.Texture{Width: 8, Height: 4, Pixels: make([]uint32, 32)}}
	surf := &scene.Surface{Kind: scene.KindPlane, OuterMaterial: mat}
	Update(surf)

	if !mat.Props.Has(scene.PropTexture) {
		t.Fatalf("expected PropTexture to be set")
	}
	if mat.TexMask[0] != 7 || mat.TexMask[1] != 3 {
		t.Fatalf("expected TexMask {7,3}, got %v", mat.TexMask)
	}
}

func TestUpdateIsNilSafe(t *testing.T) {
	Update(nil)
	Update(&scene.Surface{})
}

func TestRenderFillsFramebuffer(t *testing.T) {
	width := 4
	cam := whiteCamera(width)
	list := scene.List{{Kind: scene.NodeSurface, Surface: flatPlane(scene.Vec3{1, 1, 1})}}

	const frameW, frameH = 8, 4
	fb := make([]uint32, frameW*frameH)
	info := &frame.Info{
		Camera:      cam,
		List:        list,
		Lights:      nil,
		Framebuffer: fb,
		FrameW:      frameW,
		FrameH:      frameH,
		ThreadCount: 1,
		FSAA:        2, // 1<<2 == width
	}
	cam.AmbientColor = scene.Vec3{1, 1, 1}
	cam.AmbientIntensity = 1

	if err := Render(info); err != nil {
		t.Fatal(err)
	}

	for i, px := range fb {
		if px == 0 {
			t.Fatalf("pixel %d: expected a lit pixel against an ambient-lit plane, got black", i)
		}
	}
}

func TestRenderRejectsNegativeFSAA(t *testing.T) {
	info := &frame.Info{Camera: whiteCamera(1), FSAA: -1}
	if err := Render(info); err == nil {
		t.Fatal("expected an error for a negative FSAA level")
	}
}
