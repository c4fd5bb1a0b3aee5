package testfixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vecrt/rt/scene"
)

const sampleTOML = `
[camera]
origin = [0, 0, -5]
dir = [0, 0, 1]
hor = [1, 0, 0]
ver = [0, 1, 0]
ambient_color = [1, 1, 1]
ambient_intensity = 0.2
clamp = 1
row_step = 64
t_max = 1000

[materials.floor]
color = [0.8, 0.8, 0.8]
diffuse = 1

[materials.mirror]
color = [1, 1, 1]
reflect = 0.9

[materials.checker]
diffuse = 1
checker_size = 4
checker_tile = 2
checker_color_a = [1, 1, 1]
checker_color_b = [0, 0, 0]

[[surfaces]]
kind = "plane"
pos = [0, 0, 0]
outer_material = "floor"

[[surfaces]]
kind = "quadric"
pos = [0, 0, 10]
sci = [1, 1, 1]
sciw = -4
outer_material = "mirror"

[[surfaces]]
kind = "plane"
pos = [5, 0, 0]
outer_material = "checker"

[[lights]]
pos = [0, 10, -10]
color = [1, 1, 1]
intensity = 1
attn_constant = 1
`

func writeTempFixture(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSceneBuildsCameraMaterialsAndSurfaces(t *testing.T) {
	path := writeTempFixture(t, sampleTOML)
	s, err := LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}

	if s.Camera.Origin != (scene.Vec3{0, 0, -5}) {
		t.Fatalf("unexpected camera origin: %v", s.Camera.Origin)
	}
	if !s.Camera.Validate() {
		t.Fatal("expected loaded camera to pass Validate")
	}
	if len(s.List) != 3 {
		t.Fatalf("expected 3 surfaces, got %d", len(s.List))
	}
	if len(s.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(s.Lights))
	}

	floor := s.List[0].Surface
	if floor.OuterMaterial.Diffuse != 1 {
		t.Fatalf("expected floor material diffuse=1, got %v", floor.OuterMaterial.Diffuse)
	}

	mirror := s.List[1].Surface
	if !mirror.OuterMaterial.Props.Has(scene.PropReflect) {
		t.Fatal("expected mirror material to carry PropReflect")
	}
}

func TestLoadSceneUnknownMaterialReferenceErrors(t *testing.T) {
	bad := `
[camera]
origin = [0, 0, 0]
dir = [0, 0, 1]
hor = [1, 0, 0]
ver = [0, 1, 0]

[[surfaces]]
kind = "plane"
outer_material = "does-not-exist"
`
	path := writeTempFixture(t, bad)
	if _, err := LoadScene(path); err == nil {
		t.Fatal("expected an error for an unresolved material reference")
	}
}

func TestLoadSceneChecksCheckerTextureWiring(t *testing.T) {
	path := writeTempFixture(t, sampleTOML)
	s, err := LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	checkered := s.List[2].Surface.OuterMaterial
	if checkered.Texture == nil {
		t.Fatal("expected the checker material to carry a synthesized texture")
	}
	if !checkered.Props.Has(scene.PropTexture) {
		t.Fatal("expected the checker material to carry PropTexture")
	}
	if checkered.Texture.Width != 4 || checkered.Texture.Height != 4 {
		t.Fatalf("unexpected checker texture dimensions: %dx%d", checkered.Texture.Width, checkered.Texture.Height)
	}
}

func TestCheckerTextureAlternatesColors(t *testing.T) {
	tex := CheckerTexture(4, 2, scene.Vec3{1, 1, 1}, scene.Vec3{0, 0, 0})
	if tex.Width != 4 || tex.Height != 4 {
		t.Fatalf("unexpected texture dimensions: %dx%d", tex.Width, tex.Height)
	}
	topLeft := tex.At(0, 0)
	topRight := tex.At(2, 0) // next 2x2 tile over, should be the other color
	if topLeft == topRight {
		t.Fatalf("expected adjacent checker tiles to differ, both were 0x%06x", topLeft)
	}
	belowLeft := tex.At(0, 2) // one tile down, also alternates
	if belowLeft == topLeft {
		t.Fatalf("expected tile below to differ from tile above, both were 0x%06x", topLeft)
	}
}
