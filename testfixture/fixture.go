package testfixture

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/vecrt/rt/scene"
)

// materialDoc is the TOML shape of one [materials.<name>] table.
type materialDoc struct {
	Color    [3]float32 `toml:"color"`
	Emission [3]float32 `toml:"emission"`

	Diffuse          float32 `toml:"diffuse"`
	Specular         float32 `toml:"specular"`
	SpecularExponent uint32  `toml:"specular_exponent"`

	Reflect  float32 `toml:"reflect"`
	Transmit float32 `toml:"transmit"`
	Refract  float32 `toml:"refract"`

	Metal bool    `toml:"metal"`
	Gamma bool    `toml:"gamma"`
	Clamp float32 `toml:"clamp"`

	// CheckerSize/CheckerTile: non-zero CheckerSize synthesizes a
	// checkerboard texture via CheckerTexture instead of using Color
	// flatly.
	CheckerSize   int        `toml:"checker_size"`
	CheckerTile   int        `toml:"checker_tile"`
	CheckerColorA [3]float32 `toml:"checker_color_a"`
	CheckerColorB [3]float32 `toml:"checker_color_b"`
}

// surfaceDoc is the TOML shape of one [[surfaces]] entry.
type surfaceDoc struct {
	Kind string     `toml:"kind"` // "plane", "quadric", "twoplane"
	Pos  [3]float32 `toml:"pos"`

	SCI  [3]float32 `toml:"sci"`
	SCJ  [3]float32 `toml:"scj"`
	SCIW float32    `toml:"sciw"`

	Conic bool `toml:"conic"`

	SignBaseOuter float32 `toml:"sign_base_outer"`
	SignBaseInner float32 `toml:"sign_base_inner"`

	OuterMaterial string `toml:"outer_material"`
	InnerMaterial string `toml:"inner_material"` // empty: no inner material (one-sided surface)
}

// lightDoc is the TOML shape of one [[lights]] entry.
type lightDoc struct {
	Pos       [3]float32 `toml:"pos"`
	Color     [3]float32 `toml:"color"`
	Intensity float32    `toml:"intensity"`

	AttnQuadratic float32 `toml:"attn_quadratic"`
	AttnLinear    float32 `toml:"attn_linear"`
	AttnConstant  float32 `toml:"attn_constant"`
}

// cameraDoc is the TOML shape of the [camera] table. HorOffsets/
// VerOffsets aren't loaded from TOML since they depend on the lane
// width chosen at render time; the caller fills them in after loading
// (see Scene.Camera's doc comment).
type cameraDoc struct {
	Origin [3]float32 `toml:"origin"`
	Dir    [3]float32 `toml:"dir"`
	Hor    [3]float32 `toml:"hor"`
	Ver    [3]float32 `toml:"ver"`

	AmbientColor     [3]float32 `toml:"ambient_color"`
	AmbientIntensity float32    `toml:"ambient_intensity"`

	Clamp   float32 `toml:"clamp"`
	RowStep int     `toml:"row_step"`
	TMax    float32 `toml:"t_max"`
}

type sceneDoc struct {
	Camera    cameraDoc
	Materials map[string]materialDoc
	Surfaces  []surfaceDoc
	Lights    []lightDoc
}

// Scene is a loaded fixture, ready to hand to dispatch/pathtracer/frame
// constructors. Camera.HorOffsets/VerOffsets are left nil — set them
// (length = render lane width) before use, since a fixture file has no
// opinion on the lane width a particular test renders at.
type Scene struct {
	Camera *scene.Camera
	List   scene.List
	Lights []*scene.Light
}

// LoadScene parses a TOML fixture file into a Scene.
func LoadScene(path string) (*Scene, error) {
	var doc sceneDoc
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("testfixture: decoding %s: %w", path, err)
	}
	return buildScene(doc)
}

func buildScene(doc sceneDoc) (*Scene, error) {
	materials := make(map[string]*scene.Material, len(doc.Materials))
	for name, md := range doc.Materials {
		materials[name] = buildMaterial(md)
	}

	list := make(scene.List, 0, len(doc.Surfaces))
	for i, sd := range doc.Surfaces {
		surf, err := buildSurface(sd, materials)
		if err != nil {
			return nil, fmt.Errorf("testfixture: surface %d: %w", i, err)
		}
		list = append(list, scene.Node{Kind: scene.NodeSurface, Surface: surf})
	}

	lights := make([]*scene.Light, 0, len(doc.Lights))
	for _, ld := range doc.Lights {
		lights = append(lights, &scene.Light{
			Pos:           scene.Vec3(ld.Pos),
			Color:         scene.Vec3(ld.Color),
			Intensity:     ld.Intensity,
			AttnQuadratic: ld.AttnQuadratic,
			AttnLinear:    ld.AttnLinear,
			AttnConstant:  ld.AttnConstant,
		})
	}

	cam := &scene.Camera{
		Origin:           scene.Vec3(doc.Camera.Origin),
		Dir:              scene.Vec3(doc.Camera.Dir),
		Hor:              scene.Vec3(doc.Camera.Hor),
		Ver:              scene.Vec3(doc.Camera.Ver),
		AmbientColor:     scene.Vec3(doc.Camera.AmbientColor),
		AmbientIntensity: doc.Camera.AmbientIntensity,
		Clamp:            doc.Camera.Clamp,
		ChannelMask:      [3]uint32{0x0000FF, 0x00FF00, 0xFF0000},
		ChannelShift:     [3]uint32{0, 8, 16},
		RowStep:          doc.Camera.RowStep,
		TMax:             doc.Camera.TMax,
	}

	return &Scene{Camera: cam, List: list, Lights: lights}, nil
}

func buildMaterial(md materialDoc) *scene.Material {
	mat := &scene.Material{
		Color:            scene.Vec3(md.Color),
		Emission:         scene.Vec3(md.Emission),
		Diffuse:          md.Diffuse,
		Specular:         md.Specular,
		SpecularExponent: md.SpecularExponent,
		Reflect:          md.Reflect,
		Transmit:         md.Transmit,
		Refract:          md.Refract,
		Gamma:            md.Gamma,
		Clamp:            md.Clamp,
	}
	mat.ComputeRfr2()

	var props scene.Prop
	if md.Metal {
		props |= scene.PropMetal
	}
	if md.Gamma {
		props |= scene.PropGamma
	}
	if md.Reflect > 0 {
		props |= scene.PropReflect
	}
	if md.Refract > 0 {
		props |= scene.PropTransp | scene.PropRefract
	}
	if md.Diffuse > 0 {
		props |= scene.PropDiffuse
	}
	if md.Specular > 0 {
		props |= scene.PropSpecular
	}
	if md.CheckerSize > 0 {
		props |= scene.PropTexture
		mat.Texture = CheckerTexture(md.CheckerSize, md.CheckerTile, md.CheckerColorA, md.CheckerColorB)
		mat.TexScale = [2]float32{1, 1}
		mat.TexMask = [2]int32{int32(md.CheckerSize - 1), int32(md.CheckerSize - 1)}
		mat.TexAxisMap = [2]int{0, 1}
	}
	mat.Props = props
	return mat
}

func buildSurface(sd surfaceDoc, materials map[string]*scene.Material) (*scene.Surface, error) {
	outer, ok := materials[sd.OuterMaterial]
	if !ok {
		return nil, fmt.Errorf("unknown outer material %q", sd.OuterMaterial)
	}
	var inner *scene.Material
	if sd.InnerMaterial != "" {
		inner, ok = materials[sd.InnerMaterial]
		if !ok {
			return nil, fmt.Errorf("unknown inner material %q", sd.InnerMaterial)
		}
	}

	kind, err := parseKind(sd.Kind)
	if err != nil {
		return nil, err
	}

	signOuter := sd.SignBaseOuter
	if signOuter == 0 {
		signOuter = 1
	}

	return &scene.Surface{
		Kind:          kind,
		Pos:           scene.Vec3(sd.Pos),
		SCI:           scene.Vec3(sd.SCI),
		SCJ:           scene.Vec3(sd.SCJ),
		SCIW:          sd.SCIW,
		Conic:         sd.Conic,
		OuterMaterial: outer,
		InnerMaterial: inner,
		SignBaseOuter: signOuter,
		SignBaseInner: sd.SignBaseInner,
	}, nil
}

func parseKind(s string) (scene.Kind, error) {
	switch s {
	case "", "plane":
		return scene.KindPlane, nil
	case "quadric":
		return scene.KindQuadric, nil
	case "twoplane":
		return scene.KindTwoPlane, nil
	default:
		return 0, fmt.Errorf("unknown surface kind %q", s)
	}
}
