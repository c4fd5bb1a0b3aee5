package scene

// Prop is a material property bit, matching the original backend's
// RT_PROP_* constants (core/tracer/tracer.h) exactly so property bits
// can be round-tripped through a fixture format unchanged.
type Prop uint32

const (
	PropLight    Prop = 0x00000010
	PropMetal    Prop = 0x00000020
	PropGamma    Prop = 0x00000040
	PropFresnel  Prop = 0x00000080
	PropNormal   Prop = 0x00000100
	PropOpaque   Prop = 0x00000200
	PropTransp   Prop = 0x00000400
	PropTexture  Prop = 0x00000800
	PropReflect  Prop = 0x00001000
	PropRefract  Prop = 0x00002000
	PropDiffuse  Prop = 0x00004000
	PropSpecular Prop = 0x00008000
)

// Has reports whether p includes bit.
func (p Prop) Has(bit Prop) bool { return p&bit != 0 }

// Texture is a row-major, power-of-two-dimensioned RGB pixel buffer
// (spec.md §6 "Texture layout"). Each element packs R,G,B into the low
// 24 bits, R in bits 16-23, G in bits 8-15 and B in bits 0-7, whatever
// channel layout the camera packs framebuffer pixels with; the high
// byte is unused for textures.
type Texture struct {
	Width, Height int // must be powers of two
	Pixels        []uint32
}

// At returns the raw packed pixel at (x, y), wrapping neither axis;
// callers are expected to have already masked coordinates into range
// via the material's TexMask (spec.md §4.F step 2).
func (t *Texture) At(x, y int) uint32 {
	return t.Pixels[y*t.Width+x]
}

// Material describes a surface side's appearance and shading behaviour
// (spec.md §3). Fields mirror rt_SIMD_MATERIAL in core/tracer/tracer.h.
type Material struct {
	Props Prop

	// Texture transform: (u,v) derivation, offset+scale, address masks.
	Texture    *Texture
	TexScale   [2]float32
	TexOffset  [2]float32
	TexMask    [2]int32 // power-of-two address mask per axis
	TexYShift  int32    // shift applied to v before combining into an offset
	TexAxisMap [2]int   // which world/local axes feed u, v

	// Lighting weights.
	Diffuse          float32
	Specular         float32
	SpecularExponent uint32 // 28.4 fixed-point, per spec.md §4.F step 3

	// Transparency / refraction.
	Reflect  float32
	Transmit float32
	Refract  float32
	Rfr2     float32 // 1 - Refract^2

	// Metal-Fresnel reflectance parameters.
	MetalExt2    float32
	MetalExtRcp  float32

	// Emission, for path-tracing (spec.md §4.I step 6).
	Emission Vec3

	// Output clamp.
	Clamp      float32
	ClampChans [3]bool

	// Base/tint color, used directly when untextured and as the metal
	// tint when PropMetal is set.
	Color Vec3

	Gamma bool
}

// ComputeRfr2 derives Rfr2 = 1 - Refract^2 from Refract, matching the
// original's precomputed mat_RFR_2 field. Callers building a Material
// from a fixture should call this after setting Refract.
func (m *Material) ComputeRfr2() {
	m.Rfr2 = 1 - m.Refract*m.Refract
}
