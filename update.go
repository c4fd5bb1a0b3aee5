package rt

import (
	"github.com/vecrt/rt/internal/rtlog"
	"github.com/vecrt/rt/scene"
)

const (
	defaultDEps = 1e-6
	defaultTEps = 1e-4
)

// Update precomputes derived tags on a surface record for its primitive
// type (spec.md §6 "update(surface)"): default epsilons, the outward
// normal sign base, and each side material's property bits and
// refraction precompute. Callers building surfaces programmatically
// should call Update once after filling in a Surface's raw fields and
// before the surface enters a List a Driver renders against.
func Update(s *scene.Surface) {
	if s == nil {
		return
	}

	if s.SignBaseOuter == 0 {
		s.SignBaseOuter = 1
	}
	if s.DEps == 0 {
		s.DEps = defaultDEps
	}
	if s.TEps == 0 {
		s.TEps = defaultTEps
	}

	if !s.AxisMap.IsIdentity() && !s.AxisMap.Validate() {
		rtlog.Logger().Warn("surface axis map is not a bijection", "axis_map", s.AxisMap)
	}

	updateMaterial(s.OuterMaterial)
	updateMaterial(s.InnerMaterial)
}

// updateMaterial derives mat.Props bits and Rfr2 from the raw fields a
// fixture or caller sets directly, matching what the original backend's
// material-compile step does for rt_SIMD_MATERIAL (spec.md §6).
func updateMaterial(mat *scene.Material) {
	if mat == nil {
		return
	}

	mat.ComputeRfr2()

	if mat.Reflect > 0 {
		mat.Props |= scene.PropReflect
	}
	if mat.Refract > 0 {
		mat.Props |= scene.PropTransp | scene.PropRefract
	}
	if mat.Diffuse > 0 {
		mat.Props |= scene.PropDiffuse
	}
	if mat.Specular > 0 {
		mat.Props |= scene.PropSpecular
	}
	if mat.Gamma {
		mat.Props |= scene.PropGamma
	}

	if mat.Texture != nil {
		mat.Props |= scene.PropTexture
		if mat.TexMask[0] == 0 && mat.TexMask[1] == 0 {
			mat.TexMask[0] = int32(mat.Texture.Width - 1)
			mat.TexMask[1] = int32(mat.Texture.Height - 1)
		}
	}
}
