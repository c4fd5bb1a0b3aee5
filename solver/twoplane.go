package solver

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
)

// twoPlaneCoeffs builds the same expansion as quadricCoeffs, but the
// discriminant is forced non-negative downstream (see extractRoots):
// a two-plane-product surface (e.g. a cone's two nappes split at the
// apex) is constructed so its quadratic always has two real roots, and
// floating point error alone can occasionally drive the discriminant
// fractionally below zero right at the apex.
func twoPlaneCoeffs(ctx *context.Context, surf *scene.Surface) (a, b, c wide.F32) {
	return quadricCoeffs(ctx, surf)
}
