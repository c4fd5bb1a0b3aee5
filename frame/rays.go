package frame

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/scene"
)

// seedPrimaryRays fills ctx's origin/direction/index lanes for the
// pixel at (row, col), one lane per entry of horOffsets/verOffsets
// (spec.md §4.J "primary-ray generation"). Caller must have already
// reset ctx for this frame (Reset already sets WMask true in every
// lane, so this only fills geometry).
func seedPrimaryRays(ctx *context.Context, cam *scene.Camera, row, col int, horOffsets, verOffsets []float32) {
	index := int32(row*cam.RowStep + col)
	for i := 0; i < ctx.Width; i++ {
		hor := float32(col) + horOffsets[i]
		ver := float32(row) + verOffsets[i]

		ctx.OrgX[i], ctx.OrgY[i], ctx.OrgZ[i] = cam.Origin[0], cam.Origin[1], cam.Origin[2]
		ctx.RayX[i] = cam.Dir[0] + hor*cam.Hor[0] + ver*cam.Ver[0]
		ctx.RayY[i] = cam.Dir[1] + hor*cam.Hor[1] + ver*cam.Ver[1]
		ctx.RayZ[i] = cam.Dir[2] + hor*cam.Hor[2] + ver*cam.Ver[2]
		ctx.Index[i] = index
	}
}
