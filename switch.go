package rt

import (
	"github.com/vecrt/rt/internal/rtlog"
	"github.com/vecrt/rt/internal/wide"
)

// Switch negotiates the SIMD lane width a Driver should render with,
// given a caller's requested width: it reports the widest width at
// most requested that the running CPU actually supports (spec.md §6
// "switch(requested)"). The result is a lane count, not an antialiasing
// level — callers building a frame.Info still derive FSAA themselves
// (FSAA = log2 of the chosen width) since Info expresses width that way.
func Switch(requested int) int {
	chosen := wide.NegotiateWidth(requested)
	rtlog.Logger().Info("simd width chosen", "requested", requested, "chosen", chosen)
	return chosen
}
