package scheduler

import (
	"github.com/vecrt/rt/context"
	"github.com/vecrt/rt/internal/rtlog"
	"github.com/vecrt/rt/internal/wide"
	"github.com/vecrt/rt/scene"
	"github.com/vecrt/rt/solver"
)

// lanePtr is where a buffered lane's result needs to be scattered back
// to once its slot flushes.
type lanePtr struct {
	ctx  *context.Context
	lane int
}

type key struct {
	surf *scene.Surface
	side context.Side
}

// slot is one (surface, side)'s pending buffer: a scratch Context
// reused across flushes, filled up to width lanes before or at frame
// end.
type slot struct {
	mat  *scene.Material
	buf  *context.Context
	ptrs []lanePtr
	fill int
}

// Scheduler batches solver.Intersect hits by (surface, side) and
// flushes each batch through shade once it reaches full width, or on
// EndFrame for whatever remains (spec.md §4.H). The original's fixed
// pool of scene-surface-count × max-depth × thread-count × 2 sides
// buffers is realized here as a lazily populated map keyed by surface
// pointer and side: Go gives no static upper bound on distinct
// surfaces visited per frame without walking the scene list up front,
// and a map amortizes to the same steady-state allocation once every
// surface in the list has been hit once.
type Scheduler struct {
	width  int
	consts *wide.Constants
	shade  solver.ShadeFunc
	slots  map[key]*slot

	// FastPath opts into spec.md §4.H's fast path: when an incoming
	// batch already arrives at full mask and repeats the (surface, side)
	// of the last flush, it's shaded directly in place instead of being
	// sliced into a slot buffer first.
	FastPath bool
	lastKey  key
	lastSet  bool
}

// New builds a Scheduler that flushes full buffers through shade,
// typically a Dispatcher's own Shade method.
func New(width int, consts *wide.Constants, shade solver.ShadeFunc) *Scheduler {
	return &Scheduler{width: width, consts: consts, shade: shade, slots: make(map[key]*slot)}
}

// Feed is a solver.ShadeFunc: pass it to solver.Intersect in place of
// a Dispatcher's Shade method to opt into buffered shading.
func (s *Scheduler) Feed(ctx *context.Context, consts *wide.Constants, surf *scene.Surface, side context.Side, mat *scene.Material, mask wide.Mask) {
	k := key{surf: surf, side: side}

	if s.FastPath && mask.All() && s.lastSet && s.lastKey == k {
		rtlog.Logger().Debug("scheduler fast path", "surface", k.surf, "side", k.side)
		s.shade(ctx, consts, surf, side, mat, mask)
		s.lastKey = k
		return
	}

	sl, ok := s.slots[k]
	if !ok {
		sl = &slot{mat: mat, buf: context.New(s.width), ptrs: make([]lanePtr, s.width)}
		s.slots[k] = sl
	}

	for lane := 0; lane < ctx.Width; lane++ {
		if mask[lane] == wide.MaskFalse {
			continue
		}
		copyLane(sl.buf, sl.fill, ctx, lane)
		sl.ptrs[sl.fill] = lanePtr{ctx: ctx, lane: lane}
		sl.fill++
		if sl.fill == s.width {
			s.flush(k, sl)
		}
	}
}

// EndFrame flushes every slot with pending lanes, however short of a
// full buffer it is (spec.md §4.H "end-of-frame flush").
func (s *Scheduler) EndFrame() {
	for k, sl := range s.slots {
		if sl.fill > 0 {
			s.flush(k, sl)
		}
	}
}

func (s *Scheduler) flush(k key, sl *slot) {
	mask := wide.NewMask(s.width)
	for i := 0; i < sl.fill; i++ {
		mask[i] = wide.MaskTrue
	}

	rtlog.Logger().Debug("scheduler flush", "surface", k.surf, "side", k.side, "lanes", sl.fill)
	s.shade(sl.buf, s.consts, k.surf, k.side, sl.mat, mask)

	for i := 0; i < sl.fill; i++ {
		p := sl.ptrs[i]
		p.ctx.ColR[p.lane] = sl.buf.ColR[i]
		p.ctx.ColG[p.lane] = sl.buf.ColG[i]
		p.ctx.ColB[p.lane] = sl.buf.ColB[i]
	}

	// No need to clear sl.buf: the next round of Feed calls overwrites
	// lanes [0, fill) before they're read again, and shade only ever
	// touches lanes covered by mask.
	sl.fill = 0

	s.lastKey = k
	s.lastSet = true
}

// copyLane moves the lane-local state shader.Shade and a Dispatcher's
// recursion hooks need from a solver batch's lane into a scheduler
// buffer's lane.
func copyLane(dst *context.Context, dstLane int, src *context.Context, srcLane int) {
	dst.OrgX[dstLane], dst.OrgY[dstLane], dst.OrgZ[dstLane] = src.OrgX[srcLane], src.OrgY[srcLane], src.OrgZ[srcLane]
	dst.RayX[dstLane], dst.RayY[dstLane], dst.RayZ[dstLane] = src.RayX[srcLane], src.RayY[srcLane], src.RayZ[srcLane]
	dst.HitX[dstLane], dst.HitY[dstLane], dst.HitZ[dstLane] = src.HitX[srcLane], src.HitY[srcLane], src.HitZ[srcLane]
	dst.NrmX[dstLane], dst.NrmY[dstLane], dst.NrmZ[dstLane] = src.NrmX[srcLane], src.NrmY[srcLane], src.NrmZ[srcLane]
	// NrmI/J/K double as the self-hit shortcut's cached local-space hit
	// point; a recursion cast off the buffered row needs it seeded onto
	// the row itself, not just the original batch's context.
	dst.NrmI[dstLane], dst.NrmJ[dstLane], dst.NrmK[dstLane] = src.NrmI[srcLane], src.NrmJ[srcLane], src.NrmK[srcLane]
	dst.MulR[dstLane], dst.MulG[dstLane], dst.MulB[dstLane] = src.MulR[srcLane], src.MulG[srcLane], src.MulB[srcLane]
	dst.ColR[dstLane], dst.ColG[dstLane], dst.ColB[dstLane] = src.ColR[srcLane], src.ColG[srcLane], src.ColB[srcLane]
	dst.TVal[dstLane] = src.TVal[srcLane]
	dst.OrgSurf[dstLane], dst.OrgSide[dstLane] = src.OrgSurf[srcLane], src.OrgSide[srcLane]
	dst.SrfSurf[dstLane], dst.SrfSide[dstLane] = src.SrfSurf[srcLane], src.SrfSide[srcLane]
}
