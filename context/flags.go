package context

import "github.com/vecrt/rt/scene"

// Side selects the outer (entry) or inner (exit) root/material of a
// closed quadric (spec.md glossary).
type Side int

const (
	SideOuter Side = 0
	SideInner Side = 1
)

// Pass tags the kind of secondary-ray bounce in flight, matching the
// original's packed context flags (core/tracer/tracer.h PASS bits).
type Pass int

const (
	PassBack   Pass = 0 // primary ray / reflection-and-back-facing pass
	PassThru   Pass = 2 // transmission/refraction
	PassShadow Pass = 4 // shadow test
)

// Tag is the small integer a recursion frame stores to say where
// control resumes in the issuing shader branch after a secondary ray
// returns (spec.md §4.G step 2 "LOCAL.ptr").
type Tag int

const (
	TagNone Tag = iota
	TagShadow
	TagTransmit
	TagReflect
	TagPathBounce
)

// Param packs the flags and pointers the original keeps in
// ctx_PARAM: the originating side, the bounce pass, the property bits
// fetched on entry, and the object/list pointers that contributed this
// branch.
type Param struct {
	Side    Side
	Pass    Pass
	Props   scene.Prop
	ObjPtr  *scene.Surface
	ListPtr any // *scene.Light for shadow, *scene.Material otherwise
}

// Local packs the fields the original keeps in ctx_LOCAL: where to
// resume after a pushed recursion returns.
type Local struct {
	ReturnTag Tag
}
