package scene

// Kind tags a Surface's primitive type. Fixed at construction time
// (spec.md §3 invariant): a Surface is never mutated to a different
// Kind after it is built.
type Kind int

const (
	// KindPlane is t = -DFF_k / RAY_k along the surface's normal axis.
	KindPlane Kind = iota
	// KindQuadric is a general quadric: a, b, c from SCI/SCJ/SCI_W.
	KindQuadric
	// KindTwoPlane is the sign-sensitive two-plane-product quadric
	// variant whose discriminant is forced non-negative.
	KindTwoPlane
	// KindBoundingArray is a virtual surface wrapping a union-bounding
	// quadric for a contiguous run of children in a Node list.
	KindBoundingArray
	// KindTransform is a virtual "trnode" surface applying a shared
	// transform to a contiguous run of sibling children.
	KindTransform
)

// AxisClip is a single axis's min/max clip range with independent
// enable flags, per spec.md §3 ("min ≤ max on each enabled axis").
type AxisClip struct {
	Min, Max               float32
	MinEnabled, MaxEnabled bool
}

// AxisMap maps local I, J, K axes to world X, Y, Z axis indices (0,1,2).
// Must be a bijection on {0,1,2} -> {0,1,2}; Validate checks this.
type AxisMap [3]int

// AxisSign carries the handedness sign (+1/-1) applied per local axis
// after permutation.
type AxisSign [3]float32

// IsIdentity reports whether m applies no remapping at all: either the
// explicit {0,1,2} identity, or Go's zero value for a Surface that
// never set AxisMap, which is meant to behave the same way rather than
// fail the bijection check in Validate.
func (m AxisMap) IsIdentity() bool {
	return m == (AxisMap{}) || m == (AxisMap{0, 1, 2})
}

// Validate reports whether m is a bijection, per spec.md §3's surface
// invariant. Callers that build surfaces programmatically (rather than
// via a fixture loader) should call this once at construction.
func (m AxisMap) Validate() bool {
	var seen [3]bool
	for _, axis := range m {
		if axis < 0 || axis > 2 || seen[axis] {
			return false
		}
		seen[axis] = true
	}
	return true
}

// Surface is an immutable-per-frame scene primitive: a plane, quadric,
// two-plane quadric, or one of the two virtual list markers (bounding
// array, transform node).
type Surface struct {
	Kind Kind

	Pos Vec3

	// Clip holds per-world-axis min/max clippers, indexed by axis 0=X,
	// 1=Y, 2=Z.
	Clip [3]AxisClip

	AxisMap  AxisMap
	AxisSign AxisSign

	// Transform is nil for an identity-transformed surface. When set,
	// rays and DFF are rotated into local coordinates by its inverse
	// before intersection (spec.md §4.D step 3).
	Transform *Mat3

	// SCI, SCJ, SCIW are the quadric coefficient vectors/scalar:
	// SCI is the diagonal term, SCJ the offset term, SCIW the constant.
	SCI  Vec3
	SCJ  Vec3
	SCIW float32

	// Conic enables the singularity adjustment of spec.md §4.D's
	// clipping sub-engine for near-apex numerical stability.
	Conic bool

	OuterMaterial *Material
	InnerMaterial *Material

	// ClipList is this surface's custom-clip chain (spec.md §4.D).
	ClipList []ClipNode

	// SignBaseOuter/SignBaseInner flip the outward normal per side.
	SignBaseOuter float32
	SignBaseInner float32

	// DEps, TEps are the near-zero-determinant root-disambiguation and
	// tie-break tolerances (spec.md §3, §4.D steps 6-7). TEps scaling by
	// local radius near conic apexes is left as a tunable per spec.md §9.
	DEps float32
	TEps float32

	// self is this surface's own identity, used for the self-hit
	// shortcut (spec.md §4.D step 1): a secondary ray originating from
	// this surface skips the global->local DFF recomputation.
	self *Surface
}

// ID returns the identity token used by the self-hit shortcut: the
// surface's own self pointer when set, otherwise s itself. Two surfaces
// compare equal under this shortcut iff their IDs are the same Go
// pointer; context frames record it as "last originating surface"
// (frames are always shorter-lived than the scene they read from).
func (s *Surface) ID() *Surface {
	if s.self == nil {
		return s
	}
	return s.self
}

// ClipNodeKind tags a custom-clip list entry.
type ClipNodeKind int

const (
	// ClipSurface evaluates a primitive surface's signed distance at
	// the hit point to decide inside/outside.
	ClipSurface ClipNodeKind = iota
	// ClipAccumEnter saves the current clip mask and resets it to the
	// subject surface's default, opening an accumulator scope.
	ClipAccumEnter
	// ClipAccumLeave closes an accumulator scope: ANDs the accumulated
	// mask with the mask saved at the matching ClipAccumEnter.
	ClipAccumLeave
)

// ClipNode is one entry in a Surface's custom-clip list.
type ClipNode struct {
	Kind    ClipNodeKind
	Surface *Surface // valid when Kind == ClipSurface
	Inside  bool     // true: evaluate as a union (OR) participant, false: intersection (AND) participant
}

// Node is one entry in a scene surface list (spec.md §9's tagged-list
// redesign: Enter/Leave/AccumEnter/AccumLeave/TransformGroup/
// BoundingArray collapse here into a Kind-tagged slice element,
// addressed by cursor index rather than a next-pointer chain).
type Node struct {
	Kind NodeKind

	// Surface is the renderable surface for NodeSurface, or the
	// group-bounding quadric for NodeBoundingArray, or nil (the
	// transform is carried by GroupTransform) for NodeTransformGroup.
	Surface *Surface

	// GroupLen is the number of list entries following this one that
	// belong to the group: the trnode's or bounding array's contiguous
	// child run (spec.md §4.E).
	GroupLen int

	// GroupTransform is the shared transform applied to every child of
	// a NodeTransformGroup, and the group's local-space translation
	// origin (trnode position).
	GroupTransform *Mat3
	GroupPos       Vec3
}

// NodeKind tags a scene-list entry.
type NodeKind int

const (
	// NodeSurface is an ordinary renderable surface.
	NodeSurface NodeKind = iota
	// NodeBoundingArray wraps a union-bounding quadric; if every lane of
	// the current batch misses it, the solver skips the next GroupLen
	// entries entirely (spec.md §4.D step 4, §4.E).
	NodeBoundingArray
	// NodeTransformGroup applies GroupTransform/GroupPos to the next
	// GroupLen sibling surfaces, caching the transformed DFF/RAY across
	// them until the group's last element (spec.md §4.D step 2-3, §4.E).
	NodeTransformGroup
)

// List is an ordered scene surface list, consumed in order by the
// solver (spec.md §4.D).
type List []Node
