// Package context implements the ray batch / context stack: the
// per-thread working memory a solver+shader pass reads and writes for
// one lane-packed batch of rays, plus the LIFO recursion-frame stack
// that backs secondary rays (spec.md §4.C).
//
// The original backend lays frames out as a single aligned byte arena
// and advances/retreats a raw pointer by a fixed stride per push/pop.
// This port keeps the same discipline — a preallocated, fixed-depth
// stack of frames, push/pop by incrementing/decrementing a depth
// counter, stale state cleared on entry — without the byte-stride
// arithmetic, which Go's slice-of-struct indexing makes unnecessary
// (spec.md §9, "manual register allocation": keep the liveness
// invariant, not the physical layout).
package context
