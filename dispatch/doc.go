// Package dispatch wires package solver and package shader together
// and implements the recursion protocol between them: a shaded hit
// that needs a shadow test, a transmitted ray, or a reflected ray
// pushes a new context.Arena frame, runs another solver.Intersect pass
// seeded from the parent's hit point and new direction, and returns the
// result to the shader that asked for it (spec.md §4.G).
//
// Recursion is realized as genuine Go function calls over the arena's
// depth counter rather than a goto-based state machine: the arena's
// Push already refuses to go past its configured max depth, which
// stands in for the original's hard recursion terminator.
package dispatch
