// Package body implements rigid-body state and integration for the two
// supported shapes, circles and oriented boxes.
//
// A [Body] accumulates forces and torques between steps and consumes them
// in [Body.Integrate], which advances the state with semi-implicit
// (symplectic) Euler. Pinned bodies carry zero inverse mass and inverse
// inertia and act as immovable anchors and obstacles for the constraint
// and collision solvers.
package body
