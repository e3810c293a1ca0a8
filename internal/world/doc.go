// Package world owns bodies and constraints and drives the simulation.
//
// The step pipeline is fixed and deterministic: apply gravity and
// accumulated forces and integrate (semi-implicit Euler), run the
// iterative rod solver, then detect and resolve collisions, all in
// insertion order. Two worlds built from identical calls and stepped
// identically produce identical trajectories.
//
// Worlds are independent values, not process-global state; build as many
// as needed for parallel rollouts or tests.
package world
