// Package collision detects and resolves overlap between rigid bodies.
//
// Detection runs an exhaustive pairwise broad phase followed by a
// shape-pair narrow phase: circle-circle distance test, circle-box via
// the clamped closest point in the box frame, and box-box via the
// Separating Axis Theorem over the four face normals.
//
// Resolution separates each pair positionally (with slop and a bias
// factor bounding the per-step correction) and applies a restitution
// impulse plus Coulomb friction at the contact point. Pinned bodies
// contribute zero inverse mass and inertia throughout, so they act as
// immovable obstacles.
package collision
