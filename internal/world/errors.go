package world

import "errors"

// Domain errors for world operations.
var (
	// ErrInvalidParameter indicates a creation or setter argument outside
	// its valid range. The world is left unchanged.
	ErrInvalidParameter = errors.New("world: invalid parameter")

	// ErrNotFound indicates an operation referencing an unknown body or
	// constraint id.
	ErrNotFound = errors.New("world: not found")
)
