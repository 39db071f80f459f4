package sea

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("sea: position out of bounds")

	// ErrUnknownBoat is returned when a boat id is not in the registry.
	ErrUnknownBoat = errors.New("sea: unknown boat")

	// ErrInvalidSize is returned when a board is created with a dimension below 1.
	ErrInvalidSize = errors.New("sea: invalid board size")
)
