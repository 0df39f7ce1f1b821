package mines

import "errors"

var (
	// ErrInvalidConfig is returned when grid or mine parameters cannot
	// describe a playable board.
	ErrInvalidConfig = errors.New("invalid game config")
	// ErrOutOfBounds reports a cell coordinate outside the grid. It is a
	// caller defect, not a game event.
	ErrOutOfBounds = errors.New("cell out of bounds")
)
