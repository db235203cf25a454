package core

import "errors"

var (
	// ErrInvalidSwap is returned for positions that are out of bounds or not adjacent.
	// The board is left untouched.
	ErrInvalidSwap = errors.New("invalid swap")

	// ErrPositionLocked is returned when a swap names a position held by an in-flight turn.
	ErrPositionLocked = errors.New("position locked")

	// ErrTurnInFlight is returned when a swap is requested while another turn is resolving.
	// The board is a single resource; the engine rejects rather than queues.
	ErrTurnInFlight = errors.New("turn in flight")

	// ErrNoMatch is returned when a valid swap produced no run and was reverted.
	ErrNoMatch = errors.New("no match")

	// ErrEmptyRegistry is returned when there are too few tile types to build a stable board.
	ErrEmptyRegistry = errors.New("not enough tile types")

	// ErrInvalidSize is returned for a board side smaller than one cell.
	ErrInvalidSize = errors.New("invalid board size")

	// ErrInvalidLayout is returned for an injected board that is not full and stable.
	ErrInvalidLayout = errors.New("invalid layout")
)
