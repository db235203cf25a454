// Package core provides the rules engine for the match-3 puzzle.
// This package is UI-agnostic and deterministic for a given seed.
package core

import "fmt"

// Position is a cell on the board.
// X is the column, Y is the row; row 0 is the top of the board.
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns a new Position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Adjacent reports whether a and b share an edge.
func Adjacent(a, b Position) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Axis is the direction a run is laid out along.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the string representation of an axis.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// step returns the unit offset for walking along the axis.
func (a Axis) step() (dx, dy int) {
	if a == Vertical {
		return 0, 1
	}
	return 1, 0
}

// Swap is a pair of adjacent positions whose tiles get exchanged.
type Swap struct {
	A Position
	B Position
}

// String returns a string representation of the swap.
func (s Swap) String() string {
	return fmt.Sprintf("%v<->%v", s.A, s.B)
}
