package core

// runLength counts equal tiles through p along axis, p included.
func runLength(b *Board, p Position, axis Axis) int {
	t := b.Get(p)
	if t == NoTile {
		return 0
	}
	dx, dy := axis.step()
	n := 1
	for q := p.Add(-dx, -dy); SameType(b.Get(q), t); q = q.Add(-dx, -dy) {
		n++
	}
	for q := p.Add(dx, dy); SameType(b.Get(q), t); q = q.Add(dx, dy) {
		n++
	}
	return n
}

// RunAt returns true if p is part of a run on either axis.
func RunAt(b *Board, p Position) bool {
	return runLength(b, p, Horizontal) >= MinRun || runLength(b, p, Vertical) >= MinRun
}

// Matches returns true if swapping s on b would create at least one run.
// The board is restored before returning.
func Matches(b *Board, s Swap) bool {
	if !b.InBounds(s.A) || !b.InBounds(s.B) || !Adjacent(s.A, s.B) {
		return false
	}
	if SameType(b.Get(s.A), b.Get(s.B)) {
		return false
	}
	b.Swap(s.A, s.B)
	ok := RunAt(b, s.A) || RunAt(b, s.B)
	b.Swap(s.A, s.B)
	return ok
}

// FindMoves returns every swap that would produce a match, scanning row-major
// and trying the right then the down neighbour of each cell.
func FindMoves(b *Board) []Swap {
	var moves []Swap
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			p := P(x, y)
			for _, q := range [2]Position{p.Add(1, 0), p.Add(0, 1)} {
				s := Swap{A: p, B: q}
				if Matches(b, s) {
					moves = append(moves, s)
				}
			}
		}
	}
	return moves
}

// HasMove returns true if at least one swap would produce a match.
func HasMove(b *Board) bool {
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			p := P(x, y)
			if Matches(b, Swap{A: p, B: p.Add(1, 0)}) || Matches(b, Swap{A: p, B: p.Add(0, 1)}) {
				return true
			}
		}
	}
	return false
}
