package core

// MinRun is the shortest run of equal tiles that counts as a match.
const MinRun = 3

// Match is a maximal run of at least MinRun equal tiles along one axis.
type Match struct {
	Axis      Axis
	Type      TileType
	Positions []Position // Ordered left-to-right or top-to-bottom
}

// Size returns the number of tiles in the run. Used for scoring.
func (m Match) Size() int {
	return len(m.Positions)
}

// Pivot returns the middle tile of the run: the element at 1-based index ceil(len/2).
// The presentation layer anchors score feedback there.
func (m Match) Pivot() Position {
	if len(m.Positions) == 0 {
		return Position{}
	}
	return m.Positions[(len(m.Positions)-1)/2]
}

// PivotWorld returns the world-space point of the pivot on board b.
func (m Match) PivotWorld(b *Board) (x, y float64) {
	return b.ToWorld(m.Pivot())
}

// Contains returns true if the run covers p.
func (m Match) Contains(p Position) bool {
	for _, q := range m.Positions {
		if q == p {
			return true
		}
	}
	return false
}

// scanLine walks the line starting at start along axis and returns every maximal run.
func scanLine(b *Board, start Position, axis Axis) []Match {
	dx, dy := axis.step()
	var matches []Match

	runStart := start
	runLen := 0
	var runType TileType

	flush := func() {
		if runLen >= MinRun {
			positions := make([]Position, runLen)
			for i := range positions {
				positions[i] = runStart.Add(dx*i, dy*i)
			}
			matches = append(matches, Match{Axis: axis, Type: runType, Positions: positions})
		}
	}

	for p := start; b.InBounds(p); p = p.Add(dx, dy) {
		t := b.Get(p)
		if runLen > 0 && SameType(t, runType) {
			runLen++
			continue
		}
		flush()
		runStart = p
		runType = t
		runLen = 0
		if t != NoTile {
			runLen = 1
		}
	}
	flush()

	return matches
}

// RowMatches returns every maximal run in a row, left to right.
func RowMatches(b *Board, row int) []Match {
	if row < 0 || row >= b.Size() {
		return nil
	}
	return scanLine(b, P(0, row), Horizontal)
}

// ColumnMatches returns every maximal run in a column, top to bottom.
func ColumnMatches(b *Board, col int) []Match {
	if col < 0 || col >= b.Size() {
		return nil
	}
	return scanLine(b, P(col, 0), Vertical)
}

// ScanRow returns the first maximal run in a row.
func ScanRow(b *Board, row int) (Match, bool) {
	matches := RowMatches(b, row)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// ScanColumn returns the first maximal run in a column.
func ScanColumn(b *Board, col int) (Match, bool) {
	matches := ColumnMatches(b, col)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// ScanBoard returns every run on the board: all rows top to bottom, then all columns
// left to right. Runs crossing at a shared cell are both reported.
func ScanBoard(b *Board) []Match {
	var matches []Match
	for row := 0; row < b.Size(); row++ {
		matches = append(matches, RowMatches(b, row)...)
	}
	for col := 0; col < b.Size(); col++ {
		matches = append(matches, ColumnMatches(b, col)...)
	}
	return matches
}

// Stable returns true if the board holds no run.
func Stable(b *Board) bool {
	return len(ScanBoard(b)) == 0
}

// clearedSet returns the union of all positions covered by matches, in first-seen order.
// A cell shared by two runs appears once.
func clearedSet(matches []Match) []Position {
	seen := make(map[Position]bool)
	var out []Position
	for _, m := range matches {
		for _, p := range m.Positions {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
