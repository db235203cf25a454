package core

import "sort"

// Move is a surviving tile sliding down its column to fill a gap.
type Move struct {
	From Position
	To   Position
	Type TileType
}

// Spawn is a new tile entering a column from above the board.
// Origin is the virtual slot it falls from; Origin.Y is negative.
type Spawn struct {
	At     Position
	Origin Position
	Type   TileType
}

// GravityResult lists the tile movements of one gravity pass for the presentation layer.
type GravityResult struct {
	Moves  []Move  // Per column left to right, bottom to top
	Spawns []Spawn // Row-major, the order they were assigned types
}

// ResolveGravity removes the cleared cells, lets the tiles above each gap fall,
// and refills the vacated slots at the top of every affected column.
// The board is mutated in place; column height is conserved.
// Duplicate positions in cleared are cleared once.
func ResolveGravity(b *Board, cleared []Position, refill Refiller) GravityResult {
	var result GravityResult

	columns := make(map[int]bool)
	for _, p := range cleared {
		if !b.InBounds(p) {
			continue
		}
		b.Set(p, NoTile)
		columns[p.X] = true
	}

	cols := make([]int, 0, len(columns))
	for c := range columns {
		cols = append(cols, c)
	}
	sort.Ints(cols)

	vacated := make(map[int]int, len(cols)) // column -> number of empty slots at the top
	for _, c := range cols {
		moves, empty := compactColumn(b, c)
		result.Moves = append(result.Moves, moves...)
		vacated[c] = empty
	}

	// Refill row-major so every cell's left and up neighbours are already final.
	for y := 0; y < b.Size(); y++ {
		for _, c := range cols {
			empty := vacated[c]
			if y >= empty {
				continue
			}
			at := P(c, y)
			t := refill.ChooseType(b, at)
			b.Set(at, t)
			result.Spawns = append(result.Spawns, Spawn{
				At:     at,
				Origin: P(c, y-empty),
				Type:   t,
			})
		}
	}

	return result
}

// compactColumn walks a column bottom to top, sliding each tile down past the
// vacant cells below it. Returns the moves made and the number of vacant
// cells left at the top.
func compactColumn(b *Board, col int) ([]Move, int) {
	var moves []Move
	write := b.Size() - 1

	for read := b.Size() - 1; read >= 0; read-- {
		from := P(col, read)
		t := b.Get(from)
		if t == NoTile {
			continue
		}
		if read != write {
			to := P(col, write)
			b.Set(to, t)
			b.Set(from, NoTile)
			moves = append(moves, Move{From: from, To: to, Type: t})
		}
		write--
	}

	return moves, write + 1
}
