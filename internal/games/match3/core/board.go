package core

import "strings"

// Board is the square grid of tiles.
// Cells are stored in row-major order: index = y*size + x.
type Board struct {
	size         int
	tileDistance float64
	cells        []TileType
}

// NewBoard creates a board with every cell vacant.
// Callers fill it with FillBoard or Set before play starts.
func NewBoard(size int, tileDistance float64) *Board {
	if size < 0 {
		size = 0
	}
	return &Board{
		size:         size,
		tileDistance: tileDistance,
		cells:        make([]TileType, size*size),
	}
}

// BoardFromRows creates a board from rows of tile ids, top row first.
// The board side is the number of rows; short rows leave vacant cells.
func BoardFromRows(tileDistance float64, rows ...[]TileType) *Board {
	b := NewBoard(len(rows), tileDistance)
	for y, row := range rows {
		for x, t := range row {
			b.Set(P(x, y), t)
		}
	}
	return b
}

// index converts a position to a flat array index.
func (b *Board) index(p Position) int {
	return p.Y*b.size + p.X
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

// TileDistance returns the world-space distance between neighbouring tiles.
func (b *Board) TileDistance() float64 {
	return b.tileDistance
}

// InBounds returns true if the position is on the board.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.size && p.Y >= 0 && p.Y < b.size
}

// Get returns the tile type at p, or NoTile if p is off the board.
func (b *Board) Get(p Position) TileType {
	if !b.InBounds(p) {
		return NoTile
	}
	return b.cells[b.index(p)]
}

// Set assigns a tile type to p. Off-board positions are ignored.
func (b *Board) Set(p Position, t TileType) {
	if b.InBounds(p) {
		b.cells[b.index(p)] = t
	}
}

// Swap exchanges the tiles at two positions.
// Returns false without changing anything if either position is off the board.
func (b *Board) Swap(a, c Position) bool {
	if !b.InBounds(a) || !b.InBounds(c) {
		return false
	}
	ia, ic := b.index(a), b.index(c)
	b.cells[ia], b.cells[ic] = b.cells[ic], b.cells[ia]
	return true
}

// neighborOffsets lists left, right, up, down.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors returns the on-board positions sharing an edge with p,
// in left, right, up, down order.
func (b *Board) Neighbors(p Position) []Position {
	out := make([]Position, 0, 4)
	for _, off := range neighborOffsets {
		n := p.Add(off[0], off[1])
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// ToWorld maps a board position to presentation space.
// Y is inverted so row 0 is visually topmost.
func (b *Board) ToWorld(p Position) (x, y float64) {
	return float64(p.X) * b.tileDistance, -float64(p.Y) * b.tileDistance
}

// ColumnCount returns the number of occupied cells in a column.
func (b *Board) ColumnCount(col int) int {
	count := 0
	for y := 0; y < b.size; y++ {
		if b.Get(P(col, y)) != NoTile {
			count++
		}
	}
	return count
}

// Full returns true if no cell is vacant.
func (b *Board) Full() bool {
	for _, t := range b.cells {
		if t == NoTile {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]TileType, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:         b.size,
		tileDistance: b.tileDistance,
		cells:        cells,
	}
}

// Rows returns a copy of the board contents, top row first.
func (b *Board) Rows() [][]TileType {
	rows := make([][]TileType, b.size)
	for y := range rows {
		rows[y] = make([]TileType, b.size)
		copy(rows[y], b.cells[y*b.size:(y+1)*b.size])
	}
	return rows
}

// Equal returns true if two boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, t := range b.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board one row per line with tile ids separated by spaces.
// Vacant cells are shown as ".".
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			t := b.Get(P(x, y))
			if t == NoTile {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
