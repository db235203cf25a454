package core

import "math/rand"

// RefillPolicy picks tile types for empty cells without completing a run through
// the cell's already-resolved left and up neighbours.
//
// Only left and up are inspected: cells are resolved in row-major order, so right
// and down are not final yet. Checking them as well can make small registries
// unsatisfiable.
type RefillPolicy struct {
	registry *Registry
	rng      *rand.Rand
}

// NewRefillPolicy creates a refill policy drawing from registry with rng.
func NewRefillPolicy(registry *Registry, rng *rand.Rand) *RefillPolicy {
	return &RefillPolicy{registry: registry, rng: rng}
}

// Registry returns the tile types the policy chooses from.
func (r *RefillPolicy) Registry() *Registry {
	return r.registry
}

// Excluded returns the types that would form a run through p with its two left
// neighbours or its two up neighbours.
func (r *RefillPolicy) Excluded(b *Board, p Position) map[TileType]bool {
	excluded := make(map[TileType]bool, 2)

	left1, left2 := b.Get(p.Add(-1, 0)), b.Get(p.Add(-2, 0))
	if SameType(left1, left2) {
		excluded[left1] = true
	}

	up1, up2 := b.Get(p.Add(0, -1)), b.Get(p.Add(0, -2))
	if SameType(up1, up2) {
		excluded[up1] = true
	}

	return excluded
}

// ChooseType returns a uniformly random type for p among those not excluded.
// If every type is excluded it falls back to the full registry.
func (r *RefillPolicy) ChooseType(b *Board, p Position) TileType {
	candidates := r.registry.Without(r.Excluded(b, p))
	if len(candidates) == 0 {
		candidates = r.registry.types
	}
	return candidates[r.rng.Intn(len(candidates))]
}

// FillBoard assigns a type to every cell in row-major order.
// With at least MinTileTypes types the result holds no run.
func (r *RefillPolicy) FillBoard(b *Board) {
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			p := P(x, y)
			b.Set(p, r.ChooseType(b, p))
		}
	}
}

// Refiller chooses the type of a tile entering an empty cell.
// RefillPolicy is the production implementation; tests may script their own.
type Refiller interface {
	ChooseType(b *Board, p Position) TileType
}

var _ Refiller = (*RefillPolicy)(nil)
