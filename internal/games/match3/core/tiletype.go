package core

import (
	"fmt"
	"strings"
)

// MinTileTypes is the smallest registry that can always build a stable board.
// Refill excludes at most two types (one from the left pair, one from the up pair),
// so a third type is always left to choose from.
const MinTileTypes = 3

// TileType identifies a kind of tile. Two tiles match when their types are equal.
type TileType string

// NoTile marks a vacated cell while a gravity pass is in progress.
const NoTile TileType = ""

// SameType reports whether two cells hold the same kind of tile.
// Vacated cells never match anything, including each other.
func SameType(a, b TileType) bool {
	return a != NoTile && a == b
}

// Registry is the finite set of tile types in play for a game.
// Order is preserved so that seeded random choices are reproducible.
type Registry struct {
	types []TileType
	index map[TileType]int
}

// NewRegistry creates a registry from a list of tile ids.
// Returns ErrEmptyRegistry when fewer than MinTileTypes distinct ids are given.
func NewRegistry(ids ...string) (*Registry, error) {
	r := &Registry{
		types: make([]TileType, 0, len(ids)),
		index: make(map[TileType]int, len(ids)),
	}

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("match3: tile id must not be empty: %w", ErrEmptyRegistry)
		}
		t := TileType(id)
		if _, dup := r.index[t]; dup {
			return nil, fmt.Errorf("match3: duplicate tile id %q", id)
		}
		r.index[t] = len(r.types)
		r.types = append(r.types, t)
	}

	if len(r.types) < MinTileTypes {
		return nil, fmt.Errorf("match3: %d tile types, need at least %d: %w",
			len(r.types), MinTileTypes, ErrEmptyRegistry)
	}

	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. Intended for tests and defaults.
func MustRegistry(ids ...string) *Registry {
	r, err := NewRegistry(ids...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of tile types.
func (r *Registry) Len() int {
	return len(r.types)
}

// Types returns a copy of the tile types in registration order.
func (r *Registry) Types() []TileType {
	out := make([]TileType, len(r.types))
	copy(out, r.types)
	return out
}

// Contains returns true if t is registered.
func (r *Registry) Contains(t TileType) bool {
	_, ok := r.index[t]
	return ok
}

// Index returns the registration index of t, or -1 if unknown.
// The presentation layer uses it to pick a glyph and colour.
func (r *Registry) Index(t TileType) int {
	if i, ok := r.index[t]; ok {
		return i
	}
	return -1
}

// Without returns the registered types not present in excluded, in registration order.
func (r *Registry) Without(excluded map[TileType]bool) []TileType {
	out := make([]TileType, 0, len(r.types))
	for _, t := range r.types {
		if !excluded[t] {
			out = append(out, t)
		}
	}
	return out
}
