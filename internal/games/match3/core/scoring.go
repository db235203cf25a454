package core

// Scoring converts resolved matches into points.
type Scoring struct {
	PerTile         int // Points for each tile in a match
	ComboMultiplier int // Extra multiple of the base score for each combo step past the first
}

// DefaultScoring returns the scoring used when none is configured.
func DefaultScoring() Scoring {
	return Scoring{
		PerTile:         10,
		ComboMultiplier: 1,
	}
}

// Delta returns the points for a match of the given size resolved in combo pass combo (1-based).
//
//	delta = size * PerTile * (1 + (combo-1) * ComboMultiplier)
func (s Scoring) Delta(size, combo int) int {
	if combo < 1 {
		combo = 1
	}
	return size * s.PerTile * (1 + (combo-1)*s.ComboMultiplier)
}
