package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
// Difficulty is the number of tile types in play: fewer types, more matches.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// typeDelta returns how many tile types a preset adds to each variant.
func typeDelta(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return -1
	case DifficultyHard:
		return 1
	default:
		return 0
	}
}

// ApplyMatch3Preset adjusts every variant's tile-type count for a preset,
// keeping it within the engine minimum and the configured tile ids.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	delta := typeDelta(preset)
	if delta == 0 {
		return
	}
	limit := len(cfg.Tiles.Types)
	for i := range cfg.Variants {
		n := cfg.Variants[i].TileTypes + delta
		cfg.Variants[i].TileTypes = min(max(n, minTileTypes), limit)
	}
}
