package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Size:         8,
			TileDistance: 1.0,
		},
		Tiles: TilesConfig{
			Types: []string{"red", "green", "blue", "yellow", "purple", "cyan", "orange"},
		},
		Scoring: ScoringConfig{
			PerTile:         10,
			ComboMultiplier: 1,
		},
		Animation: AnimationConfig{
			SwapTicks:  4,
			PassTicks:  8,
			PopupTicks: 30,
		},
		Variants: []VariantConfig{
			{ID: "classic", Name: "Classic", Description: "8x8 board, six tile types", Size: 8, TileTypes: 6},
			{ID: "mini", Name: "Mini", Description: "4x4 board, four tile types", Size: 4, TileTypes: 4},
			{ID: "grand", Name: "Grand", Description: "16x16 board, seven tile types", Size: 16, TileTypes: 7},
		},
	}
}
