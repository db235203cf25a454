// Package config provides YAML-based configuration loading and
// difficulty presets for the match-3 game.
package config

import "fmt"

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board     BoardConfig     `yaml:"board"`
	Tiles     TilesConfig     `yaml:"tiles"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Animation AnimationConfig `yaml:"animation"`
	Variants  []VariantConfig `yaml:"variants"`
}

// BoardConfig defines the default board geometry.
type BoardConfig struct {
	Size         int     `yaml:"size"`
	TileDistance float64 `yaml:"tile_distance"` // World-space spacing between tiles
}

// TilesConfig lists the tile ids available to variants.
type TilesConfig struct {
	Types []string `yaml:"types"`
}

// ScoringConfig defines how matches are converted into points.
type ScoringConfig struct {
	PerTile         int `yaml:"per_tile"`
	ComboMultiplier int `yaml:"combo_multiplier"`
}

// AnimationConfig defines presentation pacing in simulation ticks.
type AnimationConfig struct {
	SwapTicks  int `yaml:"swap_ticks"`
	PassTicks  int `yaml:"pass_ticks"`
	PopupTicks int `yaml:"popup_ticks"`
}

// VariantConfig describes a playable board variant.
type VariantConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Size        int    `yaml:"size"`
	TileTypes   int    `yaml:"tile_types"` // Number of ids taken from Tiles.Types
}

// minTileTypes mirrors the engine's lower bound so bad files fail at load time.
const minTileTypes = 3

// ValidationError contains details about a configuration problem.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: [%s] %s", e.Code, e.Message)
}

// Validate checks the configuration for values the engine would reject.
func (c Match3Config) Validate() error {
	if c.Board.Size < 1 {
		return ValidationError{Code: "INVALID_SIZE", Message: fmt.Sprintf("board size %d", c.Board.Size)}
	}
	if c.Board.TileDistance <= 0 {
		return ValidationError{Code: "INVALID_DISTANCE", Message: fmt.Sprintf("tile distance %v", c.Board.TileDistance)}
	}

	seen := make(map[string]bool, len(c.Tiles.Types))
	for _, id := range c.Tiles.Types {
		if id == "" {
			return ValidationError{Code: "EMPTY_TYPE", Message: "tile id is empty"}
		}
		if seen[id] {
			return ValidationError{Code: "DUPLICATE_TYPE", Message: fmt.Sprintf("tile id %q listed twice", id)}
		}
		seen[id] = true
	}
	if len(c.Tiles.Types) < minTileTypes {
		return ValidationError{
			Code:    "TOO_FEW_TYPES",
			Message: fmt.Sprintf("%d tile types, need at least %d", len(c.Tiles.Types), minTileTypes),
		}
	}

	if c.Scoring.PerTile < 0 || c.Scoring.ComboMultiplier < 0 {
		return ValidationError{Code: "INVALID_SCORING", Message: "scoring values must not be negative"}
	}
	if c.Animation.SwapTicks < 0 || c.Animation.PassTicks < 0 || c.Animation.PopupTicks < 0 {
		return ValidationError{Code: "INVALID_ANIMATION", Message: "animation ticks must not be negative"}
	}

	ids := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		if v.ID == "" {
			return ValidationError{Code: "EMPTY_VARIANT", Message: "variant id is empty"}
		}
		if ids[v.ID] {
			return ValidationError{Code: "DUPLICATE_VARIANT", Message: fmt.Sprintf("variant %q listed twice", v.ID)}
		}
		ids[v.ID] = true
		if v.Size < 1 {
			return ValidationError{Code: "INVALID_SIZE", Message: fmt.Sprintf("variant %q: board size %d", v.ID, v.Size)}
		}
		if v.TileTypes < minTileTypes || v.TileTypes > len(c.Tiles.Types) {
			return ValidationError{
				Code: "INVALID_VARIANT_TYPES",
				Message: fmt.Sprintf("variant %q: %d tile types, want %d..%d",
					v.ID, v.TileTypes, minTileTypes, len(c.Tiles.Types)),
			}
		}
	}

	return nil
}

// Variant returns the variant with the given id.
func (c Match3Config) Variant(id string) (VariantConfig, bool) {
	for _, v := range c.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return VariantConfig{}, false
}

// TileTypesFor returns the tile ids a variant plays with.
func (c Match3Config) TileTypesFor(v VariantConfig) []string {
	n := min(max(v.TileTypes, 0), len(c.Tiles.Types))
	out := make([]string, n)
	copy(out, c.Tiles.Types[:n])
	return out
}
