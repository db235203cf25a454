package match3

import m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
	StateFailed      GameStateType = "failed"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Board     [][]m3.TileType
	Score     int
	Swaps     int
	BestCombo int
	Cursor    m3.Position
	Selected  *m3.Position // nil when nothing is picked
	Phase     string
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		Variant: g.variantID,
		Cursor:  g.cursor,
		Phase:   g.phase.String(),
	}
	if g.hasSelection {
		sel := g.selected
		snap.Selected = &sel
	}

	if g.engine == nil {
		snap.State = StateFailed
		return snap
	}
	snap.Board = g.engine.Snapshot()
	snap.Score = g.engine.Score()
	snap.Swaps = g.engine.Swaps()
	snap.BestCombo = g.engine.BestCombo()

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case g.gameOver:
		snap.State = StateGameOver
	case g.paused:
		snap.State = StatePaused
	case g.phase != phaseInput:
		snap.State = StateResolving
	default:
		snap.State = StatePlaying
	}
	return snap
}
