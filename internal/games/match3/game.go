// Package match3 adapts the match-3 rules engine to the arcade platform: it
// turns input frames into cursor moves and swaps, paces each cascade pass over
// several ticks, and draws the board into a core.Screen.
package match3

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Package-level settings shared by every variant instance.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultMatch3Config()
	logger     = log.New(io.Discard)
)

func init() {
	for _, v := range settings.Variants {
		register(v.ID)
	}
}

func register(id string) {
	registry.Register(id, func() registry.Game {
		return New(id)
	})
}

// Configure replaces the configuration used by subsequently reset games and
// registers any variant the registry does not know yet.
func Configure(cfg config.Match3Config) {
	settingsMu.Lock()
	settings = cfg
	settingsMu.Unlock()

	for _, v := range cfg.Variants {
		if !registry.Exists(v.ID) {
			register(v.ID)
		}
	}
}

// Settings returns the configuration currently in effect.
func Settings() config.Match3Config {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SetLogger sets the logger handed to new engines. Scored matches are logged at debug level.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	settingsMu.Lock()
	logger = l
	settingsMu.Unlock()
}

func currentLogger() *log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return logger
}

// lookupVariant resolves a variant id against the current settings.
// Unknown ids fall back to the configured default board with every tile type.
func lookupVariant(id string) (config.Match3Config, config.VariantConfig) {
	cfg := Settings()
	if v, ok := cfg.Variant(id); ok {
		return cfg, v
	}
	return cfg, config.VariantConfig{
		ID:        id,
		Name:      id,
		Size:      cfg.Board.Size,
		TileTypes: len(cfg.Tiles.Types),
	}
}

// EngineConfig builds the engine configuration for a variant.
func EngineConfig(cfg config.Match3Config, v config.VariantConfig, seed int64) m3.Config {
	return m3.Config{
		Size:         v.Size,
		TileDistance: cfg.Board.TileDistance,
		TileTypes:    cfg.TileTypesFor(v),
		Scoring: m3.Scoring{
			PerTile:         cfg.Scoring.PerTile,
			ComboMultiplier: cfg.Scoring.ComboMultiplier,
		},
		Seed: seed,
	}
}

// Game implements a match-3 session for one variant.
type Game struct {
	variantID string
	cfg       config.Match3Config
	variant   config.VariantConfig

	engine  *m3.Engine
	pending []m3.Event // Engine events not yet turned into effects
	err     error      // Set when the engine could not be built

	seed     int64
	tick     uint64
	screenW  int
	screenH  int
	tooSmall bool
	paused   bool
	gameOver bool

	// Input
	cursor       m3.Position
	selected     m3.Position
	hasSelection bool

	// Turn pacing and effects
	phase      phase
	phaseTicks int
	swap       m3.Swap
	combo      int
	fresh      map[m3.Position]bool
	hint       *m3.Swap
	hintTicks  int
	popups     []popup
	banner     string
	bannerTick int
	message    string
	msgTicks   int
}

// New creates a game for the given variant id.
func New(variantID string) *Game {
	cfg, v := lookupVariant(variantID)
	return &Game{
		variantID: variantID,
		cfg:       cfg,
		variant:   v,
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variantID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant.Name != "" {
		return "Match-3 " + g.variant.Name
	}
	return "Match-3"
}

// Description returns a one-line summary of the variant.
func (g *Game) Description() string {
	return g.variant.Description
}

// Reset builds a fresh board for the variant.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg, g.variant = lookupVariant(g.variantID)

	g.seed = rc.Seed
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false
	g.gameOver = false
	g.hasSelection = false
	g.phase = phaseInput
	g.phaseTicks = 0
	g.combo = 0
	g.pending = nil
	g.clearEffects()

	engine, err := m3.New(EngineConfig(g.cfg, g.variant, rc.Seed),
		m3.WithLogger(currentLogger().With("variant", g.variantID)),
		m3.WithListener(g.collect))
	if err != nil {
		g.engine = nil
		g.err = err
		return
	}
	g.engine = engine
	g.err = nil

	size := g.variant.Size
	g.cursor = m3.P(size/2, size/2)
	g.checkScreenSize()
	g.checkGameOver()
}

// Resize adapts the layout to a new terminal size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Seed returns the seed the current board was built from.
func (g *Game) Seed() int64 {
	return g.seed
}

// collect receives engine events. Advance and BeginSwap run on the Step
// goroutine, so no locking is needed.
func (g *Game) collect(ev m3.Event) {
	g.pending = append(g.pending, ev)
}

// checkScreenSize checks if the screen can hold the board and HUD.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardDims(g.variant.Size)
	minW := max(boardW, minScreenW)
	minH := boardH + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// checkGameOver ends the session when no swap can produce a match.
func (g *Game) checkGameOver() {
	if g.engine == nil || len(g.engine.Moves()) > 0 {
		return
	}
	g.gameOver = true
	g.hasSelection = false
	currentLogger().Info("no moves left", "variant", g.variantID, "score", g.engine.Score(), "swaps", g.engine.Swaps())
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.updateEffects()

	// Restart is handled by the platform
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if g.phase == phaseInput {
		g.handleInput(in)
	} else {
		g.updateTurn()
	}

	return core.StepResult{State: g.State()}
}

// handleInput moves the cursor and turns selections into swaps.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(core.ActionCancel) {
		g.hasSelection = false
	}
	if in.Has(core.ActionHint) {
		g.showHint()
	}
	if in.Has(core.ActionSelect) {
		g.selectAtCursor()
	}
}

func (g *Game) moveCursor(dx, dy int) {
	last := g.variant.Size - 1
	g.cursor = m3.P(core.Clamp(g.cursor.X+dx, 0, last), core.Clamp(g.cursor.Y+dy, 0, last))
}

// selectAtCursor picks the tile under the cursor, or swaps it with the picked
// tile when the two are neighbours.
func (g *Game) selectAtCursor() {
	switch {
	case !g.hasSelection:
		g.selected = g.cursor
		g.hasSelection = true
	case g.selected == g.cursor:
		g.hasSelection = false
	case !m3.Adjacent(g.selected, g.cursor):
		g.selected = g.cursor
	default:
		g.startSwap(g.selected, g.cursor)
	}
}

// startSwap hands the swap to the engine and begins pacing the turn.
func (g *Game) startSwap(a, b m3.Position) {
	g.hasSelection = false
	g.hint = nil

	err := g.engine.BeginSwap(a, b)
	g.applyEvents()
	if err != nil {
		return
	}

	g.swap = m3.Swap{A: a, B: b}
	g.combo = 0
	g.fresh = nil
	g.phase = phaseSwap
	g.phaseTicks = g.cfg.Animation.SwapTicks
}

// updateTurn runs one engine pass whenever the current pass has been shown long enough.
func (g *Game) updateTurn() {
	if g.phaseTicks > 0 {
		g.phaseTicks--
		return
	}

	_, done := g.engine.Advance()
	g.applyEvents()

	if !done {
		g.phase = phasePass
		g.phaseTicks = g.cfg.Animation.PassTicks
		return
	}

	g.phase = phaseInput
	g.fresh = nil
	g.checkGameOver()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:     g.engine.Score(),
		Swaps:     g.engine.Swaps(),
		BestCombo: g.engine.BestCombo(),
		GameOver:  g.gameOver,
		Paused:    g.paused || g.tooSmall,
	}
}

// Engine returns the underlying rules engine.
func (g *Game) Engine() *m3.Engine {
	return g.engine
}
