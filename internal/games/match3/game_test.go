package match3

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func newTestGame(t *testing.T, variant string, seed int64) *Game {
	t.Helper()
	g := New(variant)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed})
	if g.engine == nil {
		t.Fatalf("Reset() failed: %v", g.err)
	}
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// settle steps with no input until the turn is over.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if g.phase == phaseInput {
			return
		}
		press(g)
	}
	t.Fatal("turn did not finish")
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "mini", "grand"} {
		if !registry.Exists(id) {
			t.Errorf("variant %q should be registered", id)
		}
	}

	g, err := registry.Create("classic")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Match-3 Classic" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestResetBuildsStableBoard(t *testing.T) {
	tests := []struct {
		variant string
		size    int
		types   int
	}{
		{"classic", 8, 6},
		{"mini", 4, 4},
		{"grand", 16, 7},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			g := newTestGame(t, tt.variant, 7)

			snap := g.Snapshot()
			if len(snap.Board) != tt.size {
				t.Fatalf("expected %d rows, got %d", tt.size, len(snap.Board))
			}
			if g.engine.Registry().Len() != tt.types {
				t.Errorf("expected %d tile types, got %d", tt.types, g.engine.Registry().Len())
			}
			if !m3.Stable(g.engine.Board()) {
				t.Error("initial board holds a run")
			}
			if snap.Cursor != m3.P(tt.size/2, tt.size/2) {
				t.Errorf("cursor should start in the middle, got %v", snap.Cursor)
			}
		})
	}
}

func TestCursorClamps(t *testing.T) {
	g := newTestGame(t, "mini", 1)

	for i := 0; i < 10; i++ {
		press(g, core.ActionUp)
		press(g, core.ActionLeft)
	}
	if g.cursor != m3.P(0, 0) {
		t.Errorf("expected (0,0), got %v", g.cursor)
	}

	for i := 0; i < 10; i++ {
		press(g, core.ActionRight)
		press(g, core.ActionDown)
	}
	if g.cursor != m3.P(3, 3) {
		t.Errorf("expected (3,3), got %v", g.cursor)
	}
}

func TestSelection(t *testing.T) {
	g := newTestGame(t, "classic", 3)
	g.cursor = m3.P(0, 0)

	press(g, core.ActionSelect)
	if !g.hasSelection || g.selected != m3.P(0, 0) {
		t.Fatal("select should pick the tile under the cursor")
	}

	g.cursor = m3.P(2, 2)
	press(g, core.ActionSelect)
	if !g.hasSelection || g.selected != m3.P(2, 2) {
		t.Error("selecting a distant tile should move the selection")
	}
	if g.phase != phaseInput {
		t.Error("a distant tile should not start a swap")
	}

	press(g, core.ActionSelect)
	if g.hasSelection {
		t.Error("selecting the picked tile again should drop it")
	}

	press(g, core.ActionSelect)
	press(g, core.ActionCancel)
	if g.hasSelection {
		t.Error("cancel should drop the selection")
	}
}

func TestSwapResolvesOverSeveralTicks(t *testing.T) {
	g := newTestGame(t, "classic", 11)
	moves := g.engine.Moves()
	if len(moves) == 0 {
		t.Fatal("seeded board should have a move")
	}
	s := moves[0]

	g.cursor = s.A
	press(g, core.ActionSelect)
	g.cursor = s.B
	press(g, core.ActionSelect)

	if g.phase != phaseSwap {
		t.Fatalf("expected swap phase, got %v", g.phase)
	}
	if g.Snapshot().State != StateResolving {
		t.Errorf("expected resolving state, got %s", g.Snapshot().State)
	}

	// Input is ignored while the turn plays out.
	press(g, core.ActionLeft)
	if g.cursor != s.B {
		t.Error("cursor should not move during a turn")
	}

	settle(t, g)

	state := g.State()
	if state.Score <= 0 || state.Swaps != 1 || state.BestCombo < 1 {
		t.Errorf("unexpected state after swap: %+v", state)
	}
	if !m3.Stable(g.engine.Board()) {
		t.Error("board should be stable after the turn")
	}
	if len(g.popups) == 0 {
		t.Error("a score popup should be showing")
	}
}

func TestRevertedSwapShowsMessage(t *testing.T) {
	g := newTestGame(t, "classic", 5)
	board := g.engine.Board()

	var swap m3.Swap
	found := false
	for y := 0; y < board.Size() && !found; y++ {
		for x := 0; x+1 < board.Size(); x++ {
			s := m3.Swap{A: m3.P(x, y), B: m3.P(x+1, y)}
			if board.Get(s.A) != board.Get(s.B) && !m3.Matches(board, s) {
				swap, found = s, true
				break
			}
		}
	}
	if !found {
		t.Fatal("no losing swap on the board")
	}

	g.cursor = swap.A
	press(g, core.ActionSelect)
	g.cursor = swap.B
	press(g, core.ActionSelect)
	settle(t, g)

	if g.message != "No match" {
		t.Errorf("expected 'No match', got %q", g.message)
	}
	if g.State().Score != 0 {
		t.Errorf("reverted swap should not score, got %d", g.State().Score)
	}
	if !g.engine.Board().Equal(board) {
		t.Error("board should be unchanged after a revert")
	}
}

func TestDeterminism(t *testing.T) {
	script := []core.Action{
		core.ActionSelect, core.ActionRight, core.ActionSelect,
		core.ActionNone, core.ActionDown, core.ActionSelect, core.ActionUp, core.ActionSelect,
		core.ActionHint, core.ActionLeft, core.ActionSelect, core.ActionDown, core.ActionSelect,
	}

	run := func() []Snapshot {
		g := newTestGame(t, "classic", 2024)
		var snaps []Snapshot
		for _, a := range script {
			press(g, a)
			for i := 0; i < 40; i++ {
				press(g)
			}
			snaps = append(snaps, g.Snapshot())
		}
		return snaps
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different snapshots")
	}
}

func TestGameOverWhenNoMoves(t *testing.T) {
	g := newTestGame(t, "mini", 1)

	latin := m3.BoardFromRows(1,
		[]m3.TileType{"red", "green", "blue"},
		[]m3.TileType{"green", "blue", "red"},
		[]m3.TileType{"blue", "red", "green"},
	)
	e, err := m3.New(m3.Config{
		Size:         3,
		TileDistance: 1,
		TileTypes:    []string{"red", "green", "blue"},
		Scoring:      m3.DefaultScoring(),
	}, m3.WithBoard(latin))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.engine = e
	g.variant.Size = 3

	g.checkGameOver()
	if !g.State().GameOver {
		t.Fatal("board without moves should end the game")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("expected game_over, got %s", g.Snapshot().State)
	}

	before := g.cursor
	press(g, core.ActionRight)
	if g.cursor != before {
		t.Error("input should be ignored after game over")
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, "classic", 1)

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("pause should pause")
	}
	before := g.cursor
	press(g, core.ActionLeft)
	if g.cursor != before {
		t.Error("input should be ignored while paused")
	}

	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestHint(t *testing.T) {
	g := newTestGame(t, "classic", 9)
	press(g, core.ActionHint)

	if g.hint == nil {
		t.Fatal("hint should be shown")
	}
	if !m3.Matches(g.engine.Board(), *g.hint) {
		t.Errorf("hint %v does not produce a match", *g.hint)
	}

	for i := 0; i < hintTicks; i++ {
		press(g)
	}
	if g.hint != nil {
		t.Error("hint should expire")
	}
}

func TestTooSmallWindow(t *testing.T) {
	g := New("grand")
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 30, Seed: 1})

	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("expected paused_small_window, got %s", g.Snapshot().State)
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("render should explain the window is too small")
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(t, "classic", 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Match-3 Classic", "Score: 0", "Swaps: 0", "q quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("render should contain %q", want)
		}
	}

	// Cursor brackets surround the middle cell.
	boardW, _ := boardDims(8)
	frame := core.NewRect((80-boardW)/2, hudHeight, boardW, 10)
	x, y := g.cellOrigin(frame, g.cursor)
	if screen.Get(x, y) != '[' || screen.Get(x+2, y) != ']' {
		t.Errorf("cursor brackets missing at (%d,%d): %q", x, y, screen.Row(y))
	}
}

func TestEffectsFromEvents(t *testing.T) {
	g := newTestGame(t, "classic", 1)
	g.cfg.Board.TileDistance = 1.5

	g.pending = []m3.Event{
		m3.MatchResolvedEvent{Combo: 2, Score: 60, PivotX: 3, PivotY: -4.5},
		m3.TilesMovedEvent{Combo: 2, Spawns: []m3.Spawn{{At: m3.P(2, 0), Origin: m3.P(2, -1), Type: "red"}}},
		m3.CascadeCompleteEvent{Combos: 2, ScoreDelta: 90},
	}
	g.applyEvents()

	if len(g.popups) != 1 || g.popups[0].Text != "+60" || g.popups[0].At != m3.P(2, 3) {
		t.Errorf("unexpected popups %+v", g.popups)
	}
	if !g.fresh[m3.P(2, 0)] {
		t.Error("spawned cell should be marked fresh")
	}
	if g.banner != "2x Combo!" {
		t.Errorf("expected combo banner, got %q", g.banner)
	}

	for i := 0; i < g.cfg.Animation.PopupTicks; i++ {
		g.updateEffects()
	}
	if len(g.popups) != 0 || g.banner != "" {
		t.Error("effects should expire")
	}
}

func TestConfigureRegistersVariant(t *testing.T) {
	defer Configure(config.DefaultMatch3Config())

	cfg := config.DefaultMatch3Config()
	cfg.Variants = append(cfg.Variants, config.VariantConfig{
		ID: "zz_tiny", Name: "Tiny", Size: 5, TileTypes: 3,
	})
	Configure(cfg)

	if !registry.Exists("zz_tiny") {
		t.Fatal("Configure should register new variants")
	}
	g := newTestGame(t, "zz_tiny", 4)
	if len(g.Snapshot().Board) != 5 || g.engine.Registry().Len() != 3 {
		t.Error("new variant should use its configured size and tile types")
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := newTestGame(t, "classic", 21)
	before := g.Engine().Snapshot()

	g.Resize(30, 10)
	if !g.State().Paused {
		t.Error("shrinking the window should pause the game")
	}
	g.Resize(100, 40)
	if g.State().Paused {
		t.Error("growing the window should resume the game")
	}
	if !reflect.DeepEqual(before, g.Engine().Snapshot()) {
		t.Error("resize must not rebuild the board")
	}
	if g.Seed() != 21 {
		t.Errorf("Seed() = %d, want 21", g.Seed())
	}
}
