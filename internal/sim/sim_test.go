package sim

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func smallConfig() m3.Config {
	return m3.Config{
		Size:         6,
		TileDistance: 1,
		TileTypes:    []string{"red", "green", "blue", "yellow", "purple"},
		Scoring:      m3.DefaultScoring(),
	}
}

func TestRunPlaysEveryGame(t *testing.T) {
	rep, err := Run(context.Background(), Options{
		Engine:   smallConfig(),
		Games:    12,
		MaxSwaps: 15,
		Workers:  4,
		Seed:     42,
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if rep.Games != 12 {
		t.Errorf("expected 12 games, got %d", rep.Games)
	}
	if rep.TotalSwaps == 0 || rep.TotalSwaps > 12*15 {
		t.Errorf("total swaps out of range: %d", rep.TotalSwaps)
	}

	histogram := 0
	for depth, n := range rep.Cascades {
		if depth < 1 {
			t.Errorf("a scoring swap has at least one pass, got depth %d", depth)
		}
		histogram += n
	}
	if histogram != rep.TotalSwaps {
		t.Errorf("histogram counts %d swaps, report has %d", histogram, rep.TotalSwaps)
	}
	if rep.ScoreMean <= 0 || rep.ScoreP50 > rep.ScoreP95 || float64(rep.ScoreMax) < rep.ScoreP95 {
		t.Errorf("inconsistent score stats: %+v", rep)
	}
	if rep.ScoreCI.Lo > rep.ScoreMean || rep.ScoreCI.Hi < rep.ScoreMean {
		t.Errorf("mean %v outside its interval %+v", rep.ScoreMean, rep.ScoreCI)
	}
}

func TestRunIndependentOfWorkers(t *testing.T) {
	run := func(workers int) *Report {
		rep, err := Run(context.Background(), Options{
			Engine:   smallConfig(),
			Games:    8,
			MaxSwaps: 10,
			Workers:  workers,
			Seed:     7,
		})
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		rep.Elapsed = 0
		return rep
	}

	a, b := run(1), run(5)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("reports differ across worker counts:\n%+v\n%+v", a, b)
	}
}

func TestPlayGameDeterministic(t *testing.T) {
	a, err := PlayGame(smallConfig(), 0, 99, 20)
	if err != nil {
		t.Fatalf("PlayGame() failed: %v", err)
	}
	b, _ := PlayGame(smallConfig(), 0, 99, 20)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should play the same game")
	}
	if a.Swaps != len(a.Combos) {
		t.Errorf("swaps %d but %d combo entries", a.Swaps, len(a.Combos))
	}
	if !a.NoMoves && a.Swaps != 20 {
		t.Errorf("game should run to the swap limit, stopped at %d", a.Swaps)
	}
}

func TestPlayGameStopsWithoutMoves(t *testing.T) {
	// Three types on a 3x3 board leave few moves; play until they run out.
	cfg := m3.Config{Size: 3, TileDistance: 1, TileTypes: []string{"a", "b", "c"}, Scoring: m3.DefaultScoring()}
	for seed := int64(0); seed < 50; seed++ {
		r, err := PlayGame(cfg, 0, seed, 1000)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if r.Swaps < 1000 && !r.NoMoves {
			t.Errorf("seed %d: stopped early without running out of moves", seed)
		}
	}
}

func TestRunValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no games", Options{Engine: smallConfig(), Games: 0, MaxSwaps: 1}},
		{"no swaps", Options{Engine: smallConfig(), Games: 1, MaxSwaps: 0}},
		{"bad engine", Options{Engine: m3.Config{Size: 0}, Games: 1, MaxSwaps: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Engine: smallConfig(), Games: 100, MaxSwaps: 5, Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSeedFor(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		s := SeedFor(1, i)
		if s < 0 {
			t.Fatalf("seed %d is negative", s)
		}
		if seen[s] {
			t.Fatalf("seed %d repeated", s)
		}
		seen[s] = true
	}
	if SeedFor(5, 3) != SeedFor(5, 3) {
		t.Error("SeedFor should be deterministic")
	}
}

func TestSummarize(t *testing.T) {
	rep := Summarize([]GameResult{
		{Score: 100, Swaps: 2, BestCombo: 1, Combos: []int{1, 1}},
		{Score: 300, Swaps: 3, BestCombo: 3, Combos: []int{1, 3, 2}, NoMoves: true},
		{Score: 200, Swaps: 1, BestCombo: 1, Combos: []int{1}},
	})

	if rep.TotalSwaps != 6 || rep.NoMoveEnds != 1 || rep.BestCombo != 3 || rep.ScoreMax != 300 {
		t.Errorf("unexpected totals: %+v", rep)
	}
	if rep.ScoreMean != 200 || rep.ScoreP50 != 200 || rep.ScoreStd != 100 {
		t.Errorf("unexpected score stats: mean %v p50 %v std %v", rep.ScoreMean, rep.ScoreP50, rep.ScoreStd)
	}
	want := map[int]int{1: 4, 2: 1, 3: 1}
	if !reflect.DeepEqual(rep.Cascades, want) {
		t.Errorf("Cascades = %v, want %v", rep.Cascades, want)
	}

	empty := Summarize(nil)
	if empty.Games != 0 || empty.ScoreMean != 0 {
		t.Errorf("empty summary: %+v", empty)
	}
}

func TestReportTable(t *testing.T) {
	rep := Summarize([]GameResult{
		{Score: 1200, Swaps: 4, BestCombo: 2, Combos: []int{1, 2, 1, 1}},
		{Score: 800, Swaps: 2, BestCombo: 1, Combos: []int{1, 1}},
	})

	var buf bytes.Buffer
	if err := rep.Write(&buf); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Match-3 Simulation", "Mean Score", "1,000.00", "Cascade Depth", "1 pass", "2 passes"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q:\n%s", want, out)
		}
	}

	// Every line of a box has the same width.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := len(lines[0])
	for _, l := range lines[:15] {
		if len(l) != width {
			t.Errorf("ragged table line %q", l)
		}
	}
}
