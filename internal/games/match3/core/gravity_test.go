package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func gravityBoard() *core.Board {
	return layout(
		"A B C D",
		"E F G H",
		"I J K L",
		"M N O Q",
	)
}

func TestGravityHorizontalClear(t *testing.T) {
	b := gravityBoard()
	cleared := []core.Position{core.P(0, 2), core.P(1, 2), core.P(2, 2)}

	res := core.ResolveGravity(b, cleared, script("Z"))

	expected := layout(
		"Z Z Z D",
		"A B C H",
		"E F G L",
		"M N O Q",
	)
	if !b.Equal(expected) {
		t.Fatalf("board after gravity:\n%s\nexpected:\n%s", b, expected)
	}

	if len(res.Moves) != 6 {
		t.Errorf("expected 6 moves, got %d", len(res.Moves))
	}
	first := res.Moves[0]
	if first.From != core.P(0, 1) || first.To != core.P(0, 2) || first.Type != "E" {
		t.Errorf("unexpected first move %+v", first)
	}

	if len(res.Spawns) != 3 {
		t.Fatalf("expected 3 spawns, got %d", len(res.Spawns))
	}
	for i, s := range res.Spawns {
		if s.At != core.P(i, 0) || s.Origin != core.P(i, -1) {
			t.Errorf("spawn %d: got at %v from %v", i, s.At, s.Origin)
		}
	}
}

func TestGravityVerticalClear(t *testing.T) {
	b := gravityBoard()
	cleared := []core.Position{core.P(1, 1), core.P(1, 2), core.P(1, 3)}

	res := core.ResolveGravity(b, cleared, script("X", "Y", "Z"))

	expected := layout(
		"A X C D",
		"E Y G H",
		"I Z K L",
		"M B O Q",
	)
	if !b.Equal(expected) {
		t.Fatalf("board after gravity:\n%s\nexpected:\n%s", b, expected)
	}

	if len(res.Moves) != 1 || res.Moves[0].From != core.P(1, 0) || res.Moves[0].To != core.P(1, 3) {
		t.Errorf("expected B to fall from (1,0) to (1,3), got %+v", res.Moves)
	}

	origins := []core.Position{core.P(1, -3), core.P(1, -2), core.P(1, -1)}
	for i, s := range res.Spawns {
		if s.At != core.P(1, i) || s.Origin != origins[i] {
			t.Errorf("spawn %d: got at %v from %v", i, s.At, s.Origin)
		}
	}
}

func TestGravityGapsInColumn(t *testing.T) {
	b := gravityBoard()
	cleared := []core.Position{core.P(0, 1), core.P(0, 3)}

	core.ResolveGravity(b, cleared, script("Y", "Z"))

	expected := layout(
		"Y B C D",
		"Z F G H",
		"A J K L",
		"I N O Q",
	)
	if !b.Equal(expected) {
		t.Errorf("board after gravity:\n%s\nexpected:\n%s", b, expected)
	}
}

func TestGravityConservesColumns(t *testing.T) {
	b := gravityBoard()
	cleared := []core.Position{
		core.P(0, 0), core.P(2, 1), core.P(2, 2), core.P(2, 2), core.P(3, 3), core.P(9, 9),
	}

	res := core.ResolveGravity(b, cleared, script("Z"))

	for col := 0; col < b.Size(); col++ {
		if got := b.ColumnCount(col); got != b.Size() {
			t.Errorf("column %d: expected %d tiles, got %d", col, b.Size(), got)
		}
	}
	if len(res.Spawns) != 4 {
		t.Errorf("duplicates should be cleared once: expected 4 spawns, got %d", len(res.Spawns))
	}
}

func TestGravityNothingCleared(t *testing.T) {
	b := gravityBoard()
	res := core.ResolveGravity(b, nil, script("Z"))

	if !b.Equal(gravityBoard()) {
		t.Error("board changed with nothing cleared")
	}
	if len(res.Moves) != 0 || len(res.Spawns) != 0 {
		t.Errorf("expected no movement, got %+v", res)
	}
}
