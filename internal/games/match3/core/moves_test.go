package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestFindMoves(t *testing.T) {
	b := scenarioB()
	before := b.Clone()

	moves := core.FindMoves(b)
	if !b.Equal(before) {
		t.Fatal("FindMoves mutated the board")
	}

	want := core.Swap{A: core.P(2, 2), B: core.P(2, 3)}
	found := false
	for _, s := range moves {
		if s == want {
			found = true
		}
		if !core.Matches(b, s) {
			t.Errorf("listed move %v does not match", s)
		}
	}
	if !found {
		t.Errorf("expected %v among %v", want, moves)
	}

	if core.Matches(b, core.Swap{A: core.P(0, 0), B: core.P(1, 0)}) {
		t.Error("(0,0)<->(1,0) should not match")
	}
	if !core.HasMove(b) {
		t.Error("HasMove should report the available swap")
	}
}

func TestMatchesRejectsInvalidSwaps(t *testing.T) {
	b := scenarioB()

	testCases := []core.Swap{
		{A: core.P(0, 0), B: core.P(2, 0)},
		{A: core.P(4, 4), B: core.P(5, 4)},
		{A: core.P(1, 1), B: core.P(1, 1)},
	}
	for _, s := range testCases {
		if core.Matches(b, s) {
			t.Errorf("Matches(%v) should be false", s)
		}
	}
}

func TestNoMovesOnLatinSquare(t *testing.T) {
	// Every row and column of a 3x3 Latin square keeps three distinct types after any swap.
	b := layout(
		"A B C",
		"B C A",
		"C A B",
	)

	if moves := core.FindMoves(b); len(moves) != 0 {
		t.Errorf("expected no moves, got %v", moves)
	}
	if core.HasMove(b) {
		t.Error("HasMove should be false")
	}
}

func TestRunAt(t *testing.T) {
	b := layout(
		"A B C D",
		"A C B D",
		"A B C B",
		"C A D A",
	)

	if !core.RunAt(b, core.P(0, 1)) {
		t.Error("(0,1) is inside a vertical run")
	}
	if core.RunAt(b, core.P(3, 0)) {
		t.Error("(3,0) is only in a pair")
	}
}

func TestEngineMovesMatchesBoard(t *testing.T) {
	e, err := core.BuildBoard(8, fiveTypes, 5)
	if err != nil {
		t.Fatalf("BuildBoard() failed: %v", err)
	}

	fromEngine := e.Moves()
	fromBoard := core.FindMoves(e.Board())
	if len(fromEngine) != len(fromBoard) {
		t.Fatalf("engine lists %d moves, board %d", len(fromEngine), len(fromBoard))
	}
	for i := range fromEngine {
		if fromEngine[i] != fromBoard[i] {
			t.Errorf("move %d: %v vs %v", i, fromEngine[i], fromBoard[i])
		}
	}
}
