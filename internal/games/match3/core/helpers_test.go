package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

var fiveTypes = []string{"R", "G", "B", "Y", "P"}

// layout builds a board from space-separated rows, top row first.
// A "." leaves the cell vacant.
func layout(rows ...string) *core.Board {
	parsed := make([][]core.TileType, len(rows))
	for y, row := range rows {
		for _, id := range strings.Fields(row) {
			if id == "." {
				id = ""
			}
			parsed[y] = append(parsed[y], core.TileType(id))
		}
	}
	return core.BoardFromRows(1, parsed...)
}

// scriptedRefill hands out tile types from a fixed sequence, cycling when exhausted.
type scriptedRefill struct {
	seq  []core.TileType
	next int
}

func script(ids ...string) *scriptedRefill {
	s := &scriptedRefill{}
	for _, id := range ids {
		s.seq = append(s.seq, core.TileType(id))
	}
	return s
}

func (s *scriptedRefill) ChooseType(*core.Board, core.Position) core.TileType {
	t := s.seq[s.next%len(s.seq)]
	s.next++
	return t
}

// recorder collects engine events in delivery order.
type recorder struct {
	events []core.Event
}

func (r *recorder) listen(ev core.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) matches() []core.MatchResolvedEvent {
	var out []core.MatchResolvedEvent
	for _, ev := range r.events {
		if m, ok := ev.(core.MatchResolvedEvent); ok {
			out = append(out, m)
		}
	}
	return out
}

func (r *recorder) count(pred func(core.Event) bool) int {
	n := 0
	for _, ev := range r.events {
		if pred(ev) {
			n++
		}
	}
	return n
}

// scenarioB is stable; swapping (2,2) and (2,3) completes R R R in row 2.
// With refills Y G R the board is stable after one pass.
func scenarioB() *core.Board {
	return layout(
		"G B Y P G",
		"B Y P G B",
		"R R Y P B",
		"Y P R B Y",
		"P G B Y P",
	)
}

// scenarioC is stable; swapping (2,2) and (2,3) completes R R R in row 2, after which
// column 0 drops into G G G. With refills Y R B G P R the board settles after two passes.
func scenarioC() *core.Board {
	return layout(
		"G B Y P G",
		"G Y P B Y",
		"R R Y P B",
		"G P R B Y",
		"P B G Y P",
	)
}

func newEngine(t *testing.T, b *core.Board, opts ...core.Option) *core.Engine {
	t.Helper()
	cfg := core.Config{
		Size:         b.Size(),
		TileDistance: 1,
		TileTypes:    fiveTypes,
		Scoring:      core.DefaultScoring(),
		Seed:         1,
	}
	e, err := core.New(cfg, append([]core.Option{core.WithBoard(b)}, opts...)...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}
