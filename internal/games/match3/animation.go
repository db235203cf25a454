package match3

import (
	"errors"
	"fmt"
	"math"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// phase is where the current turn is in its on-screen pacing.
type phase int

const (
	phaseInput phase = iota // Waiting for the player
	phaseSwap               // Swapped pair shown before the first scan
	phasePass               // A cascade pass was applied and is being shown
)

func (p phase) String() string {
	switch p {
	case phaseInput:
		return "input"
	case phaseSwap:
		return "swap"
	case phasePass:
		return "pass"
	default:
		return "unknown"
	}
}

const hintTicks = 45

// popup is a score label drawn over the pivot of a resolved match.
type popup struct {
	Text  string
	At    m3.Position
	Ticks int
}

func (g *Game) clearEffects() {
	g.fresh = nil
	g.hint = nil
	g.hintTicks = 0
	g.popups = nil
	g.banner = ""
	g.bannerTick = 0
	g.message = ""
	g.msgTicks = 0
}

// updateEffects counts down every timed overlay.
func (g *Game) updateEffects() {
	alive := g.popups[:0]
	for _, p := range g.popups {
		p.Ticks--
		if p.Ticks > 0 {
			alive = append(alive, p)
		}
	}
	g.popups = alive

	if g.bannerTick > 0 {
		g.bannerTick--
		if g.bannerTick == 0 {
			g.banner = ""
		}
	}
	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}
	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}
}

// applyEvents turns pending engine events into on-screen effects.
func (g *Game) applyEvents() {
	events := g.pending
	g.pending = nil

	for _, ev := range events {
		switch ev := ev.(type) {
		case m3.MatchResolvedEvent:
			g.combo = ev.Combo
			g.popups = append(g.popups, popup{
				Text:  fmt.Sprintf("+%d", ev.Score),
				At:    g.cellAt(ev.PivotX, ev.PivotY),
				Ticks: g.cfg.Animation.PopupTicks,
			})

		case m3.TilesMovedEvent:
			g.fresh = make(map[m3.Position]bool, len(ev.Spawns))
			for _, s := range ev.Spawns {
				g.fresh[s.At] = true
			}

		case m3.SwapRejectedEvent:
			g.flash(rejectionText(ev.Reason))

		case m3.SwapRevertedEvent:
			g.flash("No match")

		case m3.CascadeCompleteEvent:
			if ev.Combos > 1 {
				g.banner = fmt.Sprintf("%dx Combo!", ev.Combos)
				g.bannerTick = g.cfg.Animation.PopupTicks
			}
		}
	}
}

// cellAt maps a world-space point back to the board cell it was placed at.
func (g *Game) cellAt(x, y float64) m3.Position {
	d := g.cfg.Board.TileDistance
	if d <= 0 {
		d = 1
	}
	return m3.P(int(math.Round(x/d)), int(math.Round(-y/d)))
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.msgTicks = g.cfg.Animation.PopupTicks
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, m3.ErrInvalidSwap):
		return "Pick a neighbouring tile"
	case errors.Is(err, m3.ErrPositionLocked), errors.Is(err, m3.ErrTurnInFlight):
		return "Wait for the board to settle"
	default:
		return "Swap refused"
	}
}

// showHint highlights one available swap for a short while.
func (g *Game) showHint() {
	moves := g.engine.Moves()
	if len(moves) == 0 {
		return
	}
	s := moves[int(g.tick)%len(moves)]
	g.hint = &s
	g.hintTicks = hintTicks
}
