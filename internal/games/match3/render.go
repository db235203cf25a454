package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	cellWidth    = 3 // Glyph plus a bracket on each side
	hudHeight    = 3 // Title, stats, banner
	footerHeight = 2 // Message, help
	minScreenW   = 40
)

// glyphs are assigned to tile types by registration order.
var glyphs = []rune{'●', '◆', '▲', '■', '★', '♥', '✚', '◉'}

const helpText = "arrows move  space select  esc cancel  ? hint  p pause  q quit"

// boardDims returns the framed board size in screen cells.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 2, size + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		dst.DrawTextCentered(dst.Height()/2, "Cannot start game", core.ColorBrightRed)
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorGray)
		}
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardDims(g.variant.Size)
	frame := core.NewRect((g.screenW-boardW)/2, hudHeight, boardW, boardH)

	g.renderHUD(dst, frame)
	g.renderBoard(dst, frame)
	g.renderPopups(dst, frame)
	g.renderFooter(dst, frame)
	g.renderOverlays(dst, frame)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)

	boardW, boardH := boardDims(g.variant.Size)
	need := fmt.Sprintf("Need %dx%d", max(boardW, minScreenW), boardH+hudHeight+footerHeight)
	dst.DrawTextCentered(y+1, need, core.ColorGray)
}

// renderHUD draws the title, the score line and the combo banner.
func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightWhite)

	stats := fmt.Sprintf("Score: %d   Swaps: %d   Best combo: %d",
		g.engine.Score(), g.engine.Swaps(), g.engine.BestCombo())
	dst.DrawTextCentered(1, stats, core.ColorDefault)

	switch {
	case g.banner != "":
		dst.DrawTextCentered(2, g.banner, core.ColorBrightYellow)
	case g.phase == phasePass && g.combo > 1:
		dst.DrawTextCentered(2, fmt.Sprintf("Combo x%d", g.combo), core.ColorYellow)
	}
}

// renderBoard draws the frame and every tile with its cursor decorations.
func (g *Game) renderBoard(dst *core.Screen, frame core.Rect) {
	frameColor := core.ColorGray
	if g.phase != phaseInput {
		frameColor = core.ColorCyan
	}
	dst.DrawBox(frame, frameColor)

	reg := g.engine.Registry()
	size := g.variant.Size
	for y := range size {
		for x := range size {
			p := m3.P(x, y)
			px, py := g.cellOrigin(frame, p)

			t := g.engine.GetTile(p)
			idx := reg.Index(t)
			glyph := '?'
			if idx >= 0 {
				glyph = glyphs[idx%len(glyphs)]
			}
			color := core.TileColor(idx)
			if g.fresh[p] {
				color = core.ColorBrightWhite
			}
			dst.SetColored(px+1, py, glyph, color)

			left, right, deco := g.decoration(p)
			if left != 0 {
				dst.SetColored(px, py, left, deco)
				dst.SetColored(px+2, py, right, deco)
			}
		}
	}
}

// decoration returns the brackets drawn around a cell, if any.
func (g *Game) decoration(p m3.Position) (left, right rune, c core.Color) {
	switch {
	case g.phase == phaseSwap && (p == g.swap.A || p == g.swap.B):
		return '*', '*', core.ColorBrightYellow
	case p == g.cursor && g.phase == phaseInput:
		return '[', ']', core.ColorBrightWhite
	case g.hasSelection && p == g.selected:
		return '<', '>', core.ColorYellow
	case g.hint != nil && (p == g.hint.A || p == g.hint.B):
		return '(', ')', core.ColorCyan
	}
	return 0, 0, core.ColorDefault
}

// cellOrigin returns the screen position of a cell's left bracket.
func (g *Game) cellOrigin(frame core.Rect, p m3.Position) (x, y int) {
	return frame.X + 1 + p.X*cellWidth, frame.Y + 1 + p.Y
}

// renderPopups draws score labels centered on the pivots of resolved matches.
func (g *Game) renderPopups(dst *core.Screen, frame core.Rect) {
	for _, p := range g.popups {
		if p.At.X < 0 || p.At.Y < 0 || p.At.X >= g.variant.Size || p.At.Y >= g.variant.Size {
			continue
		}
		px, py := g.cellOrigin(frame, p.At)
		x := px + 1 - len(p.Text)/2
		dst.DrawTextColored(x, py, p.Text, core.ColorBrightWhite)
	}
}

func (g *Game) renderFooter(dst *core.Screen, frame core.Rect) {
	if g.message != "" {
		dst.DrawTextCentered(frame.Bottom(), g.message, core.ColorBrightRed)
	}
	dst.DrawTextCentered(g.screenH-1, helpText, core.ColorGray)
}

// renderOverlays draws pause and game over boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	var lines []string
	switch {
	case g.gameOver:
		lines = []string{
			"NO MORE MOVES",
			fmt.Sprintf("Final score: %d", g.engine.Score()),
			"R restart  Q quit",
		}
	case g.paused:
		lines = []string{"PAUSED", "P to resume"}
	default:
		return
	}

	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	box := core.NewRect((g.screenW-w-4)/2, frame.Y+(frame.H-len(lines)-2)/2, w+4, len(lines)+2)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightYellow
		}
		dst.DrawTextCentered(box.Y+1+i, l, color)
	}
}
