// Package tui runs match-3 sessions in the terminal with Bubble Tea.
// It owns the tick loop, maps keys to actions and persists finished games.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 30

// TickMsg drives one simulation step. Cascade passes are paced in ticks, so
// the rate sets how fast the board animates.
type TickMsg time.Time

// tickInterval converts a rate in ticks per second to the delay between ticks.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
