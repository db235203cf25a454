package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	statsPanelWidth  = 24 // Width of the statistics panel
	minWidthForPanel = 84 // Narrower terminals stack the panel under the table
	maxScores        = 100
)

// ScoreSource provides stored results and their statistics.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev board")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best results and score statistics of each variant.
type ScoreboardModel struct {
	variants  []registry.GameInfo
	current   int
	store     ScoreSource // May be nil
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard starting at the first variant.
func NewScoreboardModel(store ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForPanel
}

// newTable sizes the score table for the current window.
func (m ScoreboardModel) newTable() table.Model {
	dateWidth := 12
	if m.width >= 100 {
		dateWidth = 16
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Swaps", Width: 6},
		{Title: "Combo", Width: 6},
		{Title: "Played", Width: dateWidth},
	}

	// Title, tabs, help and box borders take about ten lines
	height := m.height - 10
	if !m.wide() {
		height -= 9 // Stats panel below the table
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the results of the selected variant.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.variants) > 0 {
		id := m.variants[m.current].ID
		m.scores, m.loadErr = m.store.TopScores(id, maxScores)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(id)
		}
	}
	m.setRows()
}

func (m *ScoreboardModel) setRows() {
	layout := "Jan 02 15:04"
	if m.width >= 100 {
		layout = "2006-01-02 15:04"
	}
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(s.Score),
			fmt.Sprint(s.Swaps),
			fmt.Sprintf("x%d", s.BestCombo),
			s.CreatedAt.Format(layout),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves the selection by delta variants, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	n := len(m.variants)
	if n == 0 {
		return
	}
	m.current = ((m.current+delta)%n + n) % n
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.setRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sbTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.tabs()))
	b.WriteString("\n\n")

	scores := sbBoxStyle.Render(m.scoresView())
	stats := sbBoxStyle.Width(statsPanelWidth).Render(m.statsView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, scores, "  ", stats))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, scores, stats))
	}

	b.WriteString("\n")
	b.WriteString(sbMutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists the variants, falling back to "< current >" when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.variants) == 0 {
		return sbMutedStyle.Render("no boards configured")
	}
	parts := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			parts[i] = sbActiveStyle.Render(v.Title)
		} else {
			parts[i] = sbMutedStyle.Render(" " + v.Title + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.variants[m.current].Title)
	}
	return line
}

func (m ScoreboardModel) scoresView() string {
	switch {
	case m.store == nil:
		return sbMutedStyle.Italic(true).Padding(1, 2).Render("Scores are not being recorded.")
	case m.loadErr != nil:
		return sbMutedStyle.Italic(true).Padding(1, 2).Render("Cannot read scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return sbMutedStyle.Italic(true).Padding(1, 2).Render("No scores recorded yet.\nFinish a game to set one!")
	}
	return m.table.View()
}

// statsView renders the score distribution of the selected variant.
func (m ScoreboardModel) statsView() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return sbTitleStyle.Render("Statistics") + "\n" + sbMutedStyle.Render("no games yet")
	}
	rows := [][2]string{
		{"Games", fmt.Sprint(st.GamesCount)},
		{"Best", fmt.Sprint(st.HighScore)},
		{"Mean", fmt.Sprintf("%.1f", st.AvgScore)},
		{"Median", fmt.Sprintf("%.0f", st.Median)},
		{"Std dev", fmt.Sprintf("%.1f", st.StdDev)},
		{"Best combo", fmt.Sprintf("x%d", st.BestCombo)},
		{"Swaps", fmt.Sprint(st.TotalSwaps)},
	}
	var b strings.Builder
	b.WriteString(sbTitleStyle.Render("Statistics"))
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%-11s%9s", r[0], r[1])
	}
	if !st.LastPlayed.IsZero() {
		b.WriteString("\n")
		b.WriteString(sbMutedStyle.Render("last " + st.LastPlayed.Format("Jan 02 15:04")))
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store ScoreSource, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
