package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/ledger"
)

// Leaderboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the difficulty sidebar
	sidebarWidth       = 20
)

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next difficulty"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev difficulty"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// leaderboardScene shows the best times and statistics per difficulty.
type leaderboardScene struct {
	deps   *Deps
	ids    []difficulty.ID
	cursor int
	times  []int
	table  table.Model
	help   help.Model
	keys   LeaderboardKeyMap
	width  int
	height int
}

func newLeaderboardScene(deps *Deps) *leaderboardScene {
	h := help.New()
	h.ShowAll = false
	m := &leaderboardScene{
		deps:   deps,
		keys:   DefaultLeaderboardKeyMap(),
		help:   h,
		width:  deps.Config.ScreenW,
		height: deps.Config.ScreenH,
	}
	m.table = m.createTable()
	return m
}

func (m *leaderboardScene) enter() {
	m.ids = m.difficulties()
	m.cursor = 0
	current := m.deps.Settings.Difficulty()
	for i, id := range m.ids {
		if id == current {
			m.cursor = i
		}
	}
	m.load()
}

func (m *leaderboardScene) exit() {}

// difficulties lists the configured profiles plus any extra identifiers
// the ledger has recorded.
func (m *leaderboardScene) difficulties() []difficulty.ID {
	ids := m.deps.Profiles.IDs()
	for _, id := range m.deps.Ledger.Difficulties() {
		if !m.deps.Profiles.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *leaderboardScene) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.table = m.createTable()
	m.updateTableRows()
}

func (m *leaderboardScene) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Time", Width: 10},
		{Title: "Rating", Width: 16},
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

func (m *leaderboardScene) current() difficulty.ID {
	if len(m.ids) == 0 {
		return difficulty.Normal
	}
	return m.ids[m.cursor]
}

func (m *leaderboardScene) load() {
	m.times = m.deps.Ledger.BestTimes(m.current(), ledger.MaxBestTimes)
	m.updateTableRows()
}

func (m *leaderboardScene) updateTableRows() {
	profile := m.deps.Profiles.Lookup(m.current())
	rows := make([]table.Row, len(m.times))
	for i, ms := range m.times {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d ms", ms),
			profile.Rate(ms).Label,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *leaderboardScene) update(msg tea.Msg) (sceneID, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return sceneStay, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return sceneQuit, nil

	case key.Matches(keyMsg, m.keys.Back):
		return sceneMenu, nil

	case key.Matches(keyMsg, m.keys.Next):
		if len(m.ids) > 0 {
			m.cursor = (m.cursor + 1) % len(m.ids)
			m.load()
		}

	case key.Matches(keyMsg, m.keys.Prev):
		if len(m.ids) > 0 {
			m.cursor = (m.cursor - 1 + len(m.ids)) % len(m.ids)
			m.load()
		}

	case key.Matches(keyMsg, m.keys.Up), key.Matches(keyMsg, m.keys.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return sceneStay, cmd
	}
	return sceneStay, nil
}

func (m *leaderboardScene) view() string {
	var b strings.Builder

	title := "LEADERBOARD - " + m.deps.Profiles.Lookup(m.current()).DisplayName()
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	content := lipgloss.JoinVertical(lipgloss.Left, m.statsBlock(), "", m.renderTableContent())
	box := panelStyle.Render(content)

	if m.width >= minWidthForSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", box))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(box, m.width))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *leaderboardScene) statsBlock() string {
	id := m.current()
	stats := m.deps.Ledger.Statistics(id)
	lines := []string{
		fmt.Sprintf("Attempts %d  •  Best %s  •  Average %s",
			stats.TotalAttempts, formatMS(stats.BestTime), formatAverage(stats.AverageTime)),
	}
	if daily, ok := m.deps.Ledger.DailyStats(id, m.deps.Ledger.Today()); ok {
		lines = append(lines, fmt.Sprintf("Today    %d attempts  •  best %d ms  •  average %.1f ms",
			daily.Attempts, daily.BestTime, daily.AverageTime))
	} else {
		lines = append(lines, dimStyle.Render("No attempts today"))
	}
	return strings.Join(lines, "\n")
}

func (m *leaderboardScene) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Difficulty\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, id := range m.ids {
		name := m.deps.Profiles.Lookup(id).DisplayName()
		if !m.deps.Profiles.Has(id) {
			name = string(id)
		}
		if i == m.cursor {
			sidebar.WriteString(titleStyle.Render("> " + name))
		} else {
			sidebar.WriteString("  " + name)
		}
		sidebar.WriteString("\n")
	}
	return style.Render(sidebar.String())
}

func (m *leaderboardScene) renderTabs() string {
	tabs := make([]string, len(m.ids))
	for i, id := range m.ids {
		if i == m.cursor {
			tabs[i] = selectedStyle.Padding(0, 1).Render(string(id))
		} else {
			tabs[i] = dimStyle.Render(" " + string(id) + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.current())
	}
	return line
}

func (m *leaderboardScene) renderTableContent() string {
	if len(m.times) == 0 {
		return hintStyle.Padding(1, 2).Render("No times recorded yet.\nPlay a round to set the first one!")
	}
	return m.table.View()
}
