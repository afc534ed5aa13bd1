package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twitchy/internal/core"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/settings"
)

// MenuItem is one entry of the main menu.
type MenuItem struct {
	Title  string
	Target sceneID
}

func defaultMenuItems() []MenuItem {
	return []MenuItem{
		{Title: "Play", Target: scenePlay},
		{Title: "Leaderboard", Target: sceneLeaderboard},
		{Title: "Achievements", Target: sceneAchievements},
		{Title: "Settings", Target: sceneSettings},
		{Title: "Quit", Target: sceneQuit},
	}
}

// menuScene is the main menu. Left/right cycles the difficulty in place.
type menuScene struct {
	deps   *Deps
	keys   *KeyMapper
	items  []MenuItem
	cursor int
	width  int
	height int
	status string
}

func newMenuScene(deps *Deps, keys *KeyMapper) *menuScene {
	return &menuScene{deps: deps, keys: keys, items: defaultMenuItems()}
}

func (m *menuScene) enter() {
	m.status = ""
}

func (m *menuScene) exit() {}

func (m *menuScene) resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *menuScene) update(msg tea.Msg) (sceneID, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return sceneStay, nil
	}

	action, isQuit := m.keys.MapMenuKey(key)
	if isQuit {
		return sceneQuit, nil
	}

	switch action {
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case core.ActionLeft:
		m.cycleDifficulty(-1)
	case core.ActionRight:
		m.cycleDifficulty(1)
	case core.ActionConfirm:
		m.deps.Notifier.Play(core.CueMenuSelect)
		return m.items[m.cursor].Target, nil
	case core.ActionBack:
		return sceneQuit, nil
	}
	return sceneStay, nil
}

func (m *menuScene) cycleDifficulty(step int) {
	next := m.deps.Profiles.Next(m.deps.Settings.Difficulty(), step)
	if err := m.deps.Settings.Set(settings.KeyDifficulty, string(next)); err != nil {
		m.status = "settings not saved: " + err.Error()
	}
}

func (m *menuScene) view() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  T W I T C H Y  "), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("wait for green, then react"), m.width))
	b.WriteString("\n\n")

	profile := m.deps.Profiles.Lookup(m.deps.Settings.Difficulty())
	b.WriteString(centerText(fmt.Sprintf("Difficulty:  < %s >", profile.DisplayName()), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title + "  "
		if i == m.cursor {
			line = selectedStyle.Render("> " + item.Title + "  ")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.summary(profile), m.width))
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(centerText(errorStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(hintStyle.Render("↑/↓ select • ←/→ difficulty • enter confirm • q quit"), m.width))
	return b.String()
}

// summary is the one-line record for the selected difficulty.
func (m *menuScene) summary(p difficulty.Profile) string {
	stats := m.deps.Ledger.Statistics(p.ID)
	if stats.TotalAttempts == 0 {
		return dimStyle.Render("No attempts yet on " + p.DisplayName())
	}
	return dimStyle.Render(fmt.Sprintf("Best %s • Average %s • %d attempts",
		formatMS(stats.BestTime), formatAverage(stats.AverageTime), stats.TotalAttempts))
}
