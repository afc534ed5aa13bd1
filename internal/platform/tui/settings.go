package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twitchy/internal/core"
	"github.com/vovakirdan/twitchy/internal/settings"
)

const volumeStep = 0.1

type settingsRow int

const (
	rowDifficulty settingsRow = iota
	rowSFX
	rowVolume
	rowStatistics
	rowReset
	rowCount
)

// settingsScene edits the settings document. Every change is saved
// immediately.
type settingsScene struct {
	deps   *Deps
	keys   *KeyMapper
	cursor settingsRow
	width  int
	height int
	status string
}

func newSettingsScene(deps *Deps, keys *KeyMapper) *settingsScene {
	return &settingsScene{deps: deps, keys: keys}
}

func (s *settingsScene) enter() {
	s.cursor = rowDifficulty
	s.status = ""
}

func (s *settingsScene) exit() {}

func (s *settingsScene) resize(width, height int) {
	s.width = width
	s.height = height
}

func (s *settingsScene) update(msg tea.Msg) (sceneID, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return sceneStay, nil
	}

	action, isQuit := s.keys.MapMenuKey(key)
	if isQuit {
		return sceneQuit, nil
	}

	switch action {
	case core.ActionUp:
		if s.cursor > 0 {
			s.cursor--
		}
	case core.ActionDown:
		if s.cursor < rowCount-1 {
			s.cursor++
		}
	case core.ActionLeft:
		s.change(-1)
	case core.ActionRight, core.ActionConfirm:
		s.change(1)
	case core.ActionBack:
		return sceneMenu, nil
	}
	return sceneStay, nil
}

// change adjusts the selected row by one step in direction dir.
func (s *settingsScene) change(dir int) {
	p := s.deps.Settings
	var err error
	switch s.cursor {
	case rowDifficulty:
		err = p.Set(settings.KeyDifficulty, string(s.deps.Profiles.Next(p.Difficulty(), dir)))
	case rowSFX:
		err = p.Set(settings.KeySFXEnabled, !p.SFXEnabled())
	case rowVolume:
		v := p.SoundVolume() + float64(dir)*volumeStep
		v = math.Round(math.Max(0, math.Min(1, v))*10) / 10
		err = p.Set(settings.KeySoundVolume, v)
	case rowStatistics:
		err = p.Set(settings.KeyShowStatistics, !p.ShowStatistics())
	case rowReset:
		err = p.Reset()
		if err == nil {
			s.status = "Settings restored to defaults"
		}
	}
	if err != nil {
		s.status = "settings not saved: " + err.Error()
		return
	}
	s.deps.Notifier.Play(core.CueMenuSelect)
}

func (s *settingsScene) rows() []string {
	p := s.deps.Settings
	onOff := func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	}
	return []string{
		fmt.Sprintf("Difficulty       < %s >", s.deps.Profiles.Lookup(p.Difficulty()).DisplayName()),
		fmt.Sprintf("Sound effects    < %s >", onOff(p.SFXEnabled())),
		fmt.Sprintf("Volume           < %3.0f%% >", p.SoundVolume()*100),
		fmt.Sprintf("Show statistics  < %s >", onOff(p.ShowStatistics())),
		"Reset to defaults",
	}
}

func (s *settingsScene) view() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SETTINGS"), s.width))
	b.WriteString("\n\n")

	var body strings.Builder
	for i, row := range s.rows() {
		if settingsRow(i) == s.cursor {
			body.WriteString(selectedStyle.Render("> " + row))
		} else {
			body.WriteString("  " + row)
		}
		body.WriteString("\n")
	}
	b.WriteString(centerText(panelStyle.Render(strings.TrimRight(body.String(), "\n")), s.width))
	b.WriteString("\n\n")

	if s.status != "" {
		b.WriteString(centerText(hintStyle.Render(s.status), s.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(dimStyle.Render("↑/↓ select • ←/→ change • esc back"), s.width))
	return b.String()
}
