package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/core"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/trial"
)

// playScene drives one trial machine. The trial input is applied as soon
// as the key arrives; everything else waits for the next tick.
type playScene struct {
	deps      *Deps
	keys      *KeyMapper
	machine   *trial.Machine
	frame     core.InputFrame
	showStats bool
	width     int
	height    int
}

func newPlayScene(deps *Deps, keys *KeyMapper, machine *trial.Machine) *playScene {
	return &playScene{
		deps:    deps,
		keys:    keys,
		machine: machine,
		frame:   core.NewInputFrame(),
	}
}

func (p *playScene) enter() {
	p.machine.Enter()
	p.frame.Clear()
	p.showStats = p.deps.Settings.ShowStatistics()
}

// exit logs the session summary; the ledger already holds every attempt.
func (p *playScene) exit() {
	s := p.machine.Snapshot().Session
	if s.Attempts == 0 {
		return
	}
	best := 0
	if s.Best != nil {
		best = *s.Best
	}
	p.deps.Logger.Info("session ended", "attempts", s.Attempts, "best_ms", best)
}

func (p *playScene) resize(width, height int) {
	p.width = width
	p.height = height
}

func (p *playScene) update(msg tea.Msg) (sceneID, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action, isQuit := p.keys.MapPlayKey(msg)
		if isQuit {
			return sceneQuit, nil
		}
		switch action {
		case core.ActionReact:
			p.machine.Input()
		case core.ActionBack:
			return sceneMenu, nil
		case core.ActionNone:
		default:
			p.frame.Set(action)
		}

	case tea.MouseMsg:
		if p.keys.MapMouse(msg) == core.ActionReact {
			p.machine.Input()
		}

	case TickMsg:
		p.tick()
	}
	return sceneStay, nil
}

func (p *playScene) tick() {
	if p.frame.Has(core.ActionPause) {
		p.machine.TogglePause()
	}
	if p.frame.Has(core.ActionStats) {
		p.showStats = !p.showStats
	}
	p.frame.Clear()
	p.machine.Update()
}

func (p *playScene) view() string {
	v := p.machine.Snapshot()

	areaW := p.width - 4
	areaH := p.height - 10
	if p.showStats {
		areaH -= 3
	}

	var b strings.Builder
	header := fmt.Sprintf("%s  •  wait %.1fs-%.1fs", v.Profile.DisplayName(), v.Profile.MinWait, v.Profile.MaxWait)
	b.WriteString(centerText(titleStyle.Render(header), p.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(p.area(v, areaW, areaH), p.width))
	b.WriteString("\n")

	if v.Phase == trial.PhaseIdle {
		for _, line := range idleHints(v.Profile) {
			b.WriteString(centerText(hintStyle.Render(line), p.width))
			b.WriteString("\n")
		}
	}
	if p.showStats {
		b.WriteString(centerText(statsPanel(v), p.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(dimStyle.Render("space/click react • p pause • s stats • esc menu • q quit"), p.width))
	return b.String()
}

// area renders the reaction block for the current phase.
func (p *playScene) area(v trial.View, w, h int) string {
	switch v.Phase {
	case trial.PhaseArmed:
		if v.FakeCue {
			return reactionArea(colorFake, w, h, "!!!")
		}
		lines := []string{"WAIT..."}
		if v.ShowCountdown {
			lines = append(lines, "", formatSeconds(v.Remaining))
		}
		if v.Warning {
			return reactionArea(colorWarning, w, h, append(lines, "", "GET READY!")...)
		}
		return reactionArea(colorArmed, w, h, lines...)

	case trial.PhaseCued:
		return reactionArea(colorCued, w, h, "CLICK!")

	case trial.PhaseScored:
		return reactionArea(colorScored, w, h, resultLines(v.Last)...)

	case trial.PhasePaused:
		lines := []string{"PAUSED", "", "press p to resume"}
		if v.ShowCountdown {
			lines = append(lines, "", formatSeconds(v.Remaining)+"s left")
		}
		return reactionArea(colorPaused, w, h, lines...)

	default:
		return reactionArea(colorIdle, w, h, "READY?", "", "press SPACE when ready")
	}
}

func resultLines(r *trial.Result) []string {
	if r == nil {
		return nil
	}
	label := levelStyle(r.Rating.Level).Render(r.Rating.Label)
	if r.Outcome == trial.OutcomeTooSoon {
		return []string{label, "", r.Message, "", "space to try again"}
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d ms", r.ReactionMS)),
		"",
		label,
		r.Message,
	}
	for _, id := range r.Unlocked {
		if a, ok := achievement.Lookup(id); ok {
			lines = append(lines, "", fmt.Sprintf("%s Achievement unlocked: %s", a.Icon, a.Name))
		}
	}
	return append(lines, "", "space for another round")
}

func idleHints(p difficulty.Profile) []string {
	hints := []string{"Wait for GREEN, then react FAST!"}
	if p.CountdownEnabled {
		hints = append(hints, "TIP: you'll see a countdown timer")
	}
	if p.FakeSignals {
		hints = append(hints, "WARNING: watch out for fake signals")
	}
	if p.PracticeMode {
		hints = append(hints,
			"Pressing before green counts as too soon and is not scored",
			fmt.Sprintf("Excellent is %d ms or less", excellentCeiling(p)),
		)
	}
	return hints
}

func excellentCeiling(p difficulty.Profile) int {
	if len(p.Thresholds) == 0 {
		return 0
	}
	return p.Thresholds[0].CeilingMS
}

func statsPanel(v trial.View) string {
	s := v.Session
	return panelStyle.Render(fmt.Sprintf("Session  attempts %d  •  best %s  •  average %s",
		s.Attempts, formatMS(s.Best), formatAverage(s.Average)))
}
