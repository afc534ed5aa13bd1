package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twitchy/internal/core"
)

type achievementsScene struct {
	deps   *Deps
	keys   *KeyMapper
	width  int
	height int
}

func newAchievementsScene(deps *Deps, keys *KeyMapper) *achievementsScene {
	return &achievementsScene{deps: deps, keys: keys}
}

func (a *achievementsScene) enter() {}

func (a *achievementsScene) exit() {}

func (a *achievementsScene) resize(width, height int) {
	a.width = width
	a.height = height
}

func (a *achievementsScene) update(msg tea.Msg) (sceneID, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return sceneStay, nil
	}
	action, isQuit := a.keys.MapMenuKey(key)
	switch {
	case isQuit:
		return sceneQuit, nil
	case action == core.ActionBack, action == core.ActionConfirm:
		return sceneMenu, nil
	}
	return sceneStay, nil
}

func (a *achievementsScene) view() string {
	list := a.deps.Achievements.List()
	unlocked := 0
	var body strings.Builder
	for _, s := range list {
		mark := dimStyle.Render("[ ]")
		name := dimStyle.Render(s.Name)
		if s.Unlocked {
			unlocked++
			mark = "[x]"
			name = titleStyle.Render(s.Name)
		}
		fmt.Fprintf(&body, "%s %s %s\n    %s\n", mark, s.Icon, name, hintStyle.Render(s.Description))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("ACHIEVEMENTS"), a.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("%d of %d unlocked", unlocked, len(list))), a.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(panelStyle.Render(strings.TrimRight(body.String(), "\n")), a.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("esc back • q quit"), a.width))
	return b.String()
}
