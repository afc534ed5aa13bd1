package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/audio"
	"github.com/vovakirdan/twitchy/internal/core"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/ledger"
	"github.com/vovakirdan/twitchy/internal/settings"
	"github.com/vovakirdan/twitchy/internal/storage"
	"github.com/vovakirdan/twitchy/internal/trial"
)

type sceneID int

const (
	sceneStay sceneID = iota
	sceneMenu
	scenePlay
	sceneLeaderboard
	sceneAchievements
	sceneSettings
	sceneQuit
)

// scene is one screen of the app. Update returns the scene to switch to,
// or sceneStay.
type scene interface {
	enter()
	exit()
	update(msg tea.Msg) (sceneID, tea.Cmd)
	resize(width, height int)
	view() string
}

// Deps are the collaborators shared by every scene.
type Deps struct {
	Config       core.RuntimeConfig
	Profiles     *difficulty.Table
	Ledger       *ledger.Ledger
	Achievements *achievement.Tracker
	Settings     *settings.Provider
	Notifier     trial.Notifier
	Clock        core.Clock
	Random       core.Random
	Logger       *log.Logger
}

func (d *Deps) fill() {
	if d.Config.TickRate <= 0 {
		d.Config.TickRate = core.DefaultConfig().TickRate
	}
	if d.Profiles == nil {
		d.Profiles = difficulty.DefaultTable()
	}
	if d.Notifier == nil {
		d.Notifier = audio.Silent{}
	}
	if d.Clock == nil {
		d.Clock = core.SystemClock{}
	}
	if d.Random == nil {
		d.Random = core.NewRandom(d.Config.Seed)
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	// Without persistence the game still runs; scores live in memory.
	if d.Settings == nil {
		d.Settings = settings.Load(storage.NewMemStore(), d.Logger)
	}
	if d.Achievements == nil {
		d.Achievements = achievement.NewTracker(storage.NewMemStore(), d.Logger)
	}
	if d.Ledger == nil {
		d.Ledger = ledger.New(ledger.Config{
			Store:        storage.NewMemStore(),
			Achievements: d.Achievements,
			Clock:        d.Clock,
			Logger:       d.Logger,
		})
	}
}

// App is the top-level Bubble Tea model: it owns the scenes and the tick
// loop and routes input to the active scene.
type App struct {
	deps     Deps
	keys     *KeyMapper
	scenes   map[sceneID]scene
	current  sceneID
	width    int
	height   int
	quitting bool
}

// NewApp creates the app showing the main menu.
func NewApp(deps Deps) App {
	deps.fill()
	keys := NewKeyMapper()

	machine := trial.New(trial.Config{
		Clock:      deps.Clock,
		Random:     deps.Random,
		Profiles:   deps.Profiles,
		Difficulty: deps.Settings,
		Recorder:   deps.Ledger,
		Notifier:   deps.Notifier,
		Logger:     deps.Logger,
	})

	a := App{
		deps: deps,
		keys: keys,
		scenes: map[sceneID]scene{
			sceneMenu:         newMenuScene(&deps, keys),
			scenePlay:         newPlayScene(&deps, keys, machine),
			sceneLeaderboard:  newLeaderboardScene(&deps),
			sceneAchievements: newAchievementsScene(&deps, keys),
			sceneSettings:     newSettingsScene(&deps, keys),
		},
		current: sceneMenu,
		width:   deps.Config.ScreenW,
		height:  deps.Config.ScreenH,
	}
	for _, s := range a.scenes {
		s.resize(a.width, a.height)
	}
	a.scenes[a.current].enter()
	return a
}

// Init starts the tick loop.
func (a App) Init() tea.Cmd {
	return tickCmd(a.deps.Config.TickRate)
}

// Update handles messages and updates the model state.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, s := range a.scenes {
			s.resize(msg.Width, msg.Height)
		}
		return a, nil

	case TickMsg:
		_, cmd := a.scenes[a.current].update(msg)
		return a, tea.Batch(cmd, tickCmd(a.deps.Config.TickRate))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
	}

	next, cmd := a.scenes[a.current].update(msg)
	switch next {
	case sceneStay:
	case sceneQuit:
		a.quitting = true
		return a, tea.Quit
	default:
		a.scenes[a.current].exit()
		a.current = next
		a.scenes[next].enter()
	}
	return a, cmd
}

// View renders the active scene.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	return a.scenes[a.current].view()
}

// Run starts the Bubble Tea program on the local terminal.
func Run(deps Deps) error {
	p := tea.NewProgram(
		NewApp(deps),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click is a trial input
	)
	_, err := p.Run()
	return err
}
