package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/twitchy/internal/difficulty"
)

// Reaction area colors per trial phase.
var (
	colorIdle    = lipgloss.Color("24")  // dark blue
	colorArmed   = lipgloss.Color("124") // red
	colorWarning = lipgloss.Color("214") // amber
	colorFake    = lipgloss.Color("30")  // teal, close enough to fool the eye
	colorCued    = lipgloss.Color("34")  // green
	colorPaused  = lipgloss.Color("238")
	colorScored  = lipgloss.Color("236")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// levelStyles maps a rating level to the color of its label.
var levelStyles = map[difficulty.Level]lipgloss.Style{
	difficulty.LevelExcellent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	difficulty.LevelGood:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
	difficulty.LevelAverage:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	difficulty.LevelPoor:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
	difficulty.LevelMeh:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	difficulty.LevelTerrible:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
}

func levelStyle(l difficulty.Level) lipgloss.Style {
	if s, ok := levelStyles[l]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// reactionArea renders the big colored block the player watches.
func reactionArea(bg lipgloss.Color, width, height int, lines ...string) string {
	if width < 20 {
		width = 20
	}
	if height < 5 {
		height = 5
	}
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(strings.Join(lines, "\n"))
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

func formatMS(ms *int) string {
	if ms == nil {
		return "--"
	}
	return fmt.Sprintf("%d ms", *ms)
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "--"
	}
	return fmt.Sprintf("%.1f ms", *avg)
}

func formatSeconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1f", d.Seconds())
}
