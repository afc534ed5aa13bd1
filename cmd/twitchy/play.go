package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/twitchy/internal/audio"
	"github.com/vovakirdan/twitchy/internal/core"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/logging"
	"github.com/vovakirdan/twitchy/internal/platform/tui"
	"github.com/vovakirdan/twitchy/internal/settings"
	"github.com/vovakirdan/twitchy/internal/trial"
)

var (
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Start the game at the main menu.

Controls:
  Space/Enter/Click - Start a trial, react to the cue
  P                 - Pause / resume (resuming abandons the trial)
  S                 - Toggle session statistics
  Esc/B             - Back to menu
  Left/Right        - Change difficulty in the menu
  Q/Ctrl+C          - Quit

Examples:
  twitchy play
  twitchy play --difficulty beast
  twitchy play --backend sqlite --data-dir ./data`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty to play (saved to settings)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound for this run")
}

func runPlay(_ *cobra.Command, _ []string) {
	// stderr belongs to the alt screen, so the session logs to a file.
	logger, logFile, err := logging.OpenFile(cfg.LogPath(), "twitchy", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger = log.New(os.Stderr)
		logger.SetLevel(log.ErrorLevel)
	} else {
		defer logFile.Close()
	}

	data, err := openGameData(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer data.Close()

	if flagDifficulty != "" {
		id := difficulty.ID(flagDifficulty)
		if !data.profiles.Has(id) {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
			fmt.Fprintln(os.Stderr, "Run 'twitchy difficulties' to see available difficulties.")
			os.Exit(1)
		}
		if err := data.settings.Set(settings.KeyDifficulty, string(id)); err != nil {
			logger.Warn("difficulty not saved", "err", err)
		}
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var notifier trial.Notifier = audio.Silent{}
	if !flagMute {
		player := audio.NewPlayer(data.settings, logger)
		if err := player.Init(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		} else {
			defer player.Close()
		}
		notifier = player
	}

	runErr := tui.Run(tui.Deps{
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.FPS,
			Seed:     cfg.Seed,
		},
		Profiles:     data.profiles,
		Ledger:       data.ledger,
		Achievements: data.achievements,
		Settings:     data.settings,
		Notifier:     notifier,
		Logger:       logger,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
