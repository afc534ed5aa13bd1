// twitchy is a terminal reaction-time game: wait for the cue, react, and
// see how your reflexes rate on each difficulty.
//
// Usage:
//
//	twitchy play                 - Play (menu, trials, leaderboard, settings)
//	twitchy scores [difficulty]  - Show best times
//	twitchy stats                - Show statistics for every difficulty
//	twitchy achievements         - List achievements
//	twitchy difficulties         - List difficulty profiles
//	twitchy reset                - Clear all scores, achievements and settings
//	twitchy serve                - Serve the game over SSH (and the HTTP API)
//
// Global flags:
//
//	--data-dir <dir>      - Where scores, settings and achievements live
//	--backend json|sqlite - Storage backend
//	--profiles <path>     - Custom difficulty profiles YAML
//	--fps <rate>          - Tick rate (default: 60)
//	--seed <value>        - RNG seed for reproducible waits
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twitchy/internal/config"
)

var (
	// Global flags
	flagDataDir  string
	flagBackend  string
	flagProfiles string
	flagFPS      int
	flagSeed     int64
	flagLogLevel string

	// cfg is resolved before any subcommand runs.
	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "twitchy",
	Short: "Twitchy - test your reaction time in the terminal",
	Long: `Twitchy is a reaction-time game. Press space to start a trial, wait
for the screen to turn green, then react as fast as you can. Pressing
too soon disqualifies the trial.

Available commands:
  play          - Start the game
  scores        - View best times
  stats         - View statistics
  achievements  - View achievements
  difficulties  - List difficulty profiles
  reset         - Clear all data
  serve         - Start SSH server for remote play

Examples:
  twitchy play
  twitchy play --difficulty hard
  twitchy scores beast
  twitchy serve --ssh :2222 --http :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: resolveConfig,
}

func init() {
	defaults := config.DefaultDataDir()

	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", defaults, "Directory for scores, settings and achievements")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", config.DefaultBackend, "Storage backend: json or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagProfiles, "profiles", "", "Path to custom difficulty profiles YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", config.DefaultFPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(difficultiesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveConfig loads the environment configuration, then applies the
// flags the user actually set on top of it.
func resolveConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		loaded.DataDir = flagDataDir
	}
	if flags.Changed("backend") {
		loaded.Backend = flagBackend
	}
	if flags.Changed("profiles") {
		loaded.ProfilesPath = flagProfiles
	}
	if flags.Changed("fps") {
		loaded.FPS = flagFPS
	}
	if flags.Changed("seed") {
		loaded.Seed = flagSeed
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = flagLogLevel
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	return nil
}
