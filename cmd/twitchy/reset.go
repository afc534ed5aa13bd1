package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twitchy/internal/logging"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all scores, achievements and settings",
	Long: `Delete every recorded attempt, unlocked achievement and saved setting.
This cannot be undone.

Examples:
  twitchy reset
  twitchy reset --yes`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(_ *cobra.Command, _ []string) {
	if !flagResetYes && !confirm("Delete all twitchy data in "+cfg.DataDir+"? [y/N] ") {
		fmt.Println("Aborted.")
		return
	}

	logger := logging.New(os.Stderr, "twitchy", cfg.LogLevel)
	data, err := openGameData(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer data.Close()

	failed := false
	if err := data.ledger.Clear(); err != nil {
		logger.Error("cannot clear scores", "err", err)
		failed = true
	}
	if err := data.achievements.Clear(); err != nil {
		logger.Error("cannot clear achievements", "err", err)
		failed = true
	}
	if err := data.settings.Reset(); err != nil {
		logger.Error("cannot reset settings", "err", err)
		failed = true
	}
	if failed {
		os.Exit(1)
	}
	fmt.Println("All data cleared.")
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
