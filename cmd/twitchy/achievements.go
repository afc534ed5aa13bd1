package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twitchy/internal/logging"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and which are unlocked",
	Args:  cobra.NoArgs,
	Run:   runAchievements,
}

func runAchievements(_ *cobra.Command, _ []string) {
	logger := logging.New(os.Stderr, "twitchy", cfg.LogLevel)
	data, err := openGameData(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer data.Close()

	list := data.achievements.List()
	unlocked := 0
	for _, s := range list {
		mark := "[ ]"
		if s.Unlocked {
			mark = "[x]"
			unlocked++
		}
		fmt.Printf("  %s %s %-22s %s\n", mark, s.Icon, s.Name, s.Description)
	}
	fmt.Println()
	fmt.Printf("%d of %d unlocked\n", unlocked, len(list))
}
