package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/logging"
)

var flagDumpYAML bool

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List difficulty profiles",
	Long: `Shows the wait range, helpers and rating thresholds of each difficulty.

Profiles come from --profiles, ~/.twitchy/profiles.yaml or
./configs/profiles.yaml, falling back to the built-in set. Use --yaml to
print the built-in profiles as a starting point for a custom file.`,
	Args: cobra.NoArgs,
	Run:  runDifficulties,
}

func init() {
	difficultiesCmd.Flags().BoolVar(&flagDumpYAML, "yaml", false, "Print the built-in profiles as YAML")
}

func runDifficulties(_ *cobra.Command, _ []string) {
	if flagDumpYAML {
		os.Stdout.Write(difficulty.DefaultYAML())
		return
	}

	logger := logging.New(os.Stderr, "twitchy", cfg.LogLevel)
	table, err := difficulty.Load(cfg.ProfilesPath)
	if err != nil {
		logger.Warn("could not load difficulty profiles, using defaults", "err", err)
		table = difficulty.DefaultTable()
	}

	fmt.Println("Difficulties:")
	fmt.Println()
	for _, p := range table.Profiles() {
		fmt.Printf("  %-12s %s\n", p.ID, p.DisplayName())
		fmt.Printf("    wait %.1fs-%.1fs", p.MinWait, p.MaxWait)
		if p.WarningTime > 0 {
			fmt.Printf(", warning %.1fs before the cue", p.WarningTime)
		}
		if p.CountdownEnabled {
			fmt.Print(", countdown")
		}
		if p.PracticeMode {
			fmt.Print(", practice hints")
		}
		if p.FakeSignals {
			fmt.Print(", fake signals")
		}
		fmt.Println()
		fmt.Print("    ")
		for i, t := range p.Thresholds {
			if i > 0 {
				fmt.Print("  ")
			}
			fmt.Printf("%s <=%dms", t.Level, t.CeilingMS)
		}
		fmt.Println()
		if err := p.Validate(); err != nil {
			fmt.Printf("    invalid: %v (trials use a 2.0s-5.0s wait)\n", err)
		}
	}
}
