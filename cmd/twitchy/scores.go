package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twitchy/internal/ledger"
	"github.com/vovakirdan/twitchy/internal/logging"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show best times for a difficulty",
	Long: `Display the best reaction times for a difficulty. Without an argument
the difficulty from the settings is used.

Examples:
  twitchy scores
  twitchy scores hard
  twitchy scores normal --recent --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent attempts instead of the best times")
}

func runScores(_ *cobra.Command, args []string) {
	logger := logging.New(os.Stderr, "twitchy", cfg.LogLevel)
	data, err := openGameData(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer data.Close()

	id, err := data.resolveDifficulty(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	profile := data.profiles.Lookup(id)
	limit := flagScoresLimit
	if limit <= 0 {
		limit = ledger.MaxBestTimes
	}

	if flagScoresRecent {
		attempts := data.ledger.RecentAttempts(id, limit)
		fmt.Printf("Recent attempts - %s\n\n", profile.DisplayName())
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return
		}
		fmt.Printf("  %-19s  %-8s  %s\n", "When", "Time", "Rating")
		fmt.Printf("  %-19s  %-8s  %s\n", "----", "----", "------")
		for _, a := range attempts {
			fmt.Printf("  %-19.19s  %-8s  %s\n", a.Timestamp, fmt.Sprintf("%dms", a.TimeMS), profile.Rate(a.TimeMS).Label)
		}
		return
	}

	times := data.ledger.BestTimes(id, limit)
	fmt.Printf("Best Times - %s\n\n", profile.DisplayName())
	if len(times) == 0 {
		fmt.Println("No times recorded yet.")
		fmt.Println()
		fmt.Println("Run 'twitchy play' to set the first one!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %s\n", "Rank", "Time", "Rating")
	fmt.Printf("  %-4s  %-8s  %s\n", "----", "----", "------")
	for i, ms := range times {
		fmt.Printf("  %-4d  %-8s  %s\n", i+1, fmt.Sprintf("%dms", ms), profile.Rate(ms).Label)
	}

	stats := data.ledger.Statistics(id)
	fmt.Println()
	fmt.Printf("Attempts: %d  Best: %s  Average: %s\n",
		stats.TotalAttempts, formatMS(stats.BestTime), formatAverage(stats.AverageTime))
}

func formatMS(ms *int) string {
	if ms == nil {
		return "-"
	}
	return fmt.Sprintf("%dms", *ms)
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.1fms", *avg)
}
