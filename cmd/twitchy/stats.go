package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twitchy/internal/ledger"
	"github.com/vovakirdan/twitchy/internal/logging"
)

var flagStatsDate string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for every difficulty",
	Long: `Display attempts, best and average time for every difficulty, the
overall totals, and the daily breakdown for one day (today by default).

Examples:
  twitchy stats
  twitchy stats --date 2024-03-09`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsDate, "date", "", "Day for the daily breakdown (YYYY-MM-DD)")
}

func runStats(_ *cobra.Command, _ []string) {
	logger := logging.New(os.Stderr, "twitchy", cfg.LogLevel)
	data, err := openGameData(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer data.Close()

	date := flagStatsDate
	if date == "" {
		date = data.ledger.Today()
	} else if _, err := time.Parse(ledger.DateLayout, date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid date %q, want YYYY-MM-DD\n", date)
		os.Exit(1)
	}

	fmt.Println("Statistics")
	fmt.Println()
	fmt.Printf("  %-12s  %-8s  %-8s  %s\n", "Difficulty", "Attempts", "Best", "Average")
	fmt.Printf("  %-12s  %-8s  %-8s  %s\n", "----------", "--------", "----", "-------")
	for _, ds := range data.ledger.AllStatistics() {
		s := ds.Statistics
		fmt.Printf("  %-12s  %-8d  %-8s  %s\n", ds.Difficulty, s.TotalAttempts, formatMS(s.BestTime), formatAverage(s.AverageTime))
	}

	overall := data.ledger.OverallStatistics()
	fmt.Println()
	fmt.Printf("Total attempts: %d\n", overall.TotalAttempts)
	fmt.Printf("Favorite difficulty: %s\n", overall.FavoriteDifficulty)

	fmt.Println()
	fmt.Printf("Daily - %s\n", date)
	found := false
	for _, id := range data.ledger.Difficulties() {
		daily, ok := data.ledger.DailyStats(id, date)
		if !ok {
			continue
		}
		found = true
		fmt.Printf("  %-12s  %d attempts, best %dms, average %.1fms, total %dms\n",
			id, daily.Attempts, daily.BestTime, daily.AverageTime, daily.TotalTime)
	}
	if !found {
		fmt.Println("  No attempts on this day.")
	}
}
