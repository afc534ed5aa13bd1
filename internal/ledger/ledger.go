// Package ledger is the durable per-difficulty history of scored attempts
// with its derived statistics. It is the only writer of the scores document.
package ledger

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/core"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/metrics"
	"github.com/vovakirdan/twitchy/internal/storage"
)

// Checker is run after every recorded attempt. *achievement.Tracker
// implements it.
type Checker interface {
	Check(latestMS int, v achievement.View) []achievement.ID
}

// Config holds the ledger collaborators. Only Store is required.
type Config struct {
	Store        storage.Store
	Achievements Checker
	Clock        core.Clock
	Logger       *log.Logger
}

// Ledger keeps the scores document in memory and writes it through to the
// store after every change. Safe for concurrent use.
type Ledger struct {
	mu           sync.Mutex
	store        storage.Store
	achievements Checker
	clock        core.Clock
	logger       *log.Logger
	doc          Document
}

// New loads the scores document from the store. Missing or corrupt data
// yields an empty ledger; an old single-list file is migrated and saved.
func New(cfg Config) *Ledger {
	l := &Ledger{
		store:        cfg.Store,
		achievements: cfg.Achievements,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
	}
	if l.clock == nil {
		l.clock = core.SystemClock{}
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	l.load()
	return l
}

// Record appends a successful reaction to the difficulty's history,
// refreshes the statistics, persists the document and runs the achievement
// rules. It returns the newly unlocked achievements.
func (l *Ledger) Record(timeMS int, d difficulty.ID) []achievement.ID {
	if timeMS < 0 {
		l.logger.Warn("negative reaction time clamped", "time_ms", timeMS)
		timeMS = 0
	}
	if d == "" {
		d = difficulty.Normal
	}

	l.mu.Lock()
	dl := l.doc.ByDifficulty[d]
	if dl == nil {
		dl = newDifficultyLedger()
		l.doc.ByDifficulty[d] = dl
	}

	now := l.clock.Now()
	dl.AllAttempts = append(dl.AllAttempts, Attempt{
		TimeMS:     timeMS,
		Timestamp:  now.Format(timestampLayout),
		Date:       now.Format(DateLayout),
		Difficulty: d,
	})
	dl.Statistics.TotalAttempts++
	dl.recompute()
	l.doc.updateOverall()
	l.persist()

	view := achievement.View{
		TotalAttempts: dl.Statistics.TotalAttempts,
		RecentTimes:   dl.times(),
	}
	l.mu.Unlock()

	if l.achievements == nil {
		return nil
	}
	return l.achievements.Check(timeMS, view)
}

// Recompute rebuilds every derived field from the retained attempts and
// saves the result. Calling it repeatedly changes nothing.
func (l *Ledger) Recompute() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc.recompute()
	l.persist()
}

// Clear drops all history and saves the empty document.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc = newDocument()
	return l.write()
}

// persist writes the document; failures are logged and the in-memory state
// stays authoritative until the next successful write.
func (l *Ledger) persist() {
	if err := l.write(); err != nil {
		metrics.LedgerWritesTotal.WithLabelValues("error").Inc()
		l.logger.Error("cannot save scores", "err", err)
		return
	}
	metrics.LedgerWritesTotal.WithLabelValues("ok").Inc()
}

func (l *Ledger) write() error {
	data, err := json.MarshalIndent(l.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("ledger: encode: %w", err)
	}
	if err := l.store.Write(storage.KeyScores, data); err != nil {
		return fmt.Errorf("ledger: save: %w", err)
	}
	return nil
}

// BestTimes returns up to limit best times, ascending. limit <= 0 means all.
func (l *Ledger) BestTimes(d difficulty.ID, limit int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	dl := l.doc.ByDifficulty[d]
	if dl == nil {
		return []int{}
	}
	n := len(dl.BestTimes)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]int{}, dl.BestTimes[:n]...)
}

// RecentAttempts returns up to limit most recent attempts, oldest first.
// limit <= 0 means all retained attempts.
func (l *Ledger) RecentAttempts(d difficulty.ID, limit int) []Attempt {
	l.mu.Lock()
	defer l.mu.Unlock()
	dl := l.doc.ByDifficulty[d]
	if dl == nil {
		return []Attempt{}
	}
	start := 0
	if limit > 0 && limit < len(dl.AllAttempts) {
		start = len(dl.AllAttempts) - limit
	}
	return append([]Attempt{}, dl.AllAttempts[start:]...)
}

// Statistics returns the aggregates for d; zero values for an unknown one.
func (l *Ledger) Statistics(d difficulty.ID) Statistics {
	l.mu.Lock()
	defer l.mu.Unlock()
	if dl := l.doc.ByDifficulty[d]; dl != nil {
		return dl.Statistics.clone()
	}
	return Statistics{}
}

// OverallStatistics returns the totals across difficulties.
func (l *Ledger) OverallStatistics() OverallStatistics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Overall
}

// DifficultyStatistics pairs a difficulty with its statistics.
type DifficultyStatistics struct {
	Difficulty difficulty.ID `json:"difficulty"`
	Statistics
}

// AllStatistics returns statistics for every difficulty in display order.
func (l *Ledger) AllStatistics() []DifficultyStatistics {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.doc.ids()
	out := make([]DifficultyStatistics, 0, len(ids))
	for _, id := range ids {
		out = append(out, DifficultyStatistics{Difficulty: id, Statistics: l.doc.ByDifficulty[id].Statistics.clone()})
	}
	return out
}

// DailyStats is the rollup of one calendar day.
type DailyStats struct {
	Date        string        `json:"date"`
	Difficulty  difficulty.ID `json:"difficulty"`
	Attempts    int           `json:"attempts"`
	BestTime    int           `json:"best_time"`
	AverageTime float64       `json:"average_time"`
	TotalTime   int           `json:"total_time"`
}

// DailyStats rolls up the retained attempts made on date (DateLayout).
// ok is false when there were none.
func (l *Ledger) DailyStats(d difficulty.ID, date string) (DailyStats, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dl := l.doc.ByDifficulty[d]
	if dl == nil {
		return DailyStats{}, false
	}

	ds := DailyStats{Date: date, Difficulty: d}
	for _, a := range dl.AllAttempts {
		if a.Date != date {
			continue
		}
		if ds.Attempts == 0 || a.TimeMS < ds.BestTime {
			ds.BestTime = a.TimeMS
		}
		ds.Attempts++
		ds.TotalTime += a.TimeMS
	}
	if ds.Attempts == 0 {
		return DailyStats{}, false
	}
	ds.AverageTime = float64(ds.TotalTime) / float64(ds.Attempts)
	return ds, true
}

// Today returns the current date in DateLayout, by the ledger's clock.
func (l *Ledger) Today() string {
	return l.clock.Now().Format(DateLayout)
}

// Difficulties lists the difficulties with a history, in display order.
func (l *Ledger) Difficulties() []difficulty.ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.ids()
}
