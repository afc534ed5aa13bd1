package ledger

import (
	"sort"

	"github.com/vovakirdan/twitchy/internal/difficulty"
)

// Retention limits per difficulty.
const (
	MaxAttempts  = 500
	MaxBestTimes = 20
)

// DateLayout is the calendar date format of Attempt.Date.
const DateLayout = "2006-01-02"

// timestampLayout matches the ISO timestamps of older score files.
const timestampLayout = "2006-01-02T15:04:05.000000"

// Attempt is one scored reaction. Disqualified trials never become attempts.
type Attempt struct {
	TimeMS     int           `json:"time_ms"`
	Timestamp  string        `json:"timestamp"`
	Date       string        `json:"date"`
	Difficulty difficulty.ID `json:"difficulty"`
}

// Statistics are the derived aggregates of one difficulty. BestTime and
// AverageTime are nil until something is recorded.
type Statistics struct {
	TotalAttempts int      `json:"total_attempts"`
	BestTime      *int     `json:"best_time"`
	AverageTime   *float64 `json:"average_time"`
}

func (s Statistics) clone() Statistics {
	out := Statistics{TotalAttempts: s.TotalAttempts}
	if s.BestTime != nil {
		v := *s.BestTime
		out.BestTime = &v
	}
	if s.AverageTime != nil {
		v := *s.AverageTime
		out.AverageTime = &v
	}
	return out
}

// DifficultyLedger is the history of one difficulty.
type DifficultyLedger struct {
	BestTimes   []int      `json:"best_times"`
	AllAttempts []Attempt  `json:"all_attempts"`
	Statistics  Statistics `json:"statistics"`
}

func newDifficultyLedger() *DifficultyLedger {
	return &DifficultyLedger{BestTimes: []int{}, AllAttempts: []Attempt{}}
}

func (dl *DifficultyLedger) times() []int {
	out := make([]int, len(dl.AllAttempts))
	for i, a := range dl.AllAttempts {
		out[i] = a.TimeMS
	}
	return out
}

// recompute derives average and best times from the retained attempts.
// TotalAttempts and BestTime are lifetime values and only ever grow
// toward what the retained attempts prove.
func (dl *DifficultyLedger) recompute() {
	if dl.BestTimes == nil {
		dl.BestTimes = []int{}
	}
	if dl.AllAttempts == nil {
		dl.AllAttempts = []Attempt{}
	}
	if len(dl.AllAttempts) > MaxAttempts {
		dl.AllAttempts = append([]Attempt(nil), dl.AllAttempts[len(dl.AllAttempts)-MaxAttempts:]...)
	}

	st := &dl.Statistics
	if st.TotalAttempts < len(dl.AllAttempts) {
		st.TotalAttempts = len(dl.AllAttempts)
	}

	times := dl.times()
	if len(times) == 0 {
		st.AverageTime = nil
		dl.BestTimes = []int{}
		return
	}

	sum := 0
	for _, t := range times {
		sum += t
	}
	avg := float64(sum) / float64(len(times))
	st.AverageTime = &avg

	sort.Ints(times)
	if st.BestTime == nil || times[0] < *st.BestTime {
		best := times[0]
		st.BestTime = &best
	}
	if len(times) > MaxBestTimes {
		times = times[:MaxBestTimes]
	}
	dl.BestTimes = times
}

// OverallStatistics aggregates all difficulties.
type OverallStatistics struct {
	TotalAttempts      int           `json:"total_attempts"`
	FavoriteDifficulty difficulty.ID `json:"favorite_difficulty"`
}

// Document is the persisted scores document.
type Document struct {
	ByDifficulty map[difficulty.ID]*DifficultyLedger `json:"by_difficulty"`
	Overall      OverallStatistics                   `json:"overall_statistics"`
}

func newDocument() Document {
	d := Document{
		ByDifficulty: make(map[difficulty.ID]*DifficultyLedger),
		Overall:      OverallStatistics{FavoriteDifficulty: difficulty.Normal},
	}
	d.ensureCanonical()
	return d
}

func (d *Document) ensureCanonical() {
	if d.ByDifficulty == nil {
		d.ByDifficulty = make(map[difficulty.ID]*DifficultyLedger)
	}
	for _, id := range difficulty.Canonical() {
		if d.ByDifficulty[id] == nil {
			d.ByDifficulty[id] = newDifficultyLedger()
		}
	}
}

// ids returns the difficulties present, canonical ones first, then any
// unknown ones in lexical order.
func (d *Document) ids() []difficulty.ID {
	out := make([]difficulty.ID, 0, len(d.ByDifficulty))
	for _, id := range difficulty.Canonical() {
		if _, ok := d.ByDifficulty[id]; ok {
			out = append(out, id)
		}
	}
	var extra []difficulty.ID
	for id := range d.ByDifficulty {
		if !difficulty.IsKnown(id) {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// updateOverall sums the per-difficulty totals and picks the favorite.
// Ties go to the earlier difficulty in ids order.
func (d *Document) updateOverall() {
	total := 0
	fav := difficulty.Normal
	favCount := 0
	for _, id := range d.ids() {
		n := d.ByDifficulty[id].Statistics.TotalAttempts
		total += n
		if n > favCount {
			fav, favCount = id, n
		}
	}
	d.Overall.TotalAttempts = total
	d.Overall.FavoriteDifficulty = fav
}

func (d *Document) recompute() {
	d.ensureCanonical()
	for _, id := range d.ids() {
		if d.ByDifficulty[id] == nil {
			d.ByDifficulty[id] = newDifficultyLedger()
		}
		d.ByDifficulty[id].recompute()
	}
	d.updateOverall()
}
