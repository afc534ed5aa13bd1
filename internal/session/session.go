// Package session keeps the ephemeral counters of one gameplay scene:
// attempt count, session best and the list of session times.
package session

// Aggregator is reset on scene entry and never persisted.
type Aggregator struct {
	attempts int
	best     *int
	times    []int
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Record adds a successful reaction. It returns true when ms is strictly
// lower than the previous session best, or when it is the first time.
func (a *Aggregator) Record(ms int) bool {
	a.attempts++
	a.times = append(a.times, ms)
	if a.best == nil || ms < *a.best {
		best := ms
		a.best = &best
		return true
	}
	return false
}

// Reset clears everything. Called when the gameplay scene is entered.
func (a *Aggregator) Reset() {
	a.attempts = 0
	a.best = nil
	a.times = nil
}

// Attempts returns the number of scored attempts this session.
func (a *Aggregator) Attempts() int {
	return a.attempts
}

// Best returns the session best and whether one exists.
func (a *Aggregator) Best() (int, bool) {
	if a.best == nil {
		return 0, false
	}
	return *a.best, true
}

// Average returns the mean session time and whether any time was recorded.
func (a *Aggregator) Average() (float64, bool) {
	if len(a.times) == 0 {
		return 0, false
	}
	sum := 0
	for _, t := range a.times {
		sum += t
	}
	return float64(sum) / float64(len(a.times)), true
}

// Snapshot is a copy of the aggregator state for display.
type Snapshot struct {
	Attempts int
	Best     *int
	Average  *float64
	Times    []int
}

// Snapshot returns a copy safe to hand to the render layer.
func (a *Aggregator) Snapshot() Snapshot {
	s := Snapshot{
		Attempts: a.attempts,
		Times:    append([]int(nil), a.times...),
	}
	if a.best != nil {
		best := *a.best
		s.Best = &best
	}
	if avg, ok := a.Average(); ok {
		s.Average = &avg
	}
	return s
}
