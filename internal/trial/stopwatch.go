package trial

import "time"

// stopwatch measures elapsed time on an injected clock. Once frozen it
// keeps reporting the elapsed time at the freeze instant, so a paused
// countdown does not run on.
type stopwatch struct {
	start    time.Time
	frozenAt time.Time
	frozen   bool
}

func (s *stopwatch) reset(now time.Time) {
	*s = stopwatch{start: now}
}

func (s *stopwatch) freeze(now time.Time) {
	if !s.frozen {
		s.frozen = true
		s.frozenAt = now
	}
}

// elapsed never goes negative, even if the clock steps backwards.
func (s *stopwatch) elapsed(now time.Time) time.Duration {
	if s.frozen {
		now = s.frozenAt
	}
	d := now.Sub(s.start)
	if d < 0 {
		return 0
	}
	return d
}
