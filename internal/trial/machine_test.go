package trial

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/core"
	"github.com/vovakirdan/twitchy/internal/difficulty"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func (c *fakeClock) AdvanceMS(ms float64) {
	c.Advance(time.Duration(ms * float64(time.Millisecond)))
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// scriptedRandom returns a fixed fraction of the range and a fixed coin.
type scriptedRandom struct {
	frac  float64
	coin  bool
	calls int
}

func (r *scriptedRandom) Uniform(min, max float64) float64 {
	r.calls++
	return min + r.frac*(max-min)
}

func (r *scriptedRandom) Probability(p float64) bool { return r.coin }

// brokenRandom returns values outside any range.
type brokenRandom struct{}

func (brokenRandom) Uniform(min, max float64) float64 { return math.NaN() }
func (brokenRandom) Probability(p float64) bool { return false }

type recordCall struct {
	ms int
	d  difficulty.ID
}

type spyRecorder struct{ calls []recordCall }

func (s *spyRecorder) Record(ms int, d difficulty.ID) []achievement.ID {
	s.calls = append(s.calls, recordCall{ms, d})
	return nil
}

type spyNotifier struct{ cues []core.Cue }

func (s *spyNotifier) Play(c core.Cue) { s.cues = append(s.cues, c) }

type fixture struct {
	m     *Machine
	clock *fakeClock
	rng   *scriptedRandom
	rec   *spyRecorder
	audio *spyNotifier
}

func newFixture(d difficulty.ID) *fixture {
	f := &fixture{
		clock: newClock(),
		rng:   &scriptedRandom{frac: 0.5},
		rec:   &spyRecorder{},
		audio: &spyNotifier{},
	}
	f.m = New(Config{
		Clock:      f.clock,
		Random:     f.rng,
		Difficulty: FixedDifficulty(d),
		Recorder:   f.rec,
		Notifier:   f.audio,
	})
	return f
}

// runUntilCued ticks every 10ms until the cue fires.
func (f *fixture) runUntilCued(t *testing.T) {
	t.Helper()
	for i := 0; i < 10000 && f.m.Phase() == PhaseArmed; i++ {
		f.clock.AdvanceMS(10)
		f.m.Update()
	}
	if f.m.Phase() != PhaseCued {
		t.Fatalf("expected cued phase, got %s", f.m.Phase())
	}
}

func TestWaitWithinProfileRange(t *testing.T) {
	table := difficulty.DefaultTable()
	rng := core.NewRandom(42)
	const eps = 1e-6

	for _, p := range table.Profiles() {
		m := New(Config{Clock: newClock(), Random: rng, Difficulty: FixedDifficulty(p.ID)})
		for i := 0; i < 10000; i++ {
			m.Enter()
			m.Input()
			w := m.wait.Seconds()
			lo, hi := p.MinWait, p.MaxWait
			if m.fake {
				if !p.FakeSignals {
					t.Fatalf("%s: fake cue without fake signals", p.ID)
				}
				lo, hi = lo*FakeWaitFactor, hi*FakeWaitFactor
			}
			if w < lo-eps || w > hi+eps {
				t.Fatalf("%s: wait %.4f outside [%.2f, %.2f]", p.ID, w, lo, hi)
			}
		}
	}
}

func TestEarlyInputDisqualifies(t *testing.T) {
	f := newFixture(difficulty.Normal)
	f.m.Input()
	if f.m.Phase() != PhaseArmed {
		t.Fatalf("expected armed, got %s", f.m.Phase())
	}

	f.clock.AdvanceMS(500)
	f.m.Update()
	f.m.Input()

	v := f.m.Snapshot()
	if v.Phase != PhaseScored || v.Last == nil || v.Last.Outcome != OutcomeTooSoon {
		t.Fatalf("expected disqualified result, got %+v", v)
	}
	if v.Last.Rating.Level != difficulty.LevelTerrible || v.Last.Message != MessageTooSoon {
		t.Errorf("unexpected disqualified result: %+v", v.Last)
	}
	if len(f.rec.calls) != 0 {
		t.Errorf("disqualified trial must not be recorded, got %v", f.rec.calls)
	}
	if v.Session.Attempts != 0 {
		t.Errorf("disqualified trial must not count as an attempt, got %d", v.Session.Attempts)
	}
	if last := f.audio.cues[len(f.audio.cues)-1]; last != core.CueTooSoon {
		t.Errorf("expected too_soon cue, got %s", last)
	}
}

func TestEarlyInputNeverRecordsAcrossRounds(t *testing.T) {
	f := newFixture(difficulty.Hard)
	for round := 0; round < 50; round++ {
		f.m.Input() // arm (or re-arm from scored)
		if f.m.Phase() != PhaseArmed {
			t.Fatalf("round %d: expected armed, got %s", round, f.m.Phase())
		}
		f.clock.AdvanceMS(float64(round * 20))
		f.m.Update()
		if f.m.Phase() != PhaseArmed {
			continue
		}
		f.m.Input()
		if f.m.Snapshot().Last.Outcome != OutcomeTooSoon {
			t.Fatalf("round %d: early input was not disqualified", round)
		}
	}
	if len(f.rec.calls) != 0 {
		t.Errorf("ledger recorded %d disqualified trials", len(f.rec.calls))
	}
}

func TestReactionTimeMeasuredFromCue(t *testing.T) {
	for _, reaction := range []float64{0, 87.4, 187.5, 250.2, 1234.6} {
		f := newFixture(difficulty.Normal)
		f.m.Input()
		f.runUntilCued(t)

		f.clock.AdvanceMS(reaction)
		f.m.Input()

		res := f.m.Snapshot().Last
		want := int(math.Round(reaction))
		if res.Outcome != OutcomeSuccess || res.ReactionMS != want {
			t.Errorf("reaction %.1fms: got %+v, want %dms", reaction, res, want)
		}
		if len(f.rec.calls) != 1 || f.rec.calls[0] != (recordCall{want, difficulty.Normal}) {
			t.Errorf("expected one ledger call with %dms, got %v", want, f.rec.calls)
		}
	}
}

func TestReactionNeverNegative(t *testing.T) {
	f := newFixture(difficulty.Normal)
	f.m.Input()
	f.runUntilCued(t)

	f.clock.Advance(-time.Second) // clock anomaly
	f.m.Input()

	if ms := f.m.Snapshot().Last.ReactionMS; ms != 0 {
		t.Errorf("negative latency should clamp to 0, got %d", ms)
	}
}

func TestCueFiresAtWait(t *testing.T) {
	f := newFixture(difficulty.Normal) // wait = 2.5 + 0.5*2.0 = 3.5s
	f.m.Input()

	f.clock.AdvanceMS(3499)
	f.m.Update()
	if f.m.Phase() != PhaseArmed {
		t.Fatalf("cue fired early at 3499ms")
	}
	f.clock.AdvanceMS(1)
	f.m.Update()
	if f.m.Phase() != PhaseCued {
		t.Fatalf("cue did not fire at 3500ms, phase %s", f.m.Phase())
	}
}

func TestWarningIsOneShot(t *testing.T) {
	f := newFixture(difficulty.Normal) // wait 3.5s, warning 0.5s
	f.m.Input()

	f.clock.AdvanceMS(2999)
	f.m.Update()
	if f.m.Snapshot().Warning {
		t.Fatal("warning set too early")
	}
	f.clock.AdvanceMS(1)
	f.m.Update()
	if !f.m.Snapshot().Warning {
		t.Fatal("warning not set once remaining <= warning_time")
	}
	if f.m.Phase() != PhaseArmed {
		t.Error("warning must not change the phase")
	}
}

func TestNoWarningWhenDisabled(t *testing.T) {
	f := newFixture(difficulty.Beast) // warning_time 0
	f.m.Input()
	for f.m.Phase() == PhaseArmed {
		if f.m.Snapshot().Warning {
			t.Fatal("warning set with warning_time 0")
		}
		f.clock.AdvanceMS(10)
		f.m.Update()
	}
}

func TestFakeCueWindow(t *testing.T) {
	f := newFixture(difficulty.TwitchyGod)
	f.rng.coin = true
	f.m.Input()

	// wait = (0.3 + 0.5*1.7) * 1.5 = 1.725s
	if diff := f.m.wait - 1725*time.Millisecond; !f.m.fake || diff > time.Microsecond || diff < -time.Microsecond {
		t.Fatalf("expected fake cue with 1725ms wait, got fake=%v wait=%v", f.m.fake, f.m.wait)
	}

	check := func(atMS float64, visible bool, phase Phase) {
		t.Helper()
		f.clock.t = newClock().t.Add(time.Duration(atMS * float64(time.Millisecond)))
		f.m.Update()
		v := f.m.Snapshot()
		if v.FakeCue != visible || v.Phase != phase {
			t.Errorf("at %.0fms: fake=%v phase=%s, want fake=%v phase=%s", atMS, v.FakeCue, v.Phase, visible, phase)
		}
	}
	check(1000, false, PhaseArmed)
	check(1035, true, PhaseArmed)  // 0.6w
	check(1200, true, PhaseArmed)
	check(1208, false, PhaseArmed) // past 0.7w
	check(1724, false, PhaseArmed)
	check(1725, false, PhaseCued)
}

func TestInputDuringFakeCueDisqualifies(t *testing.T) {
	f := newFixture(difficulty.TwitchyGod)
	f.rng.coin = true
	f.m.Input()
	f.clock.AdvanceMS(1100)
	f.m.Update()
	if !f.m.Snapshot().FakeCue {
		t.Fatal("expected fake cue visible")
	}
	f.m.Input()
	if f.m.Snapshot().Last.Outcome != OutcomeTooSoon {
		t.Error("reacting to a fake cue should be too soon")
	}
}

func TestFakeSignalsOnlyWhenEnabled(t *testing.T) {
	f := newFixture(difficulty.Hard)
	f.rng.coin = true
	f.m.Input()
	if f.m.fake {
		t.Error("hard profile must not produce fake cues")
	}
}

func TestSessionBestAndCues(t *testing.T) {
	f := newFixture(difficulty.Normal)
	play := func(ms float64) *Result {
		f.m.Input()
		if f.m.Phase() == PhaseScored {
			t.Fatal("input in scored should re-arm")
		}
		f.runUntilCued(t)
		f.clock.AdvanceMS(ms)
		f.m.Input()
		return f.m.Snapshot().Last
	}

	r := play(300)
	if !r.NewBest || r.Message != MessageNewBest {
		t.Errorf("first result should be a session best: %+v", r)
	}
	r = play(300)
	if r.NewBest || r.Message != MessageGood {
		t.Errorf("equal time should not be a session best: %+v", r)
	}
	r = play(200)
	if !r.NewBest {
		t.Errorf("lower time should be a session best: %+v", r)
	}

	v := f.m.Snapshot()
	if v.Session.Attempts != 3 || *v.Session.Best != 200 {
		t.Errorf("unexpected session: %+v", v.Session)
	}

	want := []core.Cue{
		core.CueStart, core.CueSuccess, core.CueNewRecord,
		core.CueStart, core.CueSuccess,
		core.CueStart, core.CueSuccess, core.CueNewRecord,
	}
	if len(f.audio.cues) != len(want) {
		t.Fatalf("cues = %v, want %v", f.audio.cues, want)
	}
	for i := range want {
		if f.audio.cues[i] != want[i] {
			t.Errorf("cue %d = %s, want %s", i, f.audio.cues[i], want[i])
		}
	}
}

func TestRatingUsesProfile(t *testing.T) {
	f := newFixture(difficulty.Normal)
	f.m.Input()
	f.runUntilCued(t)
	f.clock.AdvanceMS(240)
	f.m.Input()

	if lvl := f.m.Snapshot().Last.Rating.Level; lvl != difficulty.LevelExcellent {
		t.Errorf("240ms on normal should be excellent, got %s", lvl)
	}
}

func TestPauseFreezesCountdownAndResumesToIdle(t *testing.T) {
	f := newFixture(difficulty.Easy) // countdown enabled, wait 4.5s
	f.m.Input()
	f.clock.AdvanceMS(1000)
	f.m.Update()

	f.m.TogglePause()
	before := f.m.Snapshot()
	if before.Phase != PhasePaused || before.PausedFrom != PhaseArmed {
		t.Fatalf("expected paused from armed, got %+v", before)
	}
	if !before.ShowCountdown || before.Remaining != 3500*time.Millisecond {
		t.Errorf("remaining = %v, want 3.5s", before.Remaining)
	}

	f.clock.AdvanceMS(10000)
	f.m.Update()
	after := f.m.Snapshot()
	if after.Remaining != before.Remaining || after.Phase != PhasePaused {
		t.Errorf("countdown moved while paused: %v -> %v", before.Remaining, after.Remaining)
	}

	f.m.Input()
	if f.m.Phase() != PhasePaused {
		t.Error("input while paused must be ignored")
	}

	f.m.TogglePause()
	if f.m.Phase() != PhaseIdle {
		t.Errorf("resume should return to idle, got %s", f.m.Phase())
	}
	if len(f.rec.calls) != 0 {
		t.Error("abandoned trial must not be recorded")
	}
}

func TestPauseIgnoredWhileScored(t *testing.T) {
	f := newFixture(difficulty.Normal)
	f.m.Input()
	f.m.Input() // too soon
	f.m.TogglePause()
	if f.m.Phase() != PhaseScored {
		t.Errorf("pause should be ignored while scored, got %s", f.m.Phase())
	}
}

func TestEnterResetsSession(t *testing.T) {
	f := newFixture(difficulty.Normal)
	f.m.Input()
	f.runUntilCued(t)
	f.clock.AdvanceMS(200)
	f.m.Input()

	f.m.Enter()
	v := f.m.Snapshot()
	if v.Phase != PhaseIdle || v.Last != nil || v.Session.Attempts != 0 || v.Session.Best != nil {
		t.Errorf("Enter should reset to a fresh session, got %+v", v)
	}
}

func TestInvalidProfileFallsBack(t *testing.T) {
	bad := difficulty.Profile{ID: difficulty.Normal, MinWait: 5, MaxWait: 1}
	clock := newClock()
	rng := &scriptedRandom{frac: 0.5}
	m := New(Config{Clock: clock, Random: rng, Profiles: difficulty.NewTable(bad)})

	m.Input()
	if m.Phase() != PhaseArmed {
		t.Fatalf("trial must arm despite a bad profile, got %s", m.Phase())
	}
	if m.wait != 3500*time.Millisecond {
		t.Errorf("fallback wait = %v, want 3.5s", m.wait)
	}
}

func TestBrokenRandomFallsBack(t *testing.T) {
	m := New(Config{Clock: newClock(), Random: brokenRandom{}})
	m.Input()
	if m.Phase() != PhaseArmed {
		t.Fatalf("trial must arm despite a broken random source, got %s", m.Phase())
	}
	if w := m.wait.Seconds(); w < FallbackMinWait || w > FallbackMaxWait {
		t.Errorf("fallback wait %.2f outside [2, 5]", w)
	}
}

func TestUnknownDifficultyUsesNormal(t *testing.T) {
	f := newFixture(difficulty.ID("impossible"))
	f.m.Input()
	if f.m.Snapshot().Profile.ID != difficulty.Normal {
		t.Errorf("unknown difficulty should use normal, got %s", f.m.Snapshot().Profile.ID)
	}
}
