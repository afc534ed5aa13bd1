// Package trial implements the reaction trial state machine: it arms an
// unpredictable wait, catches early input, times the reaction once the cue
// fires and reports scored results to the ledger.
package trial

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/core"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/metrics"
	"github.com/vovakirdan/twitchy/internal/session"
)

// Timing constants.
const (
	FallbackMinWait  = 2.0 // seconds
	FallbackMaxWait  = 5.0 // seconds
	FakeSignalChance = 0.3
	FakeWaitFactor   = 1.5
	FakeCueStart     = 0.6 // fraction of the wait
	FakeCueEnd       = 0.7
)

// Result messages.
const (
	MessageNewBest = "NEW SESSION BEST!"
	MessageGood    = "AWESOME REFLEXES!"
	MessageTooSoon = "Wait for GREEN!"
)

// TooSoon is the rating of a disqualified trial.
var TooSoon = difficulty.Rating{Level: difficulty.LevelTerrible, Label: "OOPS!"}

// Recorder persists scored reactions. *ledger.Ledger implements it.
type Recorder interface {
	Record(timeMS int, d difficulty.ID) []achievement.ID
}

// Notifier plays feedback cues. Implementations must not block or panic;
// the machine never learns whether a cue was played.
type Notifier interface {
	Play(cue core.Cue)
}

// DifficultySource supplies the active difficulty. *settings.Provider
// implements it.
type DifficultySource interface {
	Difficulty() difficulty.ID
}

// FixedDifficulty is a DifficultySource that never changes.
type FixedDifficulty difficulty.ID

// Difficulty returns the fixed identifier.
func (f FixedDifficulty) Difficulty() difficulty.ID {
	return difficulty.ID(f)
}

// Config holds the machine collaborators. Nil fields get safe defaults.
type Config struct {
	Clock      core.Clock
	Random     core.Random
	Profiles   *difficulty.Table
	Difficulty DifficultySource
	Recorder   Recorder
	Notifier   Notifier
	Session    *session.Aggregator
	Logger     *log.Logger
}

// Result is the outcome of one trial.
type Result struct {
	Outcome    Outcome
	ReactionMS int // zero for a disqualified trial
	Rating     difficulty.Rating
	Message    string
	NewBest    bool
	Difficulty difficulty.ID
	Unlocked   []achievement.ID
}

// View is everything the render layer needs from the machine.
type View struct {
	Phase         Phase
	PausedFrom    Phase
	Profile       difficulty.Profile
	ShowCountdown bool
	Remaining     time.Duration
	Warning       bool
	FakeCue       bool
	Last          *Result
	Session       session.Snapshot
}

// Machine is the per-player trial engine. It is driven by a single game
// loop and is not safe for concurrent use.
type Machine struct {
	clock    core.Clock
	random   core.Random
	profiles *difficulty.Table
	source   DifficultySource
	recorder Recorder
	notifier Notifier
	session  *session.Aggregator
	logger   *log.Logger

	phase      Phase
	pausedFrom Phase
	profile    difficulty.Profile
	sw         stopwatch

	// Armed state
	wait        time.Duration
	fake        bool
	fakeVisible bool
	warning     bool

	last *Result
}

// New creates a machine in the Idle phase.
func New(cfg Config) *Machine {
	m := &Machine{
		clock:    cfg.Clock,
		random:   cfg.Random,
		profiles: cfg.Profiles,
		source:   cfg.Difficulty,
		recorder: cfg.Recorder,
		notifier: cfg.Notifier,
		session:  cfg.Session,
		logger:   cfg.Logger,
	}
	if m.clock == nil {
		m.clock = core.SystemClock{}
	}
	if m.random == nil {
		m.random = core.NewRandom(0)
	}
	if m.profiles == nil {
		m.profiles = difficulty.DefaultTable()
	}
	if m.source == nil {
		m.source = FixedDifficulty(difficulty.Normal)
	}
	if m.session == nil {
		m.session = session.New()
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	m.toIdle()
	return m
}

// Enter is called when the gameplay scene becomes active. Any running
// trial is abandoned and the session starts over.
func (m *Machine) Enter() {
	m.session.Reset()
	m.last = nil
	m.toIdle()
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Input handles the trial input (space, enter, click).
func (m *Machine) Input() {
	switch m.phase {
	case PhaseIdle:
		m.arm()
	case PhaseArmed:
		m.disqualify()
	case PhaseCued:
		m.score()
	case PhaseScored:
		m.toIdle()
		m.arm()
	case PhasePaused:
	}
}

// Update advances the machine by one tick.
func (m *Machine) Update() {
	if m.phase != PhaseArmed {
		return
	}
	elapsed := m.sw.elapsed(m.clock.Now())

	if w := m.warningTime(); w > 0 && !m.warning && elapsed >= m.wait-w {
		m.warning = true
	}
	if m.fake {
		m.fakeVisible = elapsed >= fraction(m.wait, FakeCueStart) && elapsed < fraction(m.wait, FakeCueEnd)
	}
	if elapsed >= m.wait {
		m.cue()
	}
}

// TogglePause pauses an idle, armed or cued trial. Toggling again returns
// to Idle; the interrupted trial is abandoned without scoring.
func (m *Machine) TogglePause() {
	switch m.phase {
	case PhaseIdle, PhaseArmed, PhaseCued:
		m.pausedFrom = m.phase
		m.sw.freeze(m.clock.Now())
		m.phase = PhasePaused
	case PhasePaused:
		m.toIdle()
	case PhaseScored:
	}
}

// Snapshot returns the display state.
func (m *Machine) Snapshot() View {
	v := View{
		Phase:      m.phase,
		PausedFrom: m.pausedFrom,
		Profile:    m.profile,
		Warning:    m.warning,
		FakeCue:    m.fakeVisible,
		Session:    m.session.Snapshot(),
	}
	if m.phase == PhaseIdle {
		v.Profile = m.profiles.Lookup(m.source.Difficulty())
	}
	armed := m.phase == PhaseArmed || (m.phase == PhasePaused && m.pausedFrom == PhaseArmed)
	if armed {
		v.ShowCountdown = m.profile.CountdownEnabled
		v.Remaining = m.wait - m.sw.elapsed(m.clock.Now())
		if v.Remaining < 0 {
			v.Remaining = 0
		}
	}
	if m.last != nil {
		last := *m.last
		v.Last = &last
	}
	return v
}

func (m *Machine) toIdle() {
	m.phase = PhaseIdle
	m.pausedFrom = PhaseIdle
	m.wait = 0
	m.fake = false
	m.fakeVisible = false
	m.warning = false
	m.sw.reset(m.clock.Now())
}

func (m *Machine) arm() {
	m.profile = m.profiles.Lookup(m.source.Difficulty())
	wait, fake := m.drawWait(m.profile)

	m.wait = time.Duration(wait * float64(time.Second))
	m.fake = fake
	m.fakeVisible = false
	m.warning = false
	m.phase = PhaseArmed
	m.sw.reset(m.clock.Now())
	m.notify(core.CueStart)
}

// drawWait picks the wait in seconds. A malformed profile or an out of
// range draw falls back to the fixed default range so the trial never
// stalls in Idle.
func (m *Machine) drawWait(p difficulty.Profile) (float64, bool) {
	if err := p.Validate(); err != nil {
		return m.fallbackWait("invalid profile", err), false
	}
	wait := m.random.Uniform(p.MinWait, p.MaxWait)
	if math.IsNaN(wait) || wait < p.MinWait || wait > p.MaxWait {
		return m.fallbackWait("wait draw out of range", nil), false
	}
	if p.FakeSignals && m.random.Probability(FakeSignalChance) {
		return wait * FakeWaitFactor, true
	}
	return wait, false
}

func (m *Machine) fallbackWait(reason string, err error) float64 {
	metrics.FallbackWaitsTotal.Inc()
	m.logger.Warn("using fallback wait range", "reason", reason, "difficulty", m.profile.ID, "err", err)
	wait := m.random.Uniform(FallbackMinWait, FallbackMaxWait)
	if math.IsNaN(wait) || wait < FallbackMinWait || wait > FallbackMaxWait {
		wait = (FallbackMinWait + FallbackMaxWait) / 2
	}
	return wait
}

func (m *Machine) warningTime() time.Duration {
	return time.Duration(m.profile.WarningTime * float64(time.Second))
}

func (m *Machine) cue() {
	m.phase = PhaseCued
	m.fakeVisible = false
	m.sw.reset(m.clock.Now())
}

func (m *Machine) disqualify() {
	m.last = &Result{
		Outcome:    OutcomeTooSoon,
		Rating:     TooSoon,
		Message:    MessageTooSoon,
		Difficulty: m.profile.ID,
	}
	m.phase = PhaseScored
	m.fakeVisible = false
	metrics.TrialsTotal.WithLabelValues(string(m.profile.ID), OutcomeTooSoon.String()).Inc()
	m.notify(core.CueTooSoon)
}

func (m *Machine) score() {
	elapsed := m.sw.elapsed(m.clock.Now())
	ms := int(math.Round(float64(elapsed) / float64(time.Millisecond)))
	if ms < 0 {
		ms = 0
	}

	newBest := m.session.Record(ms)
	res := &Result{
		Outcome:    OutcomeSuccess,
		ReactionMS: ms,
		Rating:     m.profile.Rate(ms),
		Message:    MessageGood,
		NewBest:    newBest,
		Difficulty: m.profile.ID,
	}
	if newBest {
		res.Message = MessageNewBest
	}
	m.last = res
	m.phase = PhaseScored

	m.notify(core.CueSuccess)
	if newBest {
		m.notify(core.CueNewRecord)
	}

	metrics.TrialsTotal.WithLabelValues(string(m.profile.ID), OutcomeSuccess.String()).Inc()
	metrics.ReactionMilliseconds.WithLabelValues(string(m.profile.ID)).Observe(float64(ms))

	if m.recorder != nil {
		res.Unlocked = m.recorder.Record(ms, m.profile.ID)
	}
}

func (m *Machine) notify(cue core.Cue) {
	if m.notifier != nil {
		m.notifier.Play(cue)
	}
}

func fraction(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
