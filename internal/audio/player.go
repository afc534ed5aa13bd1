// Package audio plays the feedback cues. Tones are synthesized, so no
// sound assets are shipped; a machine without an audio device stays silent.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/twitchy/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Prefs supplies the live sound settings. *settings.Provider implements it.
type Prefs interface {
	SFXEnabled() bool
	SoundVolume() float64
}

// Player plays cues through the system speaker. Every method is safe to
// call whether or not Init succeeded.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	prefs       Prefs
	logger      *log.Logger
	initialized bool
}

// NewPlayer creates a player. Call Init before cues become audible.
func NewPlayer(prefs Prefs, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		prefs:  prefs,
		logger: logger,
	}
}

// Init opens the speaker. Failure is returned for logging only; the
// player keeps working silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the cue. It never blocks on playback and never fails.
func (p *Player) Play(cue core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	volume := 0.7
	if p.prefs != nil {
		if !p.prefs.SFXEnabled() {
			return
		}
		volume = p.prefs.SoundVolume()
	}
	s := Streamer(cue, volume)
	if s == nil {
		p.logger.Debug("no sound for cue", "cue", cue)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything queued.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Silent discards every cue.
type Silent struct{}

// Play does nothing.
func (Silent) Play(core.Cue) {}
