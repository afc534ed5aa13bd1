package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/twitchy/internal/core"
)

// Streamer returns a finite streamer for cue at the given volume (0..1),
// or nil for an unknown cue.
func Streamer(cue core.Cue, volume float64) beep.Streamer {
	volume = math.Max(0, math.Min(1, volume))
	switch cue {
	case core.CueStart:
		return tone(440, 440, 80*time.Millisecond, volume)
	case core.CueTooSoon:
		return beep.Take(sampleRate.N(250*time.Millisecond), NewBuzzGenerator(sampleRate, 120, volume))
	case core.CueSuccess:
		return tone(660, 990, 120*time.Millisecond, volume)
	case core.CueNewRecord:
		return beep.Seq(
			tone(523.25, 523.25, 90*time.Millisecond, volume),
			tone(659.25, 659.25, 90*time.Millisecond, volume),
			tone(783.99, 783.99, 160*time.Millisecond, volume),
		)
	case core.CueMenuSelect:
		return tone(880, 880, 40*time.Millisecond, volume)
	default:
		return nil
	}
}

func tone(from, to float64, d time.Duration, volume float64) beep.Streamer {
	n := sampleRate.N(d)
	return beep.Take(n, NewSweepGenerator(sampleRate, from, to, n, volume))
}

// SweepGenerator is a sine tone gliding linearly from one frequency to
// another over a number of samples, with a short fade in and out.
type SweepGenerator struct {
	sr      beep.SampleRate
	from    float64
	to      float64
	samples int
	amp     float64
	pos     int
	phase   float64
}

// NewSweepGenerator creates a sweep generator.
func NewSweepGenerator(sr beep.SampleRate, from, to float64, samples int, volume float64) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, samples: samples, amp: 0.3 * volume}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	fade := float64(g.sr.N(5 * time.Millisecond))
	for i := range samples {
		progress := float64(g.pos) / float64(g.samples)
		freq := g.from + (g.to-g.from)*math.Min(progress, 1)
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		env := 1.0
		if p := float64(g.pos); p < fade {
			env = p / fade
		} else if rest := float64(g.samples - g.pos); rest < fade {
			env = math.Max(rest, 0) / fade
		}

		sample := g.amp * env * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz for the too soon cue.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	amp  float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator.
func NewBuzzGenerator(sr beep.SampleRate, freq, volume float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq, amp: volume}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Square-ish wave with harmonics for a harsh buzz
		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * g.amp

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
