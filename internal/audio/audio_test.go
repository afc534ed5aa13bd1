package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/twitchy/internal/core"
)

// drain reads s to the end and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestCueStreamersAreFinite(t *testing.T) {
	cues := map[core.Cue]time.Duration{
		core.CueStart:      80 * time.Millisecond,
		core.CueTooSoon:    250 * time.Millisecond,
		core.CueSuccess:    120 * time.Millisecond,
		core.CueNewRecord:  340 * time.Millisecond,
		core.CueMenuSelect: 40 * time.Millisecond,
	}
	for cue, d := range cues {
		s := Streamer(cue, 1)
		if s == nil {
			t.Fatalf("no streamer for %s", cue)
		}
		n, peak := drain(s)
		if want := sampleRate.N(d); n < want-3 || n > want+3 {
			t.Errorf("%s: %d samples, want about %d", cue, n, want)
		}
		if peak == 0 || peak > 1 {
			t.Errorf("%s: peak %.3f out of (0, 1]", cue, peak)
		}
	}
}

func TestVolumeScalesAmplitude(t *testing.T) {
	_, loud := drain(Streamer(core.CueSuccess, 1))
	_, quiet := drain(Streamer(core.CueSuccess, 0.25))
	if quiet >= loud {
		t.Errorf("quiet peak %.3f should be below loud peak %.3f", quiet, loud)
	}
	_, mute := drain(Streamer(core.CueSuccess, 0))
	if mute != 0 {
		t.Errorf("zero volume should be silent, got %.3f", mute)
	}
}

func TestUnknownCue(t *testing.T) {
	if Streamer(core.Cue("explosion"), 1) != nil {
		t.Error("unknown cue should have no streamer")
	}
}

// Player operations must be safe without an audio device.
func TestPlayerWithoutInit(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("player panicked without initialization: %v", r)
		}
	}()

	p := NewPlayer(nil, nil)
	p.Play(core.CueStart)
	p.Play(core.CueNewRecord)
	p.Close()

	Silent{}.Play(core.CueTooSoon)
}
