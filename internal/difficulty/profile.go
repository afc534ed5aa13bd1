// Package difficulty provides the difficulty profile table: timing ranges,
// warning/countdown behavior and performance rating thresholds per level.
package difficulty

import (
	"errors"
	"fmt"
	"math"
)

// ID identifies a difficulty profile.
type ID string

const (
	Easy       ID = "easy"
	Normal     ID = "normal"
	Hard       ID = "hard"
	Beast      ID = "beast"
	TwitchyGod ID = "twitchy-god"
)

// Canonical returns the built-in identifiers in display order.
func Canonical() []ID {
	return []ID{Easy, Normal, Hard, Beast, TwitchyGod}
}

// IsKnown reports whether id is one of the built-in identifiers.
func IsKnown(id ID) bool {
	for _, c := range Canonical() {
		if c == id {
			return true
		}
	}
	return false
}

// Level is a performance bucket name, used to pick animations and colors.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelAverage   Level = "average"
	LevelPoor      Level = "poor"
	LevelMeh       Level = "meh"
	LevelTerrible  Level = "terrible"
)

// Threshold is one rating bucket. A reaction at or below CeilingMS falls in it.
type Threshold struct {
	Level     Level  `yaml:"level"`
	Label     string `yaml:"label"`
	CeilingMS int    `yaml:"ceiling_ms"`
}

// Rating is the classification of a single reaction.
type Rating struct {
	Level Level
	Label string
}

// Terrible is the open-ended bucket past the last threshold.
var Terrible = Rating{Level: LevelTerrible, Label: "WAKE UP!"}

// Profile is the immutable timing/threshold configuration of a difficulty.
type Profile struct {
	ID               ID          `yaml:"id"`
	Name             string      `yaml:"name"`
	MinWait          float64     `yaml:"min_wait"`          // seconds
	MaxWait          float64     `yaml:"max_wait"`          // seconds
	CountdownEnabled bool        `yaml:"countdown_enabled"` // show remaining wait
	WarningTime      float64     `yaml:"warning_time"`      // seconds, 0 = no warning
	PracticeMode     bool        `yaml:"practice_mode"`     // show hints before arming
	FakeSignals      bool        `yaml:"fake_signals"`      // occasional false cues
	Thresholds       []Threshold `yaml:"thresholds"`        // ascending by CeilingMS
}

// ErrInvalidProfile is returned by Validate for malformed profiles.
var ErrInvalidProfile = errors.New("difficulty: invalid profile")

// Validate checks the wait range and the threshold ordering.
func (p Profile) Validate() error {
	if math.IsNaN(p.MinWait) || math.IsNaN(p.MaxWait) || p.MinWait <= 0 || p.MaxWait <= 0 {
		return fmt.Errorf("%w: %s: wait range must be positive", ErrInvalidProfile, p.ID)
	}
	if p.MinWait > p.MaxWait {
		return fmt.Errorf("%w: %s: min_wait %.2f > max_wait %.2f", ErrInvalidProfile, p.ID, p.MinWait, p.MaxWait)
	}
	if p.WarningTime < 0 {
		return fmt.Errorf("%w: %s: negative warning_time", ErrInvalidProfile, p.ID)
	}
	for i := 1; i < len(p.Thresholds); i++ {
		if p.Thresholds[i].CeilingMS < p.Thresholds[i-1].CeilingMS {
			return fmt.Errorf("%w: %s: thresholds not ascending", ErrInvalidProfile, p.ID)
		}
	}
	return nil
}

// Rate classifies a reaction time: the first threshold whose ceiling is
// at or above ms, otherwise Terrible.
func (p Profile) Rate(ms int) Rating {
	for _, t := range p.Thresholds {
		if ms <= t.CeilingMS {
			return Rating{Level: t.Level, Label: t.Label}
		}
	}
	return Terrible
}

// DisplayName returns the profile name, or the identifier if unnamed.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return string(p.ID)
}
