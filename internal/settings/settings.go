// Package settings provides the flat key/value settings document.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/storage"
)

// Keys of the settings document.
const (
	KeySoundVolume    = "sound_volume"
	KeySFXEnabled     = "sfx_enabled"
	KeyMusicEnabled   = "music_enabled"
	KeyDifficulty     = "difficulty"
	KeyShowStatistics = "show_statistics"
	KeyTheme          = "theme"
	KeyFullscreen     = "fullscreen"
)

// Defaults returns the settings used when nothing is stored.
func Defaults() map[string]any {
	return map[string]any{
		KeySoundVolume:    0.7,
		KeySFXEnabled:     true,
		KeyMusicEnabled:   true,
		KeyDifficulty:     string(difficulty.Normal),
		KeyShowStatistics: true,
		KeyTheme:          "default",
		KeyFullscreen:     false,
	}
}

// Provider reads and writes settings through a store. Every Set is
// written through immediately.
type Provider struct {
	mu     sync.Mutex
	store  storage.Store
	logger *log.Logger
	values map[string]any
}

// Load reads the settings document. A missing or corrupt document yields
// the defaults.
func Load(store storage.Store, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.Default()
	}
	p := &Provider{store: store, logger: logger, values: Defaults()}

	data, err := store.Read(storage.KeySettings)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		logger.Error("cannot load settings", "err", err)
	default:
		var stored map[string]any
		if err := json.Unmarshal(data, &stored); err != nil {
			logger.Error("corrupt settings document, using defaults", "err", err)
			break
		}
		// A stored document replaces the defaults wholesale; Get falls back
		// to the caller's default for keys it lacks.
		p.values = stored
	}
	return p
}

// Get returns the value for key, or def when it is not set.
func (p *Provider) Get(key string, def any) any {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// Set stores value and saves the document. The in-memory value is kept
// even if the save fails.
func (p *Provider) Set(key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	if err := p.write(); err != nil {
		p.logger.Error("cannot save settings", "err", err)
		return err
	}
	return nil
}

// Reset restores the defaults and removes the stored document.
func (p *Provider) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = Defaults()
	if err := p.store.Delete(storage.KeySettings); err != nil {
		return fmt.Errorf("settings: reset: %w", err)
	}
	return nil
}

func (p *Provider) write() error {
	data, err := json.MarshalIndent(p.values, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := p.store.Write(storage.KeySettings, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// Difficulty returns the active difficulty identifier.
func (p *Provider) Difficulty() difficulty.ID {
	if s, ok := p.Get(KeyDifficulty, string(difficulty.Normal)).(string); ok && s != "" {
		return difficulty.ID(s)
	}
	return difficulty.Normal
}

// ShowStatistics reports whether the session statistics panel is shown.
func (p *Provider) ShowStatistics() bool {
	return p.boolean(KeyShowStatistics, true)
}

// SFXEnabled reports whether sound effects are on.
func (p *Provider) SFXEnabled() bool {
	return p.boolean(KeySFXEnabled, true)
}

// SoundVolume returns the volume in [0, 1].
func (p *Provider) SoundVolume() float64 {
	v, ok := p.Get(KeySoundVolume, 0.7).(float64)
	if !ok {
		return 0.7
	}
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func (p *Provider) boolean(key string, def bool) bool {
	if b, ok := p.Get(key, def).(bool); ok {
		return b
	}
	return def
}
