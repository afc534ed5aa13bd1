package settings

import (
	"errors"
	"testing"

	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/storage"
)

func TestDefaults(t *testing.T) {
	p := Load(storage.NewMemStore(), nil)

	if p.Difficulty() != difficulty.Normal {
		t.Errorf("default difficulty = %s", p.Difficulty())
	}
	if !p.ShowStatistics() || !p.SFXEnabled() {
		t.Error("statistics and sfx should default to on")
	}
	if p.SoundVolume() != 0.7 {
		t.Errorf("default volume = %v", p.SoundVolume())
	}
	if p.Get(KeyTheme, "") != "default" {
		t.Errorf("default theme = %v", p.Get(KeyTheme, ""))
	}
	if p.Get("missing", 42) != 42 {
		t.Error("Get should return the caller's default for unknown keys")
	}
}

func TestSetPersists(t *testing.T) {
	store := storage.NewMemStore()
	p := Load(store, nil)

	if err := p.Set(KeyDifficulty, string(difficulty.Beast)); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	p.Set(KeyShowStatistics, false)

	reloaded := Load(store, nil)
	if reloaded.Difficulty() != difficulty.Beast {
		t.Errorf("difficulty after reload = %s", reloaded.Difficulty())
	}
	if reloaded.ShowStatistics() {
		t.Error("show_statistics should be false after reload")
	}
}

func TestCorruptSettingsUseDefaults(t *testing.T) {
	store := storage.NewMemStore()
	store.Write(storage.KeySettings, []byte("not json"))

	p := Load(store, nil)
	if p.Difficulty() != difficulty.Normal || p.SoundVolume() != 0.7 {
		t.Error("corrupt settings should fall back to defaults")
	}
}

func TestWrongTypesFallBack(t *testing.T) {
	store := storage.NewMemStore()
	store.Write(storage.KeySettings, []byte(`{"difficulty": 3, "sfx_enabled": "yes", "sound_volume": 4}`))

	p := Load(store, nil)
	if p.Difficulty() != difficulty.Normal {
		t.Errorf("non-string difficulty should fall back, got %s", p.Difficulty())
	}
	if !p.SFXEnabled() {
		t.Error("non-bool sfx_enabled should fall back to true")
	}
	if p.SoundVolume() != 1 {
		t.Errorf("volume should clamp to 1, got %v", p.SoundVolume())
	}
}

func TestSetKeepsValueOnWriteFailure(t *testing.T) {
	store := storage.NewMemStore()
	store.FailWrites = errors.New("read-only")
	p := Load(store, nil)

	if err := p.Set(KeySFXEnabled, false); err == nil {
		t.Error("expected Set to report the write failure")
	}
	if p.SFXEnabled() {
		t.Error("value should be kept in memory")
	}
}

func TestReset(t *testing.T) {
	store := storage.NewMemStore()
	p := Load(store, nil)
	p.Set(KeyDifficulty, "hard")

	if err := p.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if p.Difficulty() != difficulty.Normal {
		t.Error("Reset should restore defaults")
	}
	if _, err := store.Read(storage.KeySettings); !errors.Is(err, storage.ErrNotFound) {
		t.Error("Reset should remove the stored document")
	}
}
