package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/ledger"
	"github.com/vovakirdan/twitchy/internal/settings"
	"github.com/vovakirdan/twitchy/internal/storage"
)

// gameData bundles the persistent state every command works with.
type gameData struct {
	store        storage.Store
	profiles     *difficulty.Table
	achievements *achievement.Tracker
	ledger       *ledger.Ledger
	settings     *settings.Provider
}

// openGameData opens the configured store and loads profiles, scores,
// achievements and settings from it.
func openGameData(logger *log.Logger) (*gameData, error) {
	profiles, err := difficulty.Load(cfg.ProfilesPath)
	if err != nil {
		logger.Warn("could not load difficulty profiles, using defaults", "err", err)
		profiles = difficulty.DefaultTable()
	}

	store, err := storage.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s store in %s: %w", cfg.Backend, cfg.DataDir, err)
	}

	tracker := achievement.NewTracker(store, logger)
	return &gameData{
		store:        store,
		profiles:     profiles,
		achievements: tracker,
		ledger: ledger.New(ledger.Config{
			Store:        store,
			Achievements: tracker,
			Logger:       logger,
		}),
		settings: settings.Load(store, logger),
	}, nil
}

// Close releases the store.
func (g *gameData) Close() error {
	return storage.Close(g.store)
}

// resolveDifficulty picks the difficulty named in args, or the one in
// the settings.
func (g *gameData) resolveDifficulty(args []string) (difficulty.ID, error) {
	if len(args) == 0 {
		return g.settings.Difficulty(), nil
	}
	id := difficulty.ID(args[0])
	if g.profiles.Has(id) {
		return id, nil
	}
	for _, known := range g.ledger.Difficulties() {
		if known == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (run 'twitchy difficulties' to list them)", id)
}
