package achievement

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twitchy/internal/metrics"
	"github.com/vovakirdan/twitchy/internal/storage"
)

// State is the persisted achievements document.
type State struct {
	Unlocked []ID           `json:"unlocked"`
	Progress map[string]any `json:"progress"`
}

// Status is a catalog entry with its unlock flag.
type Status struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}

// Tracker owns the unlock state and persists it on every change.
// Unlocks are never revoked except by Clear.
type Tracker struct {
	mu     sync.Mutex
	store  storage.Store
	logger *log.Logger
	state  State
}

// NewTracker loads the achievements document. A missing or corrupt
// document yields an empty state.
func NewTracker(store storage.Store, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	t := &Tracker{store: store, logger: logger, state: emptyState()}

	data, err := store.Read(storage.KeyAchievements)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		logger.Error("cannot load achievements", "err", err)
	default:
		var st State
		if err := json.Unmarshal(data, &st); err != nil {
			logger.Error("corrupt achievements document, starting empty", "err", err)
			break
		}
		if st.Progress == nil {
			st.Progress = map[string]any{}
		}
		st.Unlocked = dedupe(st.Unlocked)
		t.state = st
	}
	return t
}

func emptyState() State {
	return State{Unlocked: []ID{}, Progress: map[string]any{}}
}

func dedupe(ids []ID) []ID {
	seen := make(map[ID]bool, len(ids))
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsUnlocked reports whether id has been unlocked.
func (t *Tracker) IsUnlocked(id ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isUnlocked(id)
}

func (t *Tracker) isUnlocked(id ID) bool {
	for _, u := range t.state.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// Unlock marks id unlocked and persists the state. It returns false when
// id was already unlocked.
func (t *Tracker) Unlock(id ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.unlock(id) {
		return false
	}
	t.save()
	return true
}

func (t *Tracker) unlock(id ID) bool {
	if t.isUnlocked(id) {
		return false
	}
	t.state.Unlocked = append(t.state.Unlocked, id)
	sort.Slice(t.state.Unlocked, func(i, j int) bool { return t.state.Unlocked[i] < t.state.Unlocked[j] })
	metrics.AchievementsUnlockedTotal.WithLabelValues(string(id)).Inc()
	t.logger.Info("achievement unlocked", "id", id)
	return true
}

// Check evaluates the rules and unlocks whatever is newly earned.
// It returns the newly unlocked ids in catalog order.
func (t *Tracker) Check(latestMS int, v View) []ID {
	earned := Evaluate(latestMS, v)

	t.mu.Lock()
	defer t.mu.Unlock()
	var fresh []ID
	for _, id := range earned {
		if t.unlock(id) {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) > 0 {
		t.save()
	}
	return fresh
}

// List returns the whole catalog with unlock flags.
func (t *Tracker) List() []Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	all := All()
	out := make([]Status, len(all))
	for i, a := range all {
		out[i] = Status{Achievement: a, Unlocked: t.isUnlocked(a.ID)}
	}
	return out
}

// Unlocked returns a copy of the sorted unlocked ids.
func (t *Tracker) Unlocked() []ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]ID(nil), t.state.Unlocked...)
}

// Clear forgets every unlock and persists the empty state.
func (t *Tracker) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = emptyState()
	return t.write()
}

func (t *Tracker) save() {
	if err := t.write(); err != nil {
		t.logger.Error("cannot save achievements", "err", err)
	}
}

func (t *Tracker) write() error {
	data, err := json.MarshalIndent(t.state, "", "  ")
	if err != nil {
		return fmt.Errorf("achievement: encode: %w", err)
	}
	if err := t.store.Write(storage.KeyAchievements, data); err != nil {
		return fmt.Errorf("achievement: save: %w", err)
	}
	return nil
}
