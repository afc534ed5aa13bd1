package ledger

import (
	"encoding/json"
	"errors"

	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/storage"
)

// legacyDocument is the single-list format written before scores were
// partitioned by difficulty.
type legacyDocument struct {
	BestTimes   []int       `json:"best_times"`
	AllAttempts []Attempt   `json:"all_attempts"`
	Statistics  *Statistics `json:"statistics"`
}

func (l *Ledger) load() {
	l.doc = newDocument()

	data, err := l.store.Read(storage.KeyScores)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		l.logger.Error("cannot load scores, starting empty", "err", err)
		return
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		l.logger.Error("corrupt scores document, starting empty", "err", err)
		return
	}

	_, partitioned := probe["by_difficulty"]
	_, hasBest := probe["best_times"]
	_, hasAttempts := probe["all_attempts"]
	if !partitioned && (hasBest || hasAttempts) {
		var old legacyDocument
		if err := json.Unmarshal(data, &old); err != nil {
			l.logger.Error("corrupt legacy scores document, starting empty", "err", err)
			return
		}
		l.doc = migrate(old)
		l.logger.Info("migrated scores to per-difficulty format", "attempts", l.doc.Overall.TotalAttempts)
		l.persist()
		return
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		l.logger.Error("corrupt scores document, starting empty", "err", err)
		return
	}
	for id, dl := range doc.ByDifficulty {
		if dl == nil {
			delete(doc.ByDifficulty, id)
		}
	}
	doc.recompute()
	l.doc = doc
}

// migrate moves legacy attempts into the partitioned layout. Attempts
// without a known difficulty are assigned to normal.
func migrate(old legacyDocument) Document {
	doc := newDocument()
	for _, a := range old.AllAttempts {
		if !difficulty.IsKnown(a.Difficulty) {
			a.Difficulty = difficulty.Normal
		}
		dl := doc.ByDifficulty[a.Difficulty]
		dl.AllAttempts = append(dl.AllAttempts, a)
	}
	if old.Statistics != nil {
		normal := doc.ByDifficulty[difficulty.Normal]
		normal.Statistics.TotalAttempts = old.Statistics.TotalAttempts
		if old.Statistics.BestTime != nil {
			best := *old.Statistics.BestTime
			normal.Statistics.BestTime = &best
		}
	}
	doc.recompute()
	return doc
}
