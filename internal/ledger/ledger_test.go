package ledger

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/storage"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func newTestLedger(t *testing.T) (*Ledger, *storage.MemStore, *fixedClock) {
	t.Helper()
	store := storage.NewMemStore()
	clock := &fixedClock{t: time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)}
	return New(Config{Store: store, Clock: clock}), store, clock
}

func TestBestTimesAscending(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Record(120, difficulty.Normal)
	l.Record(90, difficulty.Normal)

	got := l.BestTimes(difficulty.Normal, 20)
	if !reflect.DeepEqual(got, []int{90, 120}) {
		t.Errorf("BestTimes = %v, want [90 120]", got)
	}
	if got := l.BestTimes(difficulty.Normal, 1); !reflect.DeepEqual(got, []int{90}) {
		t.Errorf("BestTimes(limit 1) = %v", got)
	}
}

func TestBestTimesCappedAtTwenty(t *testing.T) {
	l, _, _ := newTestLedger(t)
	for i := 30; i > 0; i-- {
		l.Record(i*10, difficulty.Hard)
	}
	got := l.BestTimes(difficulty.Hard, 0)
	if len(got) != MaxBestTimes {
		t.Fatalf("expected %d best times, got %d", MaxBestTimes, len(got))
	}
	if got[0] != 10 || got[19] != 200 {
		t.Errorf("unexpected best times: %v", got)
	}
}

func TestAttemptsCappedAtFiveHundred(t *testing.T) {
	l, _, _ := newTestLedger(t)
	for i := 0; i < 501; i++ {
		l.Record(1000+i, difficulty.Easy)
	}

	all := l.RecentAttempts(difficulty.Easy, 0)
	if len(all) != MaxAttempts {
		t.Fatalf("expected %d attempts, got %d", MaxAttempts, len(all))
	}
	if all[0].TimeMS != 1001 || all[len(all)-1].TimeMS != 1500 {
		t.Errorf("expected most recent 500 (1001..1500), got %d..%d", all[0].TimeMS, all[len(all)-1].TimeMS)
	}

	st := l.Statistics(difficulty.Easy)
	if st.TotalAttempts != 501 {
		t.Errorf("total_attempts should count every record, got %d", st.TotalAttempts)
	}
	if st.BestTime == nil || *st.BestTime != 1000 {
		t.Errorf("best_time should stay the lifetime minimum, got %v", st.BestTime)
	}
	// Windowed average over 1001..1500.
	if st.AverageTime == nil || *st.AverageTime != 1250.5 {
		t.Errorf("average_time = %v, want 1250.5", st.AverageTime)
	}
	if best := l.BestTimes(difficulty.Easy, 1); best[0] != 1001 {
		t.Errorf("best_times should come from retained attempts, got %v", best)
	}
}

func TestAverageIsMeanOfRetained(t *testing.T) {
	l, _, _ := newTestLedger(t)
	times := []int{200, 300, 250, 410}
	sum := 0
	for _, ms := range times {
		l.Record(ms, difficulty.Normal)
		sum += ms
	}
	st := l.Statistics(difficulty.Normal)
	want := float64(sum) / float64(len(times))
	if st.AverageTime == nil || *st.AverageTime != want {
		t.Fatalf("average = %v, want %v", st.AverageTime, want)
	}

	before := l.AllStatistics()
	l.Recompute()
	l.Recompute()
	if !reflect.DeepEqual(before, l.AllStatistics()) {
		t.Error("Recompute with no new data changed statistics")
	}
}

func TestUnknownDifficultyCreatedLazily(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Record(333, difficulty.ID("nightmare"))

	if st := l.Statistics("nightmare"); st.TotalAttempts != 1 {
		t.Errorf("expected lazily created difficulty, got %+v", st)
	}
	ids := l.Difficulties()
	if ids[len(ids)-1] != "nightmare" {
		t.Errorf("unknown difficulty should sort after canonical ones, got %v", ids)
	}
}

func TestOverallStatistics(t *testing.T) {
	l, _, _ := newTestLedger(t)
	if ov := l.OverallStatistics(); ov.TotalAttempts != 0 || ov.FavoriteDifficulty != difficulty.Normal {
		t.Errorf("empty ledger overall = %+v", ov)
	}

	l.Record(300, difficulty.Hard)
	l.Record(300, difficulty.Easy)
	ov := l.OverallStatistics()
	if ov.TotalAttempts != 2 {
		t.Errorf("total = %d, want 2", ov.TotalAttempts)
	}
	// Tie goes to the earlier difficulty.
	if ov.FavoriteDifficulty != difficulty.Easy {
		t.Errorf("favorite = %s, want easy", ov.FavoriteDifficulty)
	}

	l.Record(280, difficulty.Hard)
	if fav := l.OverallStatistics().FavoriteDifficulty; fav != difficulty.Hard {
		t.Errorf("favorite = %s, want hard", fav)
	}
}

func TestDailyStats(t *testing.T) {
	l, _, clock := newTestLedger(t)
	l.Record(200, difficulty.Normal)
	l.Record(300, difficulty.Normal)
	clock.t = clock.t.Add(24 * time.Hour)
	l.Record(500, difficulty.Normal)

	ds, ok := l.DailyStats(difficulty.Normal, "2024-03-09")
	if !ok {
		t.Fatal("expected stats for 2024-03-09")
	}
	if ds.Attempts != 2 || ds.BestTime != 200 || ds.AverageTime != 250 || ds.TotalTime != 500 {
		t.Errorf("unexpected daily stats: %+v", ds)
	}

	if _, ok := l.DailyStats(difficulty.Normal, "2023-01-01"); ok {
		t.Error("a day without attempts should report no stats")
	}
	if _, ok := l.DailyStats("unknown", "2024-03-09"); ok {
		t.Error("an unknown difficulty should report no stats")
	}
	if l.Today() != "2024-03-10" {
		t.Errorf("Today() = %s", l.Today())
	}
}

func TestRoundTrip(t *testing.T) {
	l, store, clock := newTestLedger(t)
	for i, ms := range []int{250, 190, 410, 175, 222} {
		l.Record(ms, difficulty.Canonical()[i%3])
	}

	reloaded := New(Config{Store: store, Clock: clock})
	for _, id := range difficulty.Canonical() {
		if !reflect.DeepEqual(l.BestTimes(id, 0), reloaded.BestTimes(id, 0)) {
			t.Errorf("%s best times differ after reload", id)
		}
		if !reflect.DeepEqual(l.Statistics(id), reloaded.Statistics(id)) {
			t.Errorf("%s statistics differ after reload", id)
		}
	}
	if l.OverallStatistics() != reloaded.OverallStatistics() {
		t.Errorf("overall differs: %+v vs %+v", l.OverallStatistics(), reloaded.OverallStatistics())
	}
}

func TestPersistedSchema(t *testing.T) {
	l, store, _ := newTestLedger(t)
	l.Record(180, difficulty.Beast)

	data, err := store.Read(storage.KeyScores)
	if err != nil {
		t.Fatalf("scores not written: %v", err)
	}
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid document: %v", err)
	}
	if _, ok := raw["by_difficulty"]["twitchy-god"]; !ok {
		t.Error("document should carry every canonical difficulty")
	}
	if _, ok := raw["overall_statistics"]["favorite_difficulty"]; !ok {
		t.Error("document should carry overall_statistics")
	}

	var doc Document
	json.Unmarshal(data, &doc)
	a := doc.ByDifficulty[difficulty.Beast].AllAttempts[0]
	if a.Date != "2024-03-09" || a.Timestamp != "2024-03-09T14:30:00.000000" || a.Difficulty != difficulty.Beast {
		t.Errorf("unexpected attempt: %+v", a)
	}
	if doc.ByDifficulty[difficulty.Easy].Statistics.BestTime != nil {
		t.Error("empty difficulty should persist a null best_time")
	}
}

func TestMigrationOfLegacyDocument(t *testing.T) {
	store := storage.NewMemStore()
	legacy := `{
		"best_times": [150, 200, 210, 300, 400],
		"all_attempts": [
			{"time_ms": 300, "timestamp": "2023-05-01T10:00:00", "date": "2023-05-01"},
			{"time_ms": 200, "timestamp": "2023-05-01T10:01:00", "date": "2023-05-01"},
			{"time_ms": 400, "timestamp": "2023-05-01T10:02:00", "date": "2023-05-01"},
			{"time_ms": 150, "timestamp": "2023-05-02T10:00:00", "date": "2023-05-02"},
			{"time_ms": 210, "timestamp": "2023-05-02T10:01:00", "date": "2023-05-02"}
		]
	}`
	store.Write(storage.KeyScores, []byte(legacy))

	l := New(Config{Store: store})

	if got := len(l.RecentAttempts(difficulty.Normal, 0)); got != 5 {
		t.Errorf("expected 5 attempts under normal, got %d", got)
	}
	if ov := l.OverallStatistics(); ov.TotalAttempts != 5 {
		t.Errorf("overall total = %d, want 5", ov.TotalAttempts)
	}
	if got := l.BestTimes(difficulty.Normal, 0); !reflect.DeepEqual(got, []int{150, 200, 210, 300, 400}) {
		t.Errorf("best times not rebuilt: %v", got)
	}

	// The migrated layout is saved right away.
	data, _ := store.Read(storage.KeyScores)
	var probe map[string]json.RawMessage
	json.Unmarshal(data, &probe)
	if _, ok := probe["by_difficulty"]; !ok {
		t.Error("migrated document was not re-persisted")
	}
}

func TestCorruptDocumentYieldsDefaults(t *testing.T) {
	store := storage.NewMemStore()
	store.Write(storage.KeyScores, []byte("{{{"))

	l := New(Config{Store: store})
	if l.OverallStatistics().TotalAttempts != 0 {
		t.Error("corrupt document should load as empty")
	}
	if got := l.BestTimes(difficulty.Normal, 10); len(got) != 0 {
		t.Errorf("expected no best times, got %v", got)
	}
}

func TestWriteFailureKeepsState(t *testing.T) {
	l, store, _ := newTestLedger(t)
	store.FailWrites = errors.New("disk full")

	l.Record(250, difficulty.Normal)
	if st := l.Statistics(difficulty.Normal); st.TotalAttempts != 1 {
		t.Errorf("in-memory state should survive a failed write, got %+v", st)
	}

	store.FailWrites = nil
	l.Record(260, difficulty.Normal)
	reloaded := New(Config{Store: store})
	if st := reloaded.Statistics(difficulty.Normal); st.TotalAttempts != 2 {
		t.Errorf("next successful write should reconcile, got %+v", st)
	}
}

func TestRecordRunsAchievements(t *testing.T) {
	store := storage.NewMemStore()
	tracker := achievement.NewTracker(store, nil)
	l := New(Config{Store: store, Achievements: tracker})

	got := l.Record(140, difficulty.Hard)
	if len(got) != 2 {
		t.Errorf("expected quick_draw and lightning_fast, got %v", got)
	}
	if again := l.Record(130, difficulty.Hard); len(again) != 0 {
		t.Errorf("nothing new should unlock, got %v", again)
	}
}

func TestClear(t *testing.T) {
	l, store, _ := newTestLedger(t)
	l.Record(200, difficulty.Normal)
	if err := l.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if l.OverallStatistics().TotalAttempts != 0 {
		t.Error("Clear should drop history")
	}
	if New(Config{Store: store}).Statistics(difficulty.Normal).TotalAttempts != 0 {
		t.Error("Clear should be persisted")
	}
}
