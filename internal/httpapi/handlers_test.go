package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/ledger"
	"github.com/vovakirdan/twitchy/internal/storage"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

func setupRouter(t *testing.T) (*gin.Engine, *ledger.Ledger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemStore()
	tracker := achievement.NewTracker(store, nil)
	l := ledger.New(ledger.Config{Store: store, Achievements: tracker, Clock: fixedClock{}})
	return NewRouter(NewHandler(l, tracker, difficulty.DefaultTable())), l
}

func get(t *testing.T, r http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHealthz(t *testing.T) {
	r, _ := setupRouter(t)
	w, body := get(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestListDifficulties(t *testing.T) {
	r, _ := setupRouter(t)
	w, body := get(t, r, "/api/difficulties")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), body["count"])

	list := body["difficulties"].([]any)
	first := list[0].(map[string]any)
	assert.Equal(t, "easy", first["id"])
	assert.Equal(t, true, first["countdownEnabled"])
}

func TestGetLeaderboard(t *testing.T) {
	r, l := setupRouter(t)
	l.Record(120, difficulty.Normal)
	l.Record(90, difficulty.Normal)
	l.Record(300, difficulty.Normal)

	w, body := get(t, r, "/api/leaderboard/normal?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{float64(90), float64(120)}, body["bestTimes"])

	stats := body["statistics"].(map[string]any)
	assert.Equal(t, float64(3), stats["total_attempts"])
	assert.Equal(t, float64(90), stats["best_time"])
}

func TestGetLeaderboardUnknownDifficulty(t *testing.T) {
	r, _ := setupRouter(t)
	w, body := get(t, r, "/api/leaderboard/impossible")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "unknown_difficulty", body["error"])
}

func TestGetStatsEmpty(t *testing.T) {
	r, _ := setupRouter(t)
	w, body := get(t, r, "/api/stats/hard")
	require.Equal(t, http.StatusOK, w.Code)

	stats := body["statistics"].(map[string]any)
	assert.Equal(t, float64(0), stats["total_attempts"])
	assert.Nil(t, stats["best_time"])
	assert.Nil(t, stats["average_time"])
}

func TestGetOverallStats(t *testing.T) {
	r, l := setupRouter(t)
	l.Record(200, difficulty.Hard)
	l.Record(210, difficulty.Hard)
	l.Record(300, difficulty.Easy)

	w, body := get(t, r, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)
	overall := body["overall"].(map[string]any)
	assert.Equal(t, float64(3), overall["total_attempts"])
	assert.Equal(t, "hard", overall["favorite_difficulty"])
	assert.Len(t, body["difficulties"], 5)
}

func TestGetDailyStats(t *testing.T) {
	r, l := setupRouter(t)
	l.Record(200, difficulty.Normal)
	l.Record(400, difficulty.Normal)

	w, body := get(t, r, "/api/daily/normal")
	require.Equal(t, http.StatusOK, w.Code)
	daily := body["daily"].(map[string]any)
	assert.Equal(t, "2024-06-01", daily["date"])
	assert.Equal(t, float64(2), daily["attempts"])
	assert.Equal(t, float64(300), daily["average_time"])

	w, body = get(t, r, "/api/daily/normal?date=2020-01-01")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["daily"])

	w, _ = get(t, r, "/api/daily/normal?date=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAchievements(t *testing.T) {
	r, l := setupRouter(t)
	l.Record(180, difficulty.Normal)

	w, body := get(t, r, "/api/achievements")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["unlocked"])
	assert.Equal(t, float64(5), body["total"])

	first := body["achievements"].([]any)[0].(map[string]any)
	assert.Equal(t, "quick_draw", first["id"])
	assert.Equal(t, true, first["unlocked"])
}

func TestListAttempts(t *testing.T) {
	r, l := setupRouter(t)
	for _, ms := range []int{500, 400, 300} {
		l.Record(ms, difficulty.Beast)
	}

	w, body := get(t, r, "/api/attempts/beast?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	attempts := body["attempts"].([]any)
	require.Len(t, attempts, 2)
	assert.Equal(t, float64(400), attempts[0].(map[string]any)["time_ms"])
}

func TestMetricsRoute(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "twitchy_")
}
