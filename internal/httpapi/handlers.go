// Package httpapi serves a read-only JSON view of the leaderboard,
// statistics and achievements.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/twitchy/internal/achievement"
	"github.com/vovakirdan/twitchy/internal/difficulty"
	"github.com/vovakirdan/twitchy/internal/ledger"
)

// Handler provides HTTP endpoints over the ledger and achievements.
type Handler struct {
	ledger       *ledger.Ledger
	achievements *achievement.Tracker
	profiles     *difficulty.Table
}

// NewHandler creates a new handler.
func NewHandler(l *ledger.Ledger, achievements *achievement.Tracker, profiles *difficulty.Table) *Handler {
	return &Handler{ledger: l, achievements: achievements, profiles: profiles}
}

// RegisterRoutes sets up the read-only routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/difficulties", h.ListDifficulties)
	r.GET("/leaderboard/:difficulty", h.GetLeaderboard)
	r.GET("/attempts/:difficulty", h.ListAttempts)
	r.GET("/stats", h.GetOverallStats)
	r.GET("/stats/:difficulty", h.GetStats)
	r.GET("/daily/:difficulty", h.GetDailyStats)
	r.GET("/achievements", h.ListAchievements)
}

type thresholdResponse struct {
	Level     difficulty.Level `json:"level"`
	Label     string           `json:"label"`
	CeilingMS int              `json:"ceilingMs"`
}

type profileResponse struct {
	ID               difficulty.ID       `json:"id"`
	Name             string              `json:"name"`
	MinWait          float64             `json:"minWait"`
	MaxWait          float64             `json:"maxWait"`
	CountdownEnabled bool                `json:"countdownEnabled"`
	WarningTime      float64             `json:"warningTime"`
	FakeSignals      bool                `json:"fakeSignals"`
	Thresholds       []thresholdResponse `json:"thresholds"`
}

// ListDifficulties handles GET /api/difficulties
func (h *Handler) ListDifficulties(c *gin.Context) {
	profiles := h.profiles.Profiles()
	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		resp := profileResponse{
			ID:               p.ID,
			Name:             p.DisplayName(),
			MinWait:          p.MinWait,
			MaxWait:          p.MaxWait,
			CountdownEnabled: p.CountdownEnabled,
			WarningTime:      p.WarningTime,
			FakeSignals:      p.FakeSignals,
		}
		for _, t := range p.Thresholds {
			resp.Thresholds = append(resp.Thresholds, thresholdResponse{Level: t.Level, Label: t.Label, CeilingMS: t.CeilingMS})
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{"difficulties": out, "count": len(out)})
}

// GetLeaderboard handles GET /api/leaderboard/:difficulty
func (h *Handler) GetLeaderboard(c *gin.Context) {
	id, ok := h.difficultyParam(c)
	if !ok {
		return
	}
	limit := parseLimit(c, 10, ledger.MaxBestTimes)
	times := h.ledger.BestTimes(id, limit)
	c.JSON(http.StatusOK, gin.H{
		"difficulty": id,
		"bestTimes":  times,
		"count":      len(times),
		"statistics": h.ledger.Statistics(id),
	})
}

// ListAttempts handles GET /api/attempts/:difficulty
func (h *Handler) ListAttempts(c *gin.Context) {
	id, ok := h.difficultyParam(c)
	if !ok {
		return
	}
	attempts := h.ledger.RecentAttempts(id, parseLimit(c, 20, ledger.MaxAttempts))
	c.JSON(http.StatusOK, gin.H{"difficulty": id, "attempts": attempts, "count": len(attempts)})
}

// GetOverallStats handles GET /api/stats
func (h *Handler) GetOverallStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"overall":      h.ledger.OverallStatistics(),
		"difficulties": h.ledger.AllStatistics(),
	})
}

// GetStats handles GET /api/stats/:difficulty
func (h *Handler) GetStats(c *gin.Context) {
	id, ok := h.difficultyParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"difficulty": id, "statistics": h.ledger.Statistics(id)})
}

// GetDailyStats handles GET /api/daily/:difficulty?date=YYYY-MM-DD
func (h *Handler) GetDailyStats(c *gin.Context) {
	id, ok := h.difficultyParam(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		date = h.ledger.Today()
	} else if _, err := time.Parse(ledger.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date", "message": "date must be YYYY-MM-DD"})
		return
	}

	stats, found := h.ledger.DailyStats(id, date)
	if !found {
		c.JSON(http.StatusOK, gin.H{"difficulty": id, "date": date, "daily": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"difficulty": id, "date": date, "daily": stats})
}

// ListAchievements handles GET /api/achievements
func (h *Handler) ListAchievements(c *gin.Context) {
	list := h.achievements.List()
	unlocked := 0
	for _, a := range list {
		if a.Unlocked {
			unlocked++
		}
	}
	c.JSON(http.StatusOK, gin.H{"achievements": list, "unlocked": unlocked, "total": len(list)})
}

// difficultyParam resolves :difficulty. Identifiers that are neither
// configured nor present in the ledger are a 404.
func (h *Handler) difficultyParam(c *gin.Context) (difficulty.ID, bool) {
	id := difficulty.ID(c.Param("difficulty"))
	if h.profiles.Has(id) {
		return id, true
	}
	for _, known := range h.ledger.Difficulties() {
		if known == id {
			return id, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown_difficulty", "message": "Unknown difficulty " + string(id)})
	return "", false
}

func parseLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
			if limit > maxLimit {
				limit = maxLimit
			}
		}
	}
	return limit
}
