package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/headsetlab/comfortscan/internal/model"
)

// Handler serves the query API from the current snapshot.
type Handler struct {
	source SnapshotSource
	logger *slog.Logger
	// onRefresh runs after a successful refresh, e.g. to flush the
	// response cache.
	onRefresh func()
}

// NewHandler creates a handler over the snapshot source.
func NewHandler(source SnapshotSource, logger *slog.Logger, onRefresh func()) *Handler {
	return &Handler{source: source, logger: logger, onRefresh: onRefresh}
}

// snapshot returns the current snapshot or responds 503 when no
// analysis has run yet.
func (h *Handler) snapshot(c *gin.Context) (*model.Snapshot, bool) {
	snap := h.source.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no analysis snapshot yet, run an analysis or POST /api/refresh"})
		return nil, false
	}
	return snap, true
}

// GetHealth responds 200 as long as the process is up.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetStats returns the dashboard statistics.
func (h *Handler) GetStats(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"generated_at": snap.GeneratedAt,
		"stats":        snap.Stats,
	})
}

// GetRankings returns accessory rankings, optionally filtered by
// accessory type and minimum mention count.
func (h *Handler) GetRankings(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	accessoryType := c.Query("type")
	minMentions := intQuery(c, "min_mentions", 0)
	limit := intQuery(c, "limit", 0)

	rankings := make([]model.AccessoryRanking, 0, len(snap.Rankings))
	for _, r := range snap.Rankings {
		if accessoryType != "" && r.AccessoryType != accessoryType {
			continue
		}
		if r.MentionCount < minMentions {
			continue
		}
		rankings = append(rankings, r)
	}
	if limit > 0 && len(rankings) > limit {
		rankings = rankings[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"rankings": rankings, "total": len(rankings)})
}

// GetIssues returns all issue summaries, most frequent first.
func (h *Handler) GetIssues(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": snap.Issues, "total": len(snap.Issues)})
}

// GetIssuesBySeverity returns issue summaries reduced to a single
// severity's counts.
func (h *Handler) GetIssuesBySeverity(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	sev := model.Severity(c.Query("severity"))
	if !sev.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "severity must be low, medium or high"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"severity": sev, "issues": snap.IssuesBySeverity(sev)})
}

// GetSources returns review counts per source.
func (h *Handler) GetSources(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": snap.Sources})
}

// GetAccessory returns the full detail for one accessory by canonical
// name, case-insensitive.
func (h *Handler) GetAccessory(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	name := c.Param("name")
	detail, found := snap.Detail(name)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown accessory: " + name})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetAccessoryTypes returns per-type accessory and mention counts.
func (h *Handler) GetAccessoryTypes(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	type typeCount struct {
		Type        string `json:"type"`
		Accessories int    `json:"accessories"`
		Mentions    int    `json:"mentions"`
	}
	byType := make(map[string]*typeCount)
	for _, r := range snap.Rankings {
		tc := byType[r.AccessoryType]
		if tc == nil {
			tc = &typeCount{Type: r.AccessoryType}
			byType[r.AccessoryType] = tc
		}
		tc.Accessories++
		tc.Mentions += r.MentionCount
	}

	types := make([]typeCount, 0, len(byType))
	for _, tc := range byType {
		types = append(types, *tc)
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Mentions != types[j].Mentions {
			return types[i].Mentions > types[j].Mentions
		}
		return types[i].Type < types[j].Type
	})

	c.JSON(http.StatusOK, gin.H{"types": types})
}

// GetSearch returns rankings whose accessory name contains the query
// substring, case-insensitive.
func (h *Handler) GetSearch(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	limit := intQuery(c, "limit", 10)

	results := snap.Search(query, limit)
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results, "total": len(results)})
}

// PostRefresh re-runs the analysis and publishes the new snapshot.
func (h *Handler) PostRefresh(c *gin.Context) {
	snap, err := h.source.Refresh(c.Request.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh canceled"})
			return
		}
		h.logger.Error("refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}

	if h.onRefresh != nil {
		h.onRefresh()
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": snap.GeneratedAt,
		"stats":        snap.Stats,
	})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
