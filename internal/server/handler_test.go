package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/headsetlab/comfortscan/internal/model"
)

type fakeSource struct {
	snap       *model.Snapshot
	next       *model.Snapshot
	refreshErr error
	refreshes  int
}

func (f *fakeSource) Current() *model.Snapshot {
	return f.snap
}

func (f *fakeSource) Refresh(_ context.Context) (*model.Snapshot, error) {
	f.refreshes++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	if f.next != nil {
		f.snap = f.next
	}
	return f.snap, nil
}

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Stats: model.DashboardStats{
			TotalReviews:        20,
			TotalMentions:       8,
			TotalIssues:         3,
			DistinctAccessories: 2,
			TopAccessory:        "BoboVR M3 Pro",
			MostFrequentIssue:   "weight",
		},
		Rankings: []model.AccessoryRanking{
			{AccessoryName: "BoboVR M3 Pro", AccessoryType: "head_strap", MentionCount: 6, AvgSentiment: 0.5, RecommendationScore: 0.8},
			{AccessoryName: "Anker Power Bank", AccessoryType: "battery", MentionCount: 2, AvgSentiment: 0.1, RecommendationScore: 0.3},
		},
		Issues: []model.IssueSummary{
			{IssueType: "weight", SeverityCounts: model.SeverityCounts{High: 1, Medium: 1}, Total: 2},
			{IssueType: "heat_sweating", SeverityCounts: model.SeverityCounts{Low: 1}, Total: 1},
		},
		Sources: []model.SourceCount{{Source: "reddit", Reviews: 15}, {Source: "amazon", Reviews: 5}},
		Details: map[string]model.AccessoryDetail{
			"bobovr m3 pro": {
				AccessoryRanking: model.AccessoryRanking{AccessoryName: "BoboVR M3 Pro", AccessoryType: "head_strap", MentionCount: 6},
				Pros:             []string{"comfortable for hours"},
			},
		},
	}
}

func newTestServer(source SnapshotSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(model.ServerConfig{Addr: ":0", CacheTTL: time.Minute}, source, logger).Engine()
}

func doRequest(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestGetStats(t *testing.T) {
	engine := newTestServer(&fakeSource{snap: testSnapshot()})

	w := doRequest(engine, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Stats model.DashboardStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 20, body.Stats.TotalReviews)
	assert.Equal(t, "BoboVR M3 Pro", body.Stats.TopAccessory)
}

func TestNoSnapshotYet(t *testing.T) {
	engine := newTestServer(&fakeSource{})

	w := doRequest(engine, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetRankingsFilters(t *testing.T) {
	engine := newTestServer(&fakeSource{snap: testSnapshot()})

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"all", "/api/rankings", 2},
		{"by type", "/api/rankings?type=head_strap", 1},
		{"min mentions", "/api/rankings?min_mentions=5", 1},
		{"limit", "/api/rankings?limit=1", 1},
		{"no match", "/api/rankings?type=lens", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(engine, http.MethodGet, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Rankings []model.AccessoryRanking `json:"rankings"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			assert.Equal(t, tt.want, len(body.Rankings))
		})
	}
}

func TestGetAccessory(t *testing.T) {
	engine := newTestServer(&fakeSource{snap: testSnapshot()})

	w := doRequest(engine, http.MethodGet, "/api/accessory/BoboVR%20M3%20Pro")
	assert.Equal(t, http.StatusOK, w.Code)

	var detail model.AccessoryDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "BoboVR M3 Pro", detail.AccessoryName)

	w = doRequest(engine, http.MethodGet, "/api/accessory/Unknown%20Strap")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetIssuesBySeverity(t *testing.T) {
	engine := newTestServer(&fakeSource{snap: testSnapshot()})

	w := doRequest(engine, http.MethodGet, "/api/issues/by-severity?severity=high")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/issues/by-severity?severity=catastrophic")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSearch(t *testing.T) {
	engine := newTestServer(&fakeSource{snap: testSnapshot()})

	w := doRequest(engine, http.MethodGet, "/api/search?q=bobo")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []model.AccessoryRanking `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(body.Results))

	w = doRequest(engine, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAccessoryTypes(t *testing.T) {
	engine := newTestServer(&fakeSource{snap: testSnapshot()})

	w := doRequest(engine, http.MethodGet, "/api/accessory-types")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Types []struct {
			Type     string `json:"type"`
			Mentions int    `json:"mentions"`
		} `json:"types"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, len(body.Types))
	assert.Equal(t, "head_strap", body.Types[0].Type)
}

func TestRefreshPublishesAndFlushesCache(t *testing.T) {
	updated := testSnapshot()
	updated.Stats.TotalReviews = 25

	source := &fakeSource{snap: testSnapshot(), next: updated}
	engine := newTestServer(source)

	// Prime the response cache.
	w := doRequest(engine, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, source.refreshes)

	// Cached response must be gone: stats now reflect the new snapshot.
	w = doRequest(engine, http.MethodGet, "/api/stats")
	var body struct {
		Stats model.DashboardStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 25, body.Stats.TotalReviews)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	source := &fakeSource{snap: testSnapshot(), refreshErr: errors.New("db down")}
	engine := newTestServer(source)

	w := doRequest(engine, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResponseCacheServesRepeats(t *testing.T) {
	source := &fakeSource{snap: testSnapshot()}
	engine := newTestServer(source)

	first := doRequest(engine, http.MethodGet, "/api/rankings")
	assert.Equal(t, http.StatusOK, first.Code)

	// Mutate the snapshot behind the source's back; the cached response
	// must still be served until a refresh flushes it.
	source.snap = &model.Snapshot{}
	second := doRequest(engine, http.MethodGet, "/api/rankings")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}
