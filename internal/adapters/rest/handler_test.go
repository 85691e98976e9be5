package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
	"github.com/ewilliams-labs/resonate/internal/core/services"
)

// The handler takes the concrete pipeline, so these tests wire a real
// pipeline with mock ports, exercising the HTTP and service layers
// together.

type mockCatalog struct {
	playlist domain.Playlist
	err      error
}

func (m *mockCatalog) GetPlaylist(ctx context.Context, playlistID string) (domain.Playlist, error) {
	if m.err != nil {
		return domain.Playlist{}, m.err
	}
	return m.playlist, nil
}

type mockGenerator struct {
	text string
	err  error
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

type memoryRepo struct {
	slots map[string]domain.AnalysisResult
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{slots: make(map[string]domain.AnalysisResult)}
}

func (m *memoryRepo) Save(ctx context.Context, result domain.AnalysisResult) error {
	m.slots[result.SessionID] = result
	return nil
}

func (m *memoryRepo) LatestBySession(ctx context.Context, sessionID string) (domain.AnalysisResult, error) {
	result, ok := m.slots[sessionID]
	if !ok {
		return domain.AnalysisResult{}, domain.ErrNotFound
	}
	return result, nil
}

func samplePlaylist() domain.Playlist {
	return domain.Playlist{
		ID:   "37i9dQZF1DXcBWIGoYBM5M",
		Name: "Sample",
		Tracks: []domain.Track{
			{ID: "t1", Title: "One", Artist: "A", Genres: []string{"pop"}, Features: domain.AudioFeatures{Tempo: 100, Key: 0, Mode: 1, Energy: 0.5, Valence: 0.5}},
			{ID: "t2", Title: "Two", Artist: "B", Genres: []string{"pop"}, Features: domain.AudioFeatures{Tempo: 120, Key: 9, Mode: 0, Energy: 0.7, Valence: 0.6}},
		},
	}
}

func newTestHandler(catalog *mockCatalog, gen *mockGenerator, repo *memoryRepo) *Handler {
	svc := services.NewPipeline(catalog, gen, repo, services.DefaultRules())
	return NewHandler(svc)
}

func postAnalysis(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzePlaylist_HappyPath(t *testing.T) {
	repo := newMemoryRepo()
	// An unstructured reply still yields 200: degradation is not an error.
	h := newTestHandler(&mockCatalog{playlist: samplePlaylist()}, &mockGenerator{text: "free text"}, repo)

	rec := postAnalysis(t, h, `{"playlist_url":"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var result domain.AnalysisResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.SessionID == "" {
		t.Error("session_id should be minted when absent")
	}
	if !result.Degraded {
		t.Error("unstructured model reply should mark the result degraded")
	}
	if len(result.Recommendations) == 0 || result.Insights.Description == "" {
		t.Errorf("incomplete result: %+v", result)
	}
	if _, ok := repo.slots[result.SessionID]; !ok {
		t.Error("result not cached under the minted session")
	}
}

func TestAnalyzePlaylist_KeepsProvidedSession(t *testing.T) {
	repo := newMemoryRepo()
	h := newTestHandler(&mockCatalog{playlist: samplePlaylist()}, &mockGenerator{text: "x"}, repo)

	rec := postAnalysis(t, h, `{"session_id":"sess-7","playlist_url":"37i9dQZF1DXcBWIGoYBM5M"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if _, ok := repo.slots["sess-7"]; !ok {
		t.Error("result not cached under the provided session")
	}
}

func TestAnalyzePlaylist_BadRequests(t *testing.T) {
	h := newTestHandler(&mockCatalog{playlist: samplePlaylist()}, &mockGenerator{text: "x"}, newMemoryRepo())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{not json`, http.StatusBadRequest},
		{"missing url", `{}`, http.StatusBadRequest},
		{"invalid url", `{"playlist_url":"https://example.com/nope"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postAnalysis(t, h, tt.body); rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAnalyzePlaylist_EmptyPlaylist(t *testing.T) {
	h := newTestHandler(&mockCatalog{playlist: domain.Playlist{ID: "x", Name: "Empty"}}, &mockGenerator{text: "x"}, newMemoryRepo())

	rec := postAnalysis(t, h, `{"playlist_url":"37i9dQZF1DXcBWIGoYBM5M"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rec.Code)
	}
}

func TestAnalyzePlaylist_CatalogDownStillOK(t *testing.T) {
	catalog := &mockCatalog{err: &domain.ExternalServiceError{Service: "spotify"}}
	h := newTestHandler(catalog, &mockGenerator{text: "x"}, newMemoryRepo())

	rec := postAnalysis(t, h, `{"playlist_url":"37i9dQZF1DXcBWIGoYBM5M"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog outage must degrade, not fail: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"degraded":true`) {
		t.Errorf("expected degraded payload: %s", rec.Body.String())
	}
}

func TestLatestAnalysis(t *testing.T) {
	repo := newMemoryRepo()
	repo.slots["sess-1"] = domain.AnalysisResult{SessionID: "sess-1", PlaylistID: "pl-1"}
	h := newTestHandler(&mockCatalog{}, &mockGenerator{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/sessions/sess-1/analysis", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"playlist_id":"pl-1"`) {
		t.Errorf("body: %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/sessions/unknown/analysis", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing session: got %d, want 404", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(&mockCatalog{}, &mockGenerator{}, newMemoryRepo())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
}
