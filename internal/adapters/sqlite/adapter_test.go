package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

func testResult(sessionID, requestID, playlistID string, degraded bool) domain.AnalysisResult {
	return domain.AnalysisResult{
		RequestID:  requestID,
		SessionID:  sessionID,
		PlaylistID: playlistID,
		Summary: domain.PlaylistSummary{
			TrackCount:  2,
			TempoMin:    90,
			TempoMax:    140,
			KeyCounts:   map[string]int{"A minor": 1},
			GenreCounts: map[string]int{"pop": 2},
		},
		Insights: domain.Insights{
			Description:     "desc",
			MoodDescription: "mood",
			GenreAnalysis:   "genres",
			Instruments:     map[string]string{},
			KeyDistribution: map[string]int{"A minor": 1},
		},
		Recommendations: []domain.Recommendation{
			{Title: "Rec", Artist: "Artist", Rationale: "because", Attributes: map[string]string{"genre": "pop"}},
		},
		Degraded:       degraded,
		DegradedReason: "",
		CreatedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestAdapter_SaveAndLoad(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	want := testResult("sess-1", "req-1", "pl-1", false)
	if err := a.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := a.LatestBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RequestID != "req-1" || got.PlaylistID != "pl-1" {
		t.Errorf("identity: %+v", got)
	}
	if got.Summary.TempoMax != 140 || got.Summary.GenreCounts["pop"] != 2 {
		t.Errorf("summary did not round-trip: %+v", got.Summary)
	}
	if len(got.Recommendations) != 1 || got.Recommendations[0].Title != "Rec" {
		t.Errorf("recommendations did not round-trip: %+v", got.Recommendations)
	}
}

func TestAdapter_NewSubmissionReplacesSlot(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if err := a.Save(ctx, testResult("sess-1", "req-1", "pl-1", false)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := a.Save(ctx, testResult("sess-1", "req-2", "pl-2", true)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := a.LatestBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RequestID != "req-2" || got.PlaylistID != "pl-2" || !got.Degraded {
		t.Errorf("slot not replaced: %+v", got)
	}
}

func TestAdapter_SessionsAreIsolated(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if err := a.Save(ctx, testResult("sess-1", "req-1", "pl-1", false)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := a.Save(ctx, testResult("sess-2", "req-2", "pl-2", false)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := a.LatestBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RequestID != "req-1" {
		t.Errorf("wrong session's slot: %+v", got)
	}
}

func TestAdapter_MissingSession(t *testing.T) {
	a := newTestAdapter(t)
	_, err := a.LatestBySession(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
