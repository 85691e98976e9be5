package services

import (
	"reflect"
	"testing"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

func TestFallbackRecommendations_FiltersToPlaylistGenres(t *testing.T) {
	recs := fallbackRecommendations(testSummary(), DefaultRules(), 3)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if g := rec.Attributes["genre"]; g != "pop" && g != "rock" {
			t.Errorf("candidate %q tagged %q, want pop or rock", rec.Title, g)
		}
	}
}

func TestFallbackRecommendations_DominantGenreAndDecadeBoost(t *testing.T) {
	recs := fallbackRecommendations(testSummary(), DefaultRules(), 3)
	// Dominant genre pop, dominant decade 2010s: the 2010s pop
	// candidates must sort ahead of everything else.
	if recs[0].Attributes["genre"] != "pop" || recs[0].Attributes["decade"] != "2010s" {
		t.Errorf("top pick should be 2010s pop, got %v", recs[0].Attributes)
	}
}

func TestFallbackRecommendations_Deterministic(t *testing.T) {
	first := fallbackRecommendations(testSummary(), DefaultRules(), 5)
	second := fallbackRecommendations(testSummary(), DefaultRules(), 5)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("fallback not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestFallbackRecommendations_NoGenreOverlap(t *testing.T) {
	summary := domain.PlaylistSummary{
		TrackCount:  5,
		GenreCounts: map[string]int{"obscuro-core": 5},
	}
	recs := fallbackRecommendations(summary, DefaultRules(), 3)
	if len(recs) != 3 {
		t.Fatalf("expected head-of-table fallback, got %d entries", len(recs))
	}
}

func TestFallbackRecommendations_EmptySummary(t *testing.T) {
	recs := fallbackRecommendations(domain.PlaylistSummary{}, DefaultRules(), 3)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations from an empty summary, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.Title == "" || rec.Artist == "" || rec.Rationale == "" {
			t.Errorf("incomplete recommendation: %+v", rec)
		}
	}
}

func TestFallbackRecommendations_CapAndZero(t *testing.T) {
	rules := DefaultRules()
	if got := fallbackRecommendations(testSummary(), rules, 100); len(got) > len(rules.Candidates) {
		t.Errorf("returned more entries than the table holds: %d", len(got))
	}
	if got := fallbackRecommendations(testSummary(), rules, 0); len(got) != 0 {
		t.Errorf("n=0 should return nothing, got %d", len(got))
	}
}

func TestFallbackInsights_FullyPopulated(t *testing.T) {
	summary := testSummary()
	ins := fallbackInsights(summary)

	if ins.Description == "" || ins.MoodDescription == "" || ins.GenreAnalysis == "" {
		t.Errorf("text fields incomplete: %+v", ins)
	}
	if ins.BPMRange.Min != summary.TempoMin || ins.BPMRange.Max != summary.TempoMax {
		t.Errorf("bpm range: %+v", ins.BPMRange)
	}
	if ins.Instruments == nil || ins.KeyDistribution == nil {
		t.Error("maps must be non-nil")
	}
	if !reflect.DeepEqual(ins.KeyDistribution, summary.KeyCounts) {
		t.Errorf("key distribution: got %v, want %v", ins.KeyDistribution, summary.KeyCounts)
	}
}

func TestFallbackInsights_EmptySummary(t *testing.T) {
	ins := fallbackInsights(domain.PlaylistSummary{})
	if ins.Description == "" || ins.MoodDescription == "" || ins.GenreAnalysis == "" {
		t.Errorf("empty summary must still produce complete insights: %+v", ins)
	}
	if ins.Instruments == nil || ins.KeyDistribution == nil {
		t.Error("maps must be non-nil")
	}
}

func TestRegionFor(t *testing.T) {
	rules := DefaultRules()
	if got := rules.RegionFor("k-pop"); got != "South Korea" {
		t.Errorf("k-pop: got %q", got)
	}
	if got := rules.RegionFor("pop"); got != "" {
		t.Errorf("pop should have no region hint, got %q", got)
	}
}
