package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
	"github.com/ewilliams-labs/resonate/internal/core/ports"
)

const fallbackRecommendationCount = 3

// Pipeline coordinates one analysis request end to end: fetch,
// aggregate, model calls, normalization, session persistence. One
// request at a time per session; no fan-out between the catalog and
// model calls, since the second depends on the first's output.
type Pipeline struct {
	catalog ports.CatalogProvider
	model   ports.TextGenerator
	repo    ports.ResultRepository
	rules   Rules
	now     func() time.Time
}

// NewPipeline constructs a Pipeline with the given adapters and rule
// tables.
func NewPipeline(catalog ports.CatalogProvider, model ports.TextGenerator, repo ports.ResultRepository, rules Rules) *Pipeline {
	return &Pipeline{
		catalog: catalog,
		model:   model,
		repo:    repo,
		rules:   rules,
		now:     time.Now,
	}
}

// Analyze runs the full request: fetching -> aggregating -> requesting
// the model -> normalizing -> complete or degraded. External-service
// failures never propagate; they degrade to a statistics-only result.
// Only a malformed identifier or an empty playlist is terminal.
func (p *Pipeline) Analyze(ctx context.Context, sessionID, playlistURL string) (domain.AnalysisResult, error) {
	// 1. Validate the identifier before any network call.
	playlistID, err := domain.ParsePlaylistID(playlistURL)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("pipeline: %w", err)
	}

	result := domain.AnalysisResult{
		RequestID:  uuid.NewString(),
		SessionID:  sessionID,
		PlaylistID: playlistID,
		CreatedAt:  p.now().UTC(),
	}

	// 2. Fetch the playlist with tracks and audio features.
	log.Printf("DEBUG pipeline: fetching playlist %s", playlistID)
	playlist, err := p.catalog.GetPlaylist(ctx, playlistID)
	if err != nil {
		if !errors.Is(err, domain.ErrExternalService) {
			return domain.AnalysisResult{}, fmt.Errorf("pipeline: fetch playlist: %w", err)
		}
		log.Printf("WARN pipeline: catalog unavailable, degrading: %v", err)
		return p.finish(ctx, p.degrade(result, domain.PlaylistSummary{}, "catalog unavailable")), nil
	}
	result.PlaylistName = playlist.Name

	// 3. Aggregate. An empty playlist is terminal; the model is never
	// consulted for it.
	summary, err := domain.Aggregate(playlist.Tracks)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("pipeline: %w", err)
	}
	summary.Region = p.rules.RegionFor(summary.DominantGenre)
	result.Summary = summary

	// 4. First model call: the analysis.
	log.Printf("DEBUG pipeline: requesting analysis for %d tracks", summary.TrackCount)
	insights, ok := p.requestInsights(ctx, summary, playlist.Tracks)
	if !ok {
		return p.finish(ctx, p.degrade(result, summary, "analysis model unavailable")), nil
	}
	result.Insights = insights

	// 5. Second model call: recommendations, built from the parsed
	// analysis. A failure here keeps the model's insights and only
	// falls back on the recommendation list.
	recs, ok := p.requestRecommendations(ctx, insights)
	if !ok {
		log.Printf("WARN pipeline: recommendation call failed, using statistics fallback")
		result.Degraded = true
		result.DegradedReason = "recommendation model unavailable"
		recs = fallbackRecommendations(summary, p.rules, fallbackRecommendationCount)
	}
	result.Recommendations = recs

	return p.finish(ctx, result), nil
}

// Latest returns the session's cached result.
func (p *Pipeline) Latest(ctx context.Context, sessionID string) (domain.AnalysisResult, error) {
	result, err := p.repo.LatestBySession(ctx, sessionID)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("pipeline: load session result: %w", err)
	}
	return result, nil
}

func (p *Pipeline) requestInsights(ctx context.Context, summary domain.PlaylistSummary, tracks []domain.Track) (domain.Insights, bool) {
	text, err := p.model.GenerateText(ctx, analysisPrompt(summary, tracks))
	if err != nil {
		log.Printf("WARN pipeline: analysis call failed: %v", err)
		return domain.Insights{}, false
	}
	reply := parseModelReply(text)
	if !reply.structured {
		log.Printf("WARN pipeline: analysis reply had no structured payload")
		return domain.Insights{}, false
	}
	return decodeInsights(reply.payload, summary)
}

func (p *Pipeline) requestRecommendations(ctx context.Context, insights domain.Insights) ([]domain.Recommendation, bool) {
	text, err := p.model.GenerateText(ctx, recommendationPrompt(insights))
	if err != nil {
		log.Printf("WARN pipeline: recommendation call failed: %v", err)
		return nil, false
	}
	reply := parseModelReply(text)
	if !reply.structured {
		log.Printf("WARN pipeline: recommendation reply had no structured payload")
		return nil, false
	}
	return decodeRecommendations(reply.payload)
}

// degrade fills every remaining field of a result from the statistics
// fallback so the schema stays complete.
func (p *Pipeline) degrade(result domain.AnalysisResult, summary domain.PlaylistSummary, reason string) domain.AnalysisResult {
	result.Degraded = true
	result.DegradedReason = reason
	result.Summary = summary
	result.Insights = fallbackInsights(summary)
	result.Recommendations = fallbackRecommendations(summary, p.rules, fallbackRecommendationCount)
	return result
}

// finish replaces the session's cache slot. Persistence is best effort:
// a storage failure is logged, not surfaced, since the result itself is
// already complete.
func (p *Pipeline) finish(ctx context.Context, result domain.AnalysisResult) domain.AnalysisResult {
	if err := p.repo.Save(ctx, result); err != nil {
		log.Printf("WARN pipeline: failed to cache result for session %s: %v", result.SessionID, err)
	}
	return result
}
