package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

// fallbackInsights derives a complete Insights record from the summary
// alone, without the model. Deterministic: same summary, same output.
func fallbackInsights(summary domain.PlaylistSummary) domain.Insights {
	ins := domain.Insights{
		MoodDescription: describeMood(summary.Mood),
		GenreAnalysis:   describeGenres(summary),
		BPMRange: domain.BPMRange{
			Min:        summary.TempoMin,
			Max:        summary.TempoMax,
			MostCommon: math.Round(summary.TempoMean),
		},
		Instruments:     map[string]string{},
		KeyDistribution: map[string]int{},
	}
	for k, v := range summary.KeyCounts {
		ins.KeyDistribution[k] = v
	}

	if summary.TrackCount == 0 {
		ins.Description = "Playlist statistics are unavailable for this request."
		return ins
	}

	ins.Description = fmt.Sprintf(
		"A %d-track playlist running %s, with tempos between %.0f and %.0f BPM.",
		summary.TrackCount,
		domain.FormatDuration(summary.TotalDurationMs),
		summary.TempoMin, summary.TempoMax,
	)
	return ins
}

func describeMood(m domain.MoodProfile) string {
	energy := "moderate-energy"
	switch {
	case m.EnergyMean >= 0.7:
		energy = "high-energy"
	case m.EnergyMean < 0.4:
		energy = "low-energy"
	}
	tone := "emotionally balanced"
	switch {
	case m.ValenceMean >= 0.6:
		tone = "upbeat"
	case m.ValenceMean < 0.4:
		tone = "melancholic"
	}
	return fmt.Sprintf("Overall %s and %s.", energy, tone)
}

func describeGenres(summary domain.PlaylistSummary) string {
	if len(summary.GenreCounts) == 0 {
		return "No genre tags were reported for these tracks."
	}
	genres := make([]string, 0, len(summary.GenreCounts))
	for g := range summary.GenreCounts {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	msg := fmt.Sprintf("Centered on %s", summary.DominantGenre)
	if len(genres) > 1 {
		msg += fmt.Sprintf(", drawing from %s", strings.Join(genres, ", "))
	}
	if summary.DominantDecade != "" {
		msg += fmt.Sprintf(", leaning toward the %s", summary.DominantDecade)
	}
	return msg + "."
}

// fallbackRecommendations selects up to n candidates from the rule
// table. Candidates are filtered to genres present in the summary, with
// boosts for the dominant genre, dominant decade, and matching region.
// Ordering is deterministic: score descending, table order on ties.
// With no genre overlap (or no summary at all) it degrades further to
// the head of the table so the result is never empty.
func fallbackRecommendations(summary domain.PlaylistSummary, rules Rules, n int) []domain.Recommendation {
	if n <= 0 {
		return []domain.Recommendation{}
	}

	type scored struct {
		c     Candidate
		score int
	}
	matched := make([]scored, 0, len(rules.Candidates))
	for _, c := range rules.Candidates {
		if _, ok := summary.GenreCounts[c.Genre]; !ok {
			continue
		}
		score := 1
		if c.Genre == summary.DominantGenre {
			score += 2
		}
		if c.Decade != "" && c.Decade == summary.DominantDecade {
			score++
		}
		if c.Region != "" && c.Region == summary.Region {
			score++
		}
		matched = append(matched, scored{c: c, score: score})
	}

	if len(matched) == 0 {
		for _, c := range rules.Candidates {
			matched = append(matched, scored{c: c, score: 0})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	if len(matched) > n {
		matched = matched[:n]
	}

	recs := make([]domain.Recommendation, 0, len(matched))
	for _, m := range matched {
		recs = append(recs, candidateRecommendation(m.c, summary))
	}
	return recs
}

func candidateRecommendation(c Candidate, summary domain.PlaylistSummary) domain.Recommendation {
	attrs := map[string]string{
		"genre":  c.Genre,
		"decade": c.Decade,
		"tempo":  c.Tempo,
	}
	if c.Region != "" {
		attrs["region"] = c.Region
	}

	rationale := fmt.Sprintf("A staple of %s from the %s.", c.Genre, c.Decade)
	if c.Genre == summary.DominantGenre && summary.DominantGenre != "" {
		rationale = fmt.Sprintf("Shares the playlist's dominant genre, %s.", c.Genre)
		if c.Decade == summary.DominantDecade && summary.DominantDecade != "" {
			rationale = fmt.Sprintf("Shares the playlist's dominant genre, %s, and its %s core.", c.Genre, c.Decade)
		}
	}

	return domain.Recommendation{
		Title:      c.Title,
		Artist:     c.Artist,
		Rationale:  rationale,
		Attributes: attrs,
	}
}
