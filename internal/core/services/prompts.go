package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

// The prompts pin the model to a single fenced JSON payload with fixed
// keys. Free-text replies are treated as unstructured and handled by
// the statistics fallback instead of ad hoc string heuristics.

const maxPromptTracks = 20

func analysisPrompt(summary domain.PlaylistSummary, tracks []domain.Track) string {
	var b strings.Builder
	b.WriteString("You are a music analyst. Analyze the following playlist.\n\nSONGS:\n")

	limit := len(tracks)
	if limit > maxPromptTracks {
		limit = maxPromptTracks
	}
	for i := 0; i < limit; i++ {
		t := tracks[i]
		if t.ReleaseYear > 0 {
			fmt.Fprintf(&b, "%d. %s by %s (%d)\n", i+1, t.Title, t.Artist, t.ReleaseYear)
		} else {
			fmt.Fprintf(&b, "%d. %s by %s\n", i+1, t.Title, t.Artist)
		}
	}

	fmt.Fprintf(&b, "\nMEASURED STATISTICS:\ntracks: %d, tempo range: %.0f-%.0f BPM, mean energy: %.2f, mean valence: %.2f\n",
		summary.TrackCount, summary.TempoMin, summary.TempoMax, summary.Mood.EnergyMean, summary.Mood.ValenceMean)

	b.WriteString(`
Respond with exactly one JSON object inside a ` + "```json" + ` fence and no other text. Keys:
- general_description: string
- bpm_range: object with numeric min, max, most_common
- instruments: object mapping instrument name to prominence (low/medium/high)
- key_distribution: object mapping key name (e.g. "A minor") to count
- mood_description: string
- genre_analysis: string
`)
	return b.String()
}

func recommendationPrompt(insights domain.Insights) string {
	instruments := make([]string, 0, len(insights.Instruments))
	for name := range insights.Instruments {
		instruments = append(instruments, name)
	}
	sort.Strings(instruments)
	keys := make([]string, 0, len(insights.KeyDistribution))
	for name := range insights.KeyDistribution {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	profile := map[string]any{
		"description": insights.Description,
		"genres":      insights.GenreAnalysis,
		"mood":        insights.MoodDescription,
		"instruments": instruments,
		"keys":        keys,
	}
	// Marshal of map[string]any with string/[]string values cannot fail.
	encoded, _ := json.MarshalIndent(profile, "", "  ")

	return fmt.Sprintf(`Recommend exactly 3 songs matching this playlist profile.

PROFILE:
%s

Respond with exactly one JSON array inside a `+"```json"+` fence and no other text. Each element is an object with keys:
- title: string
- artist: string
- reasoning: string
- attributes: object with tempo, key, mood, production style, instruments
- spotify_url: string, may be empty
`, encoded)
}
