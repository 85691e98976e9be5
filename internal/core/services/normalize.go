package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

// modelReply is the tagged parse result for a raw model response:
// either a structured JSON payload or the unstructured original text.
// Branching on it keeps string inspection out of the pipeline proper.
type modelReply struct {
	structured bool
	payload    json.RawMessage
	raw        string
}

// parseModelReply locates the structured payload in the reply text.
// Order: a ```json fence, any ``` fence, then the whole reply if it is
// itself a bare JSON value. Anything else is unstructured.
func parseModelReply(text string) modelReply {
	raw := strings.TrimSpace(text)

	for _, opener := range []string{"```json", "```"} {
		if seg, ok := extractFence(raw, opener); ok && json.Valid([]byte(seg)) {
			return modelReply{structured: true, payload: json.RawMessage(seg), raw: raw}
		}
	}

	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		if json.Valid([]byte(raw)) {
			return modelReply{structured: true, payload: json.RawMessage(raw), raw: raw}
		}
	}

	return modelReply{raw: raw}
}

func extractFence(s, opener string) (string, bool) {
	start := strings.Index(s, opener)
	if start < 0 {
		return "", false
	}
	rest := s[start+len(opener):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// insightsWire decodes the analysis payload leniently: the model is
// asked for fixed types but occasionally returns numbers as strings or
// prominence values as numbers, so the scalar fields are coerced.
type insightsWire struct {
	Description     string         `json:"general_description"`
	MoodDescription string         `json:"mood_description"`
	GenreAnalysis   string         `json:"genre_analysis"`
	BPMRange        map[string]any `json:"bpm_range"`
	Instruments     map[string]any `json:"instruments"`
	KeyDistribution map[string]any `json:"key_distribution"`
}

// decodeInsights maps a structured payload onto the Insights schema,
// filling any gap from the statistics fallback so the result is always
// fully populated. ok is false when the payload does not carry the
// analysis schema at all.
func decodeInsights(payload json.RawMessage, summary domain.PlaylistSummary) (domain.Insights, bool) {
	var wire insightsWire
	if err := json.Unmarshal(payload, &wire); err != nil {
		return domain.Insights{}, false
	}
	if wire.Description == "" && wire.MoodDescription == "" && wire.GenreAnalysis == "" {
		return domain.Insights{}, false
	}

	defaults := fallbackInsights(summary)

	ins := domain.Insights{
		Description:     wire.Description,
		MoodDescription: wire.MoodDescription,
		GenreAnalysis:   wire.GenreAnalysis,
		Instruments:     map[string]string{},
		KeyDistribution: map[string]int{},
	}
	if ins.Description == "" {
		ins.Description = defaults.Description
	}
	if ins.MoodDescription == "" {
		ins.MoodDescription = defaults.MoodDescription
	}
	if ins.GenreAnalysis == "" {
		ins.GenreAnalysis = defaults.GenreAnalysis
	}

	ins.BPMRange = domain.BPMRange{
		Min:        coerceFloat(wire.BPMRange["min"]),
		Max:        coerceFloat(wire.BPMRange["max"]),
		MostCommon: coerceFloat(wire.BPMRange["most_common"]),
	}
	if ins.BPMRange.Min == 0 && ins.BPMRange.Max == 0 {
		ins.BPMRange = defaults.BPMRange
	}

	for name, v := range wire.Instruments {
		ins.Instruments[name] = coerceString(v)
	}
	for name, v := range wire.KeyDistribution {
		if count := int(math.Round(coerceFloat(v))); count > 0 {
			ins.KeyDistribution[name] = count
		}
	}
	if len(ins.KeyDistribution) == 0 {
		ins.KeyDistribution = defaults.KeyDistribution
	}

	return ins, true
}

// decodeRecommendations maps a structured payload onto the fixed
// recommendation schema, dropping entries without a title and artist
// and defaulting the rest. ok is false when nothing usable survives.
func decodeRecommendations(payload json.RawMessage) ([]domain.Recommendation, bool) {
	var wire []struct {
		Title      string         `json:"title"`
		Artist     string         `json:"artist"`
		Reasoning  string         `json:"reasoning"`
		Attributes map[string]any `json:"attributes"`
		SpotifyURL string         `json:"spotify_url"`
	}
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, false
	}

	recs := make([]domain.Recommendation, 0, len(wire))
	for _, w := range wire {
		if strings.TrimSpace(w.Title) == "" || strings.TrimSpace(w.Artist) == "" {
			continue
		}
		rec := domain.Recommendation{
			Title:      strings.TrimSpace(w.Title),
			Artist:     strings.TrimSpace(w.Artist),
			Rationale:  strings.TrimSpace(w.Reasoning),
			Attributes: map[string]string{},
			SpotifyURL: strings.TrimSpace(w.SpotifyURL),
		}
		if rec.Rationale == "" {
			rec.Rationale = "Matches the playlist's overall profile."
		}
		for name, v := range w.Attributes {
			rec.Attributes[name] = coerceString(v)
		}
		recs = append(recs, rec)
	}

	if len(recs) == 0 {
		return nil, false
	}
	return recs, true
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}
