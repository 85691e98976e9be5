package domain

import "time"

// BPMRange describes the tempo envelope the analysis reports.
type BPMRange struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	MostCommon float64 `json:"most_common"`
}

// Insights is the textual analysis of a playlist in its fixed schema,
// whether it came from the model or from the statistics fallback.
type Insights struct {
	Description     string            `json:"general_description"`
	MoodDescription string            `json:"mood_description"`
	GenreAnalysis   string            `json:"genre_analysis"`
	BPMRange        BPMRange          `json:"bpm_range"`
	Instruments     map[string]string `json:"instruments"`
	KeyDistribution map[string]int    `json:"key_distribution"`
}

// Recommendation is one suggested track. It carries no back-reference
// to the source playlist beyond the enclosing AnalysisResult.
type Recommendation struct {
	Title      string            `json:"title"`
	Artist     string            `json:"artist"`
	Rationale  string            `json:"reasoning"`
	Attributes map[string]string `json:"attributes"`
	SpotifyURL string            `json:"spotify_url,omitempty"`
}

// AnalysisResult is the top-level bundle handed to consumers. It is
// always fully populated: when an external service fails, every field
// carries a fallback value and Degraded is set instead of any field
// being left empty.
type AnalysisResult struct {
	RequestID       string           `json:"request_id"`
	SessionID       string           `json:"session_id"`
	PlaylistID      string           `json:"playlist_id"`
	PlaylistName    string           `json:"playlist_name,omitempty"`
	Summary         PlaylistSummary  `json:"summary"`
	Insights        Insights         `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Degraded        bool             `json:"degraded"`
	DegradedReason  string           `json:"degraded_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}
