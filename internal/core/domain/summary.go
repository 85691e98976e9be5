package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// MoodProfile is the mean and population spread of the 0..1 mood
// attributes across a track set.
type MoodProfile struct {
	EnergyMean    float64 `json:"energy_mean"`
	EnergySpread  float64 `json:"energy_spread"`
	ValenceMean   float64 `json:"valence_mean"`
	ValenceSpread float64 `json:"valence_spread"`
}

// PlaylistSummary is the statistical reduction of a track set. It is
// derived, recomputed per request, and never persisted on its own.
type PlaylistSummary struct {
	TrackCount      int            `json:"track_count"`
	TotalDurationMs int            `json:"total_duration_ms"`
	TempoMin        float64        `json:"tempo_min"`
	TempoMax        float64        `json:"tempo_max"`
	TempoMean       float64        `json:"tempo_mean"`
	KeyCounts       map[string]int `json:"key_counts"`
	DominantKey     string         `json:"dominant_key,omitempty"`
	Mood            MoodProfile    `json:"mood"`
	GenreCounts     map[string]int `json:"genre_counts"`
	DominantGenre   string         `json:"dominant_genre,omitempty"`
	DominantDecade  string         `json:"dominant_decade,omitempty"`
	Region          string         `json:"region,omitempty"`
}

// Aggregate reduces a track set to a PlaylistSummary. It is pure and
// deterministic: the same tracks always produce the same summary. An
// empty set fails with ErrEmptyPlaylist; there are no other failure
// modes. Tracks with no reported tempo are excluded from the tempo
// range but still counted everywhere else. Region is left empty here;
// it is a rule-table lookup owned by the pipeline configuration.
func Aggregate(tracks []Track) (PlaylistSummary, error) {
	if len(tracks) == 0 {
		return PlaylistSummary{}, ErrEmptyPlaylist
	}

	s := PlaylistSummary{
		TrackCount:  len(tracks),
		KeyCounts:   make(map[string]int),
		GenreCounts: make(map[string]int),
	}

	var tempoSum float64
	tempoCount := 0
	var energySum, valenceSum float64
	decades := make(map[string]int)

	for _, t := range tracks {
		s.TotalDurationMs += t.DurationMs

		if tempo := t.Features.Tempo; tempo > 0 {
			if tempoCount == 0 || tempo < s.TempoMin {
				s.TempoMin = tempo
			}
			if tempo > s.TempoMax {
				s.TempoMax = tempo
			}
			tempoSum += tempo
			tempoCount++
		}

		if name := KeyName(t.Features.Key, t.Features.Mode); name != "" {
			s.KeyCounts[name]++
		}

		energySum += t.Features.Energy
		valenceSum += t.Features.Valence

		for _, g := range t.Genres {
			g = strings.ToLower(strings.TrimSpace(g))
			if g != "" {
				s.GenreCounts[g]++
			}
		}

		if d := DecadeLabel(t.ReleaseYear); d != "" {
			decades[d]++
		}
	}

	if tempoCount > 0 {
		s.TempoMean = tempoSum / float64(tempoCount)
	}

	n := float64(len(tracks))
	s.Mood.EnergyMean = energySum / n
	s.Mood.ValenceMean = valenceSum / n

	var energyVar, valenceVar float64
	for _, t := range tracks {
		de := t.Features.Energy - s.Mood.EnergyMean
		dv := t.Features.Valence - s.Mood.ValenceMean
		energyVar += de * de
		valenceVar += dv * dv
	}
	s.Mood.EnergySpread = math.Sqrt(energyVar / n)
	s.Mood.ValenceSpread = math.Sqrt(valenceVar / n)

	s.DominantKey = dominant(s.KeyCounts)
	s.DominantGenre = dominant(s.GenreCounts)
	s.DominantDecade = dominant(decades)

	return s, nil
}

// dominant returns the highest-count label, breaking count ties
// alphabetically so the result is stable for a given input.
func dominant(counts map[string]int) string {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best, bestCount := "", 0
	for _, label := range labels {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best
}

var pitchClassNames = [...]string{
	"C", "C#/Db", "D", "D#/Eb", "E", "F",
	"F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B",
}

// KeyName renders a pitch class and mode as a key label like "A minor".
// Unknown pitch classes (the catalog reports -1) map to "".
func KeyName(key, mode int) string {
	if key < 0 || key >= len(pitchClassNames) {
		return ""
	}
	if mode == 0 {
		return pitchClassNames[key] + " minor"
	}
	return pitchClassNames[key] + " major"
}

// DecadeLabel maps a release year onto a label like "1990s".
// Years before 1900 (or the zero value) map to "".
func DecadeLabel(year int) string {
	if year < 1900 {
		return ""
	}
	return fmt.Sprintf("%ds", (year/10)*10)
}

// FormatDuration renders a millisecond duration as m:ss, or h:mm:ss past
// the hour mark.
func FormatDuration(durationMs int) string {
	if durationMs <= 0 {
		return "0:00"
	}
	total := durationMs / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
