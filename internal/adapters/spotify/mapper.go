package spotify

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

// mapTrackToDomain converts a raw API track to a domain Track. features
// may be nil when the API has no analysis for the track; genres is the
// per-artist lookup, merged across the track's artists.
func mapTrackToDomain(t trackObject, features *audioFeaturesObject, genres map[string][]string) domain.Track {
	names := make([]string, 0, len(t.Artists))
	genreSet := make(map[string]struct{})
	for _, a := range t.Artists {
		names = append(names, a.Name)
		for _, g := range genres[a.ID] {
			genreSet[g] = struct{}{}
		}
	}

	merged := make([]string, 0, len(genreSet))
	for g := range genreSet {
		merged = append(merged, g)
	}
	sort.Strings(merged)

	dt := domain.Track{
		ID:          t.ID,
		Title:       t.Name,
		Artist:      strings.Join(names, ", "),
		Album:       t.Album.Name,
		DurationMs:  t.DurationMs,
		Popularity:  t.Popularity,
		ReleaseYear: releaseYear(t.Album.ReleaseDate),
		Genres:      merged,
	}
	dt.Features.Key = -1 // unknown until features say otherwise

	if features != nil {
		dt.Features = domain.AudioFeatures{
			Tempo:            features.Tempo,
			Key:              features.Key,
			Mode:             features.Mode,
			Energy:           features.Energy,
			Valence:          features.Valence,
			Danceability:     features.Danceability,
			Acousticness:     features.Acousticness,
			Instrumentalness: features.Instrumentalness,
		}
	}
	return dt
}

// releaseYear parses the leading year out of the API's release_date,
// whichever precision it arrives in.
func releaseYear(releaseDate string) int {
	y, _, _ := strings.Cut(releaseDate, "-")
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0
	}
	return year
}
