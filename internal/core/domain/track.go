package domain

// Track is a single playlist entry as fetched from the catalog.
// A Track is immutable once fetched; the fetcher result set owns it
// for the lifetime of one analysis request.
type Track struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Artist      string        `json:"artist"` // all artist names, joined with ", "
	Album       string        `json:"album,omitempty"`
	DurationMs  int           `json:"duration_ms"`
	Popularity  int           `json:"popularity"`
	ReleaseYear int           `json:"release_year,omitempty"`
	Genres      []string      `json:"genres,omitempty"`
	Features    AudioFeatures `json:"features"`
}

// AudioFeatures holds the quantitative attributes the catalog reports
// per track. Key uses standard pitch-class notation (0 = C, 1 = C#/Db,
// ... 11 = B; -1 when undetected). Mode is 1 for major, 0 for minor.
// The 0..1 attributes follow the catalog's confidence scales.
type AudioFeatures struct {
	Tempo            float64 `json:"tempo"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
}
