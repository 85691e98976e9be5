package spotify

// Wire types for the subset of the Web API this adapter reads.

type playlistResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       struct {
		DisplayName string `json:"display_name"`
	} `json:"owner"`
}

type pageResponse struct {
	Items []struct {
		Track *trackObject `json:"track"`
	} `json:"items"`
	Next string `json:"next"`
}

type trackObject struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DurationMs int         `json:"duration_ms"`
	Popularity int         `json:"popularity"`
	Artists    []artistRef `json:"artists"`
	Album      struct {
		Name        string `json:"name"`
		ReleaseDate string `json:"release_date"` // "2011-03-29", "2011-03", or "2011"
	} `json:"album"`
}

type artistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type audioFeaturesObject struct {
	ID               string  `json:"id"`
	Tempo            float64 `json:"tempo"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
}
