package domain

import (
	"regexp"
	"strings"
)

// Playlist is the catalog's view of a playlist: metadata plus the full
// track list with audio features already merged in.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Owner       string  `json:"owner,omitempty"`
	Tracks      []Track `json:"tracks"`
}

var (
	playlistURLPattern = regexp.MustCompile(`playlist/([a-zA-Z0-9]+)`)
	playlistIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9]{22}$`)
)

// ParsePlaylistID extracts the playlist ID from an open.spotify.com URL,
// or validates a bare base62 ID. It never touches the network; malformed
// input fails with ErrInvalidPlaylistID before any call is attempted.
func ParsePlaylistID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidPlaylistID
	}
	if playlistIDPattern.MatchString(s) {
		return s, nil
	}
	if m := playlistURLPattern.FindStringSubmatch(s); m != nil {
		if playlistIDPattern.MatchString(m[1]) {
			return m[1], nil
		}
	}
	return "", ErrInvalidPlaylistID
}
